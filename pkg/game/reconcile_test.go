package game

import (
	"reflect"
	"testing"
)

func zeroPart() *RawStoryPart {
	return &RawStoryPart{
		SceneDescription: "A quiet clearing.",
		Choices:          []Choice{{Text: "Wait"}, {Text: "Look"}, {Text: "Leave"}},
		InventoryChanges: InventoryChanges{Added: []InventoryItem{}, Removed: []string{}},
		EntityChanges:    EntityChanges{Updated: []OwnedEntity{}, Removed: []string{}},
	}
}

func TestReconcile_HPDelta(t *testing.T) {
	tests := []struct {
		name     string
		startHP  int
		delta    int
		expected int
	}{
		{name: "damage", startHP: 100, delta: -10, expected: 90},
		{name: "healing", startHP: 50, delta: 30, expected: 80},
		{name: "floor clamped at zero", startHP: 20, delta: -50, expected: 0},
		{name: "exact kill", startHP: 10, delta: -10, expected: 0},
		{name: "healing past max is not clamped", startHP: 95, delta: 20, expected: 115},
		{name: "zero delta", startHP: 42, delta: 0, expected: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := NewPlayerStats()
			prev.HP = tt.startHP

			part := zeroPart()
			part.PlayerStatsChange.HP = tt.delta

			next := Reconcile(prev, part)
			if next.HP != tt.expected {
				t.Errorf("expected HP %d, got %d", tt.expected, next.HP)
			}
			if prev.HP != tt.startHP {
				t.Errorf("input state was modified: HP %d", prev.HP)
			}
		})
	}
}

func TestReconcile_GoldUnclamped(t *testing.T) {
	prev := NewPlayerStats()
	prev.Gold = 10

	part := zeroPart()
	part.PlayerStatsChange.Gold = -25

	next := Reconcile(prev, part)
	// Negative gold is allowed; the source never floors it. Kept as-is
	// rather than silently fixed.
	if next.Gold != -15 {
		t.Errorf("expected gold -15, got %d", next.Gold)
	}
}

func TestReconcile_ZeroPayloadIsNoOp(t *testing.T) {
	prev := NewPlayerStats()
	prev.Gold = 7
	prev.Inventory = []InventoryItem{{Name: "Sword", Quantity: 1, Description: "A blade"}}
	prev.Entities = []OwnedEntity{{Name: "Guild", Type: "Guild", Roles: []EntityRole{{Role: "Owner", Person: "Player"}}}}

	next := Reconcile(prev, zeroPart())
	if !reflect.DeepEqual(next, prev) {
		t.Errorf("zero payload changed state:\n prev %+v\n next %+v", prev, next)
	}
}

func TestReconcile_NilPayloadIsNoOp(t *testing.T) {
	prev := NewPlayerStats()
	next := Reconcile(prev, nil)
	if !reflect.DeepEqual(next, prev) {
		t.Errorf("nil payload changed state: %+v", next)
	}
}

func TestReconcile_InventoryMerge(t *testing.T) {
	prev := NewPlayerStats()
	prev.Inventory = []InventoryItem{{Name: "Sword", Quantity: 1, Description: "A blade"}}

	part := zeroPart()
	part.InventoryChanges.Added = []InventoryItem{{Name: "Sword", Quantity: 2, Description: "ignored"}}

	next := Reconcile(prev, part)
	expected := []InventoryItem{{Name: "Sword", Quantity: 3, Description: "A blade"}}
	if !reflect.DeepEqual(next.Inventory, expected) {
		t.Errorf("expected %+v, got %+v", expected, next.Inventory)
	}
}

func TestReconcile_InventoryRemoveThenAddSameName(t *testing.T) {
	prev := NewPlayerStats()
	prev.Inventory = []InventoryItem{{Name: "Torch", Quantity: 1, Description: "Old torch"}}

	part := zeroPart()
	part.InventoryChanges.Removed = []string{"Torch"}
	part.InventoryChanges.Added = []InventoryItem{{Name: "Torch", Quantity: 5, Description: "New torch"}}

	next := Reconcile(prev, part)
	// Removal applies first, so this is a net replace, not 1+5.
	expected := []InventoryItem{{Name: "Torch", Quantity: 5, Description: "New torch"}}
	if !reflect.DeepEqual(next.Inventory, expected) {
		t.Errorf("expected %+v, got %+v", expected, next.Inventory)
	}
}

func TestReconcile_InventoryRemovalAndOrder(t *testing.T) {
	prev := NewPlayerStats()
	prev.Inventory = []InventoryItem{
		{Name: "Rope", Quantity: 1, Description: "Hempen"},
		{Name: "Lantern", Quantity: 1, Description: "Brass"},
		{Name: "Rations", Quantity: 3, Description: "Dried meat"},
	}

	part := zeroPart()
	part.InventoryChanges.Removed = []string{"Lantern", "Lantern"} // duplicates are harmless
	part.InventoryChanges.Added = []InventoryItem{{Name: "Map", Quantity: 1, Description: "Weathered"}}

	next := Reconcile(prev, part)
	expected := []InventoryItem{
		{Name: "Rope", Quantity: 1, Description: "Hempen"},
		{Name: "Rations", Quantity: 3, Description: "Dried meat"},
		{Name: "Map", Quantity: 1, Description: "Weathered"},
	}
	if !reflect.DeepEqual(next.Inventory, expected) {
		t.Errorf("expected %+v, got %+v", expected, next.Inventory)
	}
}

func TestReconcile_EntityUpdateIsFullOverwrite(t *testing.T) {
	prev := NewPlayerStats()
	prev.Entities = []OwnedEntity{{
		Name: "Silver Hand",
		Type: "Guild",
		Roles: []EntityRole{
			{Role: "Owner", Person: "Player"},
			{Role: "Treasurer", Person: "Mira"},
		},
	}}

	part := zeroPart()
	part.EntityChanges.Updated = []OwnedEntity{{
		Name:  "Silver Hand",
		Type:  "Mercenary Company",
		Roles: []EntityRole{{Role: "Commander", Person: "Player"}},
	}}

	next := Reconcile(prev, part)
	if len(next.Entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(next.Entities))
	}
	got := next.Entities[0]
	if got.Type != "Mercenary Company" {
		t.Errorf("expected type overwrite, got %q", got.Type)
	}
	if len(got.Roles) != 1 || got.Roles[0].Role != "Commander" {
		t.Errorf("expected roles to be replaced wholly, got %+v", got.Roles)
	}
}

func TestReconcile_EntityRemoveAndAppend(t *testing.T) {
	prev := NewPlayerStats()
	prev.Entities = []OwnedEntity{
		{Name: "Old Crew", Type: "Gang", Roles: []EntityRole{{Role: "Boss", Person: "Player"}}},
	}

	part := zeroPart()
	part.EntityChanges.Removed = []string{"Old Crew"}
	part.EntityChanges.Updated = []OwnedEntity{
		{Name: "New Syndicate", Type: "Syndicate", Roles: []EntityRole{{Role: "Owner", Person: "Player"}}},
	}

	next := Reconcile(prev, part)
	if len(next.Entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(next.Entities))
	}
	if next.Entities[0].Name != "New Syndicate" {
		t.Errorf("expected New Syndicate, got %q", next.Entities[0].Name)
	}
}

func TestReconcile_AttackDefenseNeverChange(t *testing.T) {
	prev := NewPlayerStats()

	part := zeroPart()
	part.PlayerStatsChange = StatsChange{HP: -5, Gold: 100}

	next := Reconcile(prev, part)
	if next.Attack != prev.Attack || next.Defense != prev.Defense || next.MaxHP != prev.MaxHP {
		t.Errorf("fixed stats changed: %+v", next)
	}
}
