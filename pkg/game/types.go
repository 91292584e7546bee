// Package game holds the core domain types of the adventure client and
// the pure state-reconciliation logic that folds model output into the
// player's state.
package game

import "fmt"

// Genre selects the story world and the visual style of generated scenes.
type Genre string

const (
	GenreFantasy   Genre = "FANTASY"
	GenreIsekai    Genre = "ISEKAI"
	GenreSciFi     Genre = "SCI_FI"
	GenreCyberpunk Genre = "CYBERPUNK"
)

// Genres lists the supported genres in presentation order.
var Genres = []Genre{GenreFantasy, GenreIsekai, GenreSciFi, GenreCyberpunk}

func (g Genre) Valid() bool {
	switch g {
	case GenreFantasy, GenreIsekai, GenreSciFi, GenreCyberpunk:
		return true
	}
	return false
}

// CharacterProfile describes the player character. It is fixed for the
// lifetime of a game and woven into every prompt.
type CharacterProfile struct {
	Name        string `json:"name"`
	Power       string `json:"power"`
	Description string `json:"description"`
}

// Summary renders the profile in the form the prompts interpolate.
func (c CharacterProfile) Summary() string {
	return fmt.Sprintf("Name: %s, Power: %s, Description: %s", c.Name, c.Power, c.Description)
}

// InventoryItem is one carried item. Name is the identity key; two items
// with the same name are the same item.
type InventoryItem struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
}

// EntityRole is one named position within a player-owned organization.
type EntityRole struct {
	Role   string `json:"role"`
	Person string `json:"person"`
}

// OwnedEntity is a player-owned organization such as a guild, company or
// syndicate. Name is the identity key.
type OwnedEntity struct {
	Name  string       `json:"name"`
	Type  string       `json:"type"`
	Roles []EntityRole `json:"roles"`
}

// Enemy is the active combat opponent, if any.
type Enemy struct {
	Name   string `json:"name"`
	HP     int    `json:"hp"`
	Attack int    `json:"attack"`
}

// Choice is one of the pre-offered player actions for a turn.
type Choice struct {
	Text string `json:"text"`
}

// PlayerStats is the reconciled player state. Attack and Defense are
// fixed at creation; HP, Gold, Inventory and Entities change turn by
// turn via Reconcile.
type PlayerStats struct {
	HP        int             `json:"hp"`
	MaxHP     int             `json:"maxHp"`
	Attack    int             `json:"attack"`
	Defense   int             `json:"defense"`
	Gold      int             `json:"gold"`
	Inventory []InventoryItem `json:"inventory"`
	Entities  []OwnedEntity   `json:"entities"`
}

// NewPlayerStats returns the fixed starting state for every game.
func NewPlayerStats() PlayerStats {
	return PlayerStats{
		HP:        100,
		MaxHP:     100,
		Attack:    10,
		Defense:   5,
		Gold:      0,
		Inventory: []InventoryItem{},
		Entities:  []OwnedEntity{},
	}
}

// Clone returns a deep copy. Reconcile operates on copies so a failed
// turn never leaves partially applied state behind.
func (s PlayerStats) Clone() PlayerStats {
	out := s
	out.Inventory = make([]InventoryItem, len(s.Inventory))
	copy(out.Inventory, s.Inventory)
	out.Entities = make([]OwnedEntity, len(s.Entities))
	for i, e := range s.Entities {
		roles := make([]EntityRole, len(e.Roles))
		copy(roles, e.Roles)
		e.Roles = roles
		out.Entities[i] = e
	}
	return out
}

// StoryScene is the complete renderable snapshot of one turn's outcome.
// It is immutable once built; each turn replaces the previous scene
// entirely.
type StoryScene struct {
	Character        CharacterProfile `json:"character"`
	Image            string           `json:"image"` // data URI, empty when generation was skipped
	SceneDescription string           `json:"sceneDescription"`
	Choices          []Choice         `json:"choices"`
	IsGameOver       bool             `json:"isGameOver"`
	GameOverReason   string           `json:"gameOverReason"`
	Log              string           `json:"log"`
	PlayerStats      PlayerStats      `json:"playerStats"`
	Enemy            *Enemy           `json:"enemy,omitempty"`
}
