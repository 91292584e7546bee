package game

// Reconcile folds one turn's payload into the previous player state and
// returns the new state. It is deterministic and total: malformed or
// absent deltas act as zero, and the input state is never modified.
//
// Ordering rules:
//   - HP is floor-clamped at 0. It is not ceiling-clamped at MaxHP, so
//     healing can exceed the maximum.
//   - Gold is unclamped and may go negative.
//   - Within inventory and within entities, removals apply before
//     additions/updates, so a single turn may remove and re-add the same
//     name (the added version wins). Inventory and entity processing do
//     not interact.
func Reconcile(prev PlayerStats, part *RawStoryPart) PlayerStats {
	next := prev.Clone()
	if part == nil {
		return next
	}

	next.HP = max(0, prev.HP+part.PlayerStatsChange.HP)
	next.Gold = prev.Gold + part.PlayerStatsChange.Gold

	next.Inventory = reconcileInventory(next.Inventory, part.InventoryChanges)
	next.Entities = reconcileEntities(next.Entities, part.EntityChanges)

	return next
}

func reconcileInventory(items []InventoryItem, changes InventoryChanges) []InventoryItem {
	removed := toSet(changes.Removed)
	kept := items[:0]
	for _, item := range items {
		if !removed[item.Name] {
			kept = append(kept, item)
		}
	}
	items = kept

	for _, added := range changes.Added {
		idx := -1
		for i, item := range items {
			if item.Name == added.Name {
				idx = i
				break
			}
		}
		if idx >= 0 {
			// Merge quantities; the first-seen description wins.
			items[idx].Quantity += added.Quantity
		} else {
			items = append(items, added)
		}
	}
	return items
}

func reconcileEntities(entities []OwnedEntity, changes EntityChanges) []OwnedEntity {
	removed := toSet(changes.Removed)
	kept := entities[:0]
	for _, e := range entities {
		if !removed[e.Name] {
			kept = append(kept, e)
		}
	}
	entities = kept

	for _, updated := range changes.Updated {
		idx := -1
		for i, e := range entities {
			if e.Name == updated.Name {
				idx = i
				break
			}
		}
		if idx >= 0 {
			// Full overwrite, unlike the inventory merge.
			entities[idx] = updated
		} else {
			entities = append(entities, updated)
		}
	}
	return entities
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
