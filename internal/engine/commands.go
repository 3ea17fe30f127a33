package engine

import (
	"strings"

	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
)

// SetLevel changes the level. Lowering the level never refunds node points,
// so available skill points may go negative until points are removed.
func (e *engine) SetLevel(state skilltree.CharacterState, level int) (skilltree.CharacterState, error) {
	if level < skilltree.LevelMin || level > skilltree.LevelMax {
		return state, reject(ReasonLevelOutOfRange, "level must be between %d and %d, got %d", skilltree.LevelMin, skilltree.LevelMax, level)
	}

	next := state.Clone()
	next.Level = level
	return e.settle(state, next, false), nil
}

// SetArmor changes the base armor value
func (e *engine) SetArmor(state skilltree.CharacterState, armor int) (skilltree.CharacterState, error) {
	if armor < skilltree.ArmorMin {
		return state, reject(ReasonArmorOutOfRange, "armor must be at least %d, got %d", skilltree.ArmorMin, armor)
	}

	next := state.Clone()
	next.Armor = armor
	return e.settle(state, next, false), nil
}

// ToggleUseDexForArmor flips whether the dexterity modifier adds to armor class
func (e *engine) ToggleUseDexForArmor(state skilltree.CharacterState) skilltree.CharacterState {
	next := state.Clone()
	next.UseDexForArmor = !next.UseDexForArmor
	return e.settle(state, next, false)
}

// SetHP sets current hit points within [0, max]
func (e *engine) SetHP(state skilltree.CharacterState, hp int) (skilltree.CharacterState, error) {
	if hp < 0 || hp > state.MaxHP {
		return state, reject(ReasonHPOutOfRange, "hp must be between 0 and %d, got %d", state.MaxHP, hp)
	}

	next := state.Clone()
	next.HP = hp
	return e.settle(state, next, false), nil
}

// SetNodeChoice records the sub-option picked for a node. An empty value
// clears it.
func (e *engine) SetNodeChoice(state skilltree.CharacterState, nodeID, value string) (skilltree.CharacterState, error) {
	node, ok := e.catalog.Node(nodeID)
	if !ok {
		return state, reject(ReasonNodeNotFound, "node %s not found", nodeID)
	}

	if value != "" && !node.HasChoice(value) {
		return state, reject(ReasonInvalidChoice, "node %s has no choice %q", nodeID, value).
			WithMeta("node_id", nodeID)
	}

	next := state.Clone()
	if value == "" {
		delete(next.NodeChoices, nodeID)
	} else {
		next.NodeChoices[nodeID] = value
	}
	return e.settle(state, next, false), nil
}

// SetName is always accepted
func (e *engine) SetName(state skilltree.CharacterState, name string) skilltree.CharacterState {
	next := state.Clone()
	next.Name = name
	return next
}

// SetNotes is always accepted
func (e *engine) SetNotes(state skilltree.CharacterState, notes string) skilltree.CharacterState {
	next := state.Clone()
	next.Notes = notes
	return next
}

// AddItem appends an item with a fresh id
func (e *engine) AddItem(state skilltree.CharacterState, item skilltree.InventoryItem) (skilltree.CharacterState, error) {
	if err := validateItem(item); err != nil {
		return state, err
	}

	item.ID = e.idGen.Generate()
	item.Name = strings.TrimSpace(item.Name)

	next := state.Clone()
	next.Inventory = append(next.Inventory, item)
	return next, nil
}

// UpdateItem replaces the item with the same id
func (e *engine) UpdateItem(state skilltree.CharacterState, item skilltree.InventoryItem) (skilltree.CharacterState, error) {
	idx := state.ItemIndex(item.ID)
	if idx < 0 {
		return state, reject(ReasonItemNotFound, "item %s not found", item.ID)
	}
	if err := validateItem(item); err != nil {
		return state, err
	}

	item.Name = strings.TrimSpace(item.Name)

	next := state.Clone()
	next.Inventory[idx] = item
	return next, nil
}

// RemoveItem drops the item with the given id
func (e *engine) RemoveItem(state skilltree.CharacterState, id string) (skilltree.CharacterState, error) {
	idx := state.ItemIndex(id)
	if idx < 0 {
		return state, reject(ReasonItemNotFound, "item %s not found", id)
	}

	next := state.Clone()
	next.Inventory = append(next.Inventory[:idx], next.Inventory[idx+1:]...)
	return next, nil
}

func validateItem(item skilltree.InventoryItem) error {
	switch {
	case strings.TrimSpace(item.Name) == "":
		return reject(ReasonInvalidInventoryItem, "item name is required")
	case item.Quantity < 0:
		return reject(ReasonInvalidInventoryItem, "item quantity must not be negative")
	case item.WeightPerUnit < 0:
		return reject(ReasonInvalidInventoryItem, "item weight must not be negative")
	}
	return nil
}
