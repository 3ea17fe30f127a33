package engine

import (
	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
)

// CommandType names a state transition
type CommandType string

// Command types
const (
	CommandInvest           CommandType = "invest"
	CommandRemove           CommandType = "remove"
	CommandIncrementAbility CommandType = "increment_ability"
	CommandDecrementAbility CommandType = "decrement_ability"
	CommandSetLevel         CommandType = "set_level"
	CommandSetArmor         CommandType = "set_armor"
	CommandSetHP            CommandType = "set_hp"
	CommandToggleUseDex     CommandType = "toggle_use_dex"
	CommandSetRace          CommandType = "set_race"
	CommandSetBirthsign     CommandType = "set_birthsign"
	CommandToggleFeat       CommandType = "toggle_feat"
	CommandSetNodeChoice    CommandType = "set_node_choice"
	CommandSetName          CommandType = "set_name"
	CommandSetNotes         CommandType = "set_notes"
	CommandAddItem          CommandType = "add_item"
	CommandUpdateItem       CommandType = "update_item"
	CommandRemoveItem       CommandType = "remove_item"
)

// CommandTypes lists every command type
var CommandTypes = []CommandType{
	CommandInvest, CommandRemove,
	CommandIncrementAbility, CommandDecrementAbility,
	CommandSetLevel, CommandSetArmor, CommandSetHP, CommandToggleUseDex,
	CommandSetRace, CommandSetBirthsign, CommandToggleFeat,
	CommandSetNodeChoice, CommandSetName, CommandSetNotes,
	CommandAddItem, CommandUpdateItem, CommandRemoveItem,
}

// Command is a single edit. Only the fields its Type uses are read.
type Command struct {
	Type CommandType

	// NodeID for invest, remove and set_node_choice
	NodeID string
	// Ability for increment_ability and decrement_ability
	Ability skilltree.AbilityKey
	// Value for set_level, set_armor and set_hp
	Value int
	// TraitID for set_race, set_birthsign and toggle_feat; empty clears
	TraitID string
	// Text for set_node_choice, set_name and set_notes
	Text string
	// Item for add_item and update_item; Item.ID also selects remove_item
	Item *skilltree.InventoryItem
}

// RefreshOptions tunes Refresh
type RefreshOptions struct {
	// FillHP sets current HP to the derived maximum instead of clamping it
	FillHP bool
}

// NodeStatus is a node with its unlock state for a character
type NodeStatus struct {
	Node       *skilltree.SkillNode
	Unlocked   bool
	Points     int
	FreePoints int
	Choice     string
}

// Aggregate is the combined contribution of the selected traits
type Aggregate struct {
	EffectiveAbilities skilltree.Abilities
	SpecialAbilities   []skilltree.SpecialAbility
	FreeNodePoints     map[string]int
}

// Stats are the values computed from effective abilities, effective node
// points and special abilities
type Stats struct {
	MaxHP         int
	Resources     skilltree.Resources
	ArmorBonus    int
	Speed         int
	Darkvision    bool
	Resistances   []string
	Proficiencies []string
}
