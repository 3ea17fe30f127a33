// Package snapshot converts character state to and from the portable document
// used for slot persistence and file export.
//
// A document treats every field as optional. Normalize is the only place
// defaults are applied; derived values in a document are written for
// convenience and ignored when read back.
package snapshot

import (
	"time"

	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
)

// SchemaVersion is written to every new document
const SchemaVersion = 2

// Document is the wire form of a character
type Document struct {
	SchemaVersion  int               `json:"schema_version" toml:"schema_version"`
	ExportedAt     *time.Time        `json:"exported_at,omitempty" toml:"exported_at,omitempty"`
	Name           string            `json:"name,omitempty" toml:"name,omitempty"`
	Notes          string            `json:"notes,omitempty" toml:"notes,omitempty"`
	Level          *int              `json:"level,omitempty" toml:"level,omitempty"`
	Armor          *int              `json:"armor,omitempty" toml:"armor,omitempty"`
	UseDexForArmor *bool             `json:"use_dex_for_armor,omitempty" toml:"use_dex_for_armor,omitempty"`
	HP             *int              `json:"hp,omitempty" toml:"hp,omitempty"`
	MaxHP          *int              `json:"max_hp,omitempty" toml:"max_hp,omitempty"`
	RaceID         string            `json:"race,omitempty" toml:"race,omitempty"`
	BirthsignID    string            `json:"birthsign,omitempty" toml:"birthsign,omitempty"`
	FeatIDs        []string          `json:"feats,omitempty" toml:"feats,omitempty"`
	Abilities      *AbilityScores    `json:"abilities,omitempty" toml:"abilities,omitempty"`
	Resources      *ResourcePools    `json:"resources,omitempty" toml:"resources,omitempty"`
	NodePoints     map[string]int    `json:"node_points,omitempty" toml:"node_points,omitempty"`
	NodeChoices    map[string]string `json:"node_choices,omitempty" toml:"node_choices,omitempty"`
	Inventory      []Item            `json:"inventory,omitempty" toml:"inventory,omitempty"`
	Derived        *DerivedCache     `json:"derived,omitempty" toml:"derived,omitempty"`

	// fields that failed to decode
	dropped []string
}

// AbilityScores are optional per ability; a missing score reads as the floor
type AbilityScores struct {
	Str *int `json:"str,omitempty" toml:"str,omitempty"`
	Dex *int `json:"dex,omitempty" toml:"dex,omitempty"`
	Con *int `json:"con,omitempty" toml:"con,omitempty"`
	Int *int `json:"int,omitempty" toml:"int,omitempty"`
	Wis *int `json:"wis,omitempty" toml:"wis,omitempty"`
	Cha *int `json:"cha,omitempty" toml:"cha,omitempty"`
}

// Pool is one resource pool on the wire
type Pool struct {
	Current int `json:"current" toml:"current"`
	Max     int `json:"max" toml:"max"`
}

// ResourcePools holds the three named pools
type ResourcePools struct {
	Adrenaline Pool `json:"adrenaline" toml:"adrenaline"`
	Mana       Pool `json:"mana" toml:"mana"`
	Stamina    Pool `json:"stamina" toml:"stamina"`
}

// Item is one inventory line
type Item struct {
	ID            string  `json:"id,omitempty" toml:"id,omitempty"`
	Name          string  `json:"name" toml:"name"`
	Quantity      int     `json:"quantity" toml:"quantity"`
	Unit          string  `json:"unit,omitempty" toml:"unit,omitempty"`
	WeightPerUnit float64 `json:"weight_per_unit" toml:"weight_per_unit"`
	Description   string  `json:"description,omitempty" toml:"description,omitempty"`
}

// Scores is a complete set of ability values
type Scores struct {
	Str int `json:"str" toml:"str"`
	Dex int `json:"dex" toml:"dex"`
	Con int `json:"con" toml:"con"`
	Int int `json:"int" toml:"int"`
	Wis int `json:"wis" toml:"wis"`
	Cha int `json:"cha" toml:"cha"`
}

// DerivedCache mirrors computed values for readers of exported files
type DerivedCache struct {
	EffectiveAbilities   Scores         `json:"effective_abilities" toml:"effective_abilities"`
	ColorPoints          map[string]int `json:"color_points,omitempty" toml:"color_points,omitempty"`
	FreeNodePoints       map[string]int `json:"free_node_points,omitempty" toml:"free_node_points,omitempty"`
	AvailableSkillPoints int            `json:"available_skill_points" toml:"available_skill_points"`
	ArmorClass           int            `json:"armor_class" toml:"armor_class"`
	Speed                int            `json:"speed" toml:"speed"`
	ProficiencyBonus     int            `json:"proficiency_bonus" toml:"proficiency_bonus"`
	Darkvision           bool           `json:"darkvision" toml:"darkvision"`
	Resistances          []string       `json:"resistances,omitempty" toml:"resistances,omitempty"`
	Proficiencies        []string       `json:"proficiencies,omitempty" toml:"proficiencies,omitempty"`
	SpecialAbilities     []string       `json:"special_abilities,omitempty" toml:"special_abilities,omitempty"`
}

// FromState builds a document holding every field of state
func FromState(state skilltree.CharacterState, exportedAt time.Time) *Document {
	at := exportedAt.UTC()
	doc := &Document{
		SchemaVersion:  SchemaVersion,
		ExportedAt:     &at,
		Name:           state.Name,
		Notes:          state.Notes,
		Level:          intPtr(state.Level),
		Armor:          intPtr(state.Armor),
		UseDexForArmor: boolPtr(state.UseDexForArmor),
		HP:             intPtr(state.HP),
		MaxHP:          intPtr(state.MaxHP),
		RaceID:         state.RaceID,
		BirthsignID:    state.BirthsignID,
		FeatIDs:        append([]string{}, state.FeatIDs...),
		Abilities: &AbilityScores{
			Str: intPtr(state.Abilities.Str),
			Dex: intPtr(state.Abilities.Dex),
			Con: intPtr(state.Abilities.Con),
			Int: intPtr(state.Abilities.Int),
			Wis: intPtr(state.Abilities.Wis),
			Cha: intPtr(state.Abilities.Cha),
		},
		Resources: &ResourcePools{
			Adrenaline: Pool(state.Resources.Adrenaline),
			Mana:       Pool(state.Resources.Mana),
			Stamina:    Pool(state.Resources.Stamina),
		},
		NodePoints:  make(map[string]int, len(state.NodePoints)),
		NodeChoices: make(map[string]string, len(state.NodeChoices)),
		Inventory:   make([]Item, 0, len(state.Inventory)),
	}

	for id, points := range state.NodePoints {
		doc.NodePoints[id] = points
	}
	for id, choice := range state.NodeChoices {
		doc.NodeChoices[id] = choice
	}
	for _, item := range state.Inventory {
		doc.Inventory = append(doc.Inventory, Item(item))
	}

	derived := state.Derived
	doc.Derived = &DerivedCache{
		EffectiveAbilities:   Scores(derived.EffectiveAbilities),
		ColorPoints:          make(map[string]int, len(state.ColorPoints)),
		FreeNodePoints:       make(map[string]int, len(state.FreeNodePoints)),
		AvailableSkillPoints: state.AvailableSkillPoints(),
		ArmorClass:           derived.ArmorClass,
		Speed:                derived.Speed,
		ProficiencyBonus:     derived.ProficiencyBonus,
		Darkvision:           derived.Darkvision,
		Resistances:          append([]string{}, derived.Resistances...),
		Proficiencies:        append([]string{}, derived.Proficiencies...),
	}
	for color, points := range state.ColorPoints {
		doc.Derived.ColorPoints[string(color)] = points
	}
	for id, points := range state.FreeNodePoints {
		doc.Derived.FreeNodePoints[id] = points
	}
	for _, sa := range derived.SpecialAbilities {
		doc.Derived.SpecialAbilities = append(doc.Derived.SpecialAbilities, sa.ID)
	}

	return doc
}

func intPtr(v int) *int {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}
