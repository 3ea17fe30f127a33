package skilltree

import (
	"fmt"
	"strings"
)

// Stat names a flat bonus target
type Stat string

// Bonus targets
const (
	StatHP         Stat = "hp"
	StatMana       Stat = "mana"
	StatStamina    Stat = "stamina"
	StatAdrenaline Stat = "adrenaline"
	StatArmor      Stat = "armor"
	StatSpeed      Stat = "speed"
)

// GrantKind names a string list grant
type GrantKind string

// Grant kinds
const (
	GrantResistance  GrantKind = "resistance"
	GrantProficiency GrantKind = "proficiency"
)

// FlagDarkvision is the only boolean trait flag in the catalog
const FlagDarkvision = "darkvision"

// EffectKind discriminates Effect variants
type EffectKind string

// Effect kinds
const (
	EffectKindFlatBonus      EffectKind = "flat_bonus"
	EffectKindConstitutionHP EffectKind = "constitution_hp"
	EffectKindFlag           EffectKind = "flag"
	EffectKindGrant          EffectKind = "grant"
)

// Effect is one structured payload of a special ability. The set of
// implementations is closed: FlatBonus, ConstitutionHP, Flag and Grant.
type Effect interface {
	Kind() EffectKind
	Describe() string
	isEffect()
}

// FlatBonus adds a fixed amount to one stat
type FlatBonus struct {
	Stat   Stat
	Amount int
}

// Kind implements Effect
func (FlatBonus) Kind() EffectKind { return EffectKindFlatBonus }

// Describe implements Effect
func (e FlatBonus) Describe() string {
	if e.Stat == StatSpeed {
		return fmt.Sprintf("Speed Bonus: %+d ft", e.Amount)
	}
	return fmt.Sprintf("%s Bonus: %+d", statLabel(e.Stat), e.Amount)
}

func (FlatBonus) isEffect() {}

// ConstitutionHP grants 2 + the constitution modifier in hit points
type ConstitutionHP struct{}

// Kind implements Effect
func (ConstitutionHP) Kind() EffectKind { return EffectKindConstitutionHP }

// Describe implements Effect
func (ConstitutionHP) Describe() string { return "HP Bonus: 2 + Constitution modifier" }

func (ConstitutionHP) isEffect() {}

// Flag switches on a boolean trait such as darkvision
type Flag struct {
	Name string
}

// Kind implements Effect
func (Flag) Kind() EffectKind { return EffectKindFlag }

// Describe implements Effect
func (e Flag) Describe() string {
	if e.Name == FlagDarkvision {
		return "Darkvision: Yes"
	}
	return e.Name
}

func (Flag) isEffect() {}

// Grant adds resistances or proficiencies
type Grant struct {
	Type   GrantKind
	Values []string
}

// Kind implements Effect
func (Grant) Kind() EffectKind { return EffectKindGrant }

// Describe implements Effect
func (e Grant) Describe() string {
	label := "Proficiency"
	if e.Type == GrantResistance {
		label = "Resistance"
	}
	return fmt.Sprintf("%s: %s", label, strings.Join(e.Values, ", "))
}

func (Grant) isEffect() {}

func statLabel(s Stat) string {
	switch s {
	case StatHP:
		return "HP"
	case StatMana:
		return "Mana"
	case StatStamina:
		return "Stamina"
	case StatAdrenaline:
		return "Adrenaline"
	case StatArmor:
		return "AC"
	}
	return string(s)
}
