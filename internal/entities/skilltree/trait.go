package skilltree

// AbilityKey names one of the six ability scores
type AbilityKey string

// Ability keys
const (
	AbilityStr AbilityKey = "str"
	AbilityDex AbilityKey = "dex"
	AbilityCon AbilityKey = "con"
	AbilityInt AbilityKey = "int"
	AbilityWis AbilityKey = "wis"
	AbilityCha AbilityKey = "cha"
)

// AbilityKeys lists the abilities in sheet order
var AbilityKeys = []AbilityKey{AbilityStr, AbilityDex, AbilityCon, AbilityInt, AbilityWis, AbilityCha}

// IsValid reports whether k is a known ability
func (k AbilityKey) IsValid() bool {
	for _, key := range AbilityKeys {
		if key == k {
			return true
		}
	}
	return false
}

// TraitKind discriminates races, birthsigns and feats
type TraitKind string

// Trait kinds
const (
	TraitKindRace      TraitKind = "race"
	TraitKindBirthsign TraitKind = "birthsign"
	TraitKindFeat      TraitKind = "feat"
)

// TraitKinds lists the kinds in the order their effects are aggregated
var TraitKinds = []TraitKind{TraitKindRace, TraitKindBirthsign, TraitKindFeat}

// IsValid reports whether k is a known trait kind
func (k TraitKind) IsValid() bool {
	return k == TraitKindRace || k == TraitKindBirthsign || k == TraitKindFeat
}

// Category is the special ability category shown on the sheet
func (k TraitKind) Category() AbilityCategory {
	switch k {
	case TraitKindRace:
		return CategoryRacial
	case TraitKindBirthsign:
		return CategoryBirthsign
	}
	return CategoryFeat
}

// AbilityCategory tags a special ability with its source kind
type AbilityCategory string

// Special ability categories
const (
	CategoryRacial    AbilityCategory = "racial"
	CategoryBirthsign AbilityCategory = "birthsign"
	CategoryFeat      AbilityCategory = "feat"
)

// AbilityModifier is a signed delta to one ability
type AbilityModifier struct {
	Ability  AbilityKey
	Modifier int
}

// FreeNodeGrant gives unpaid points in a node
type FreeNodeGrant struct {
	NodeID string
	Points int
}

// SpecialAbility is a named grant attributed to a trait
type SpecialAbility struct {
	ID          string
	Name        string
	Description string
	Source      string
	Category    AbilityCategory
	Effects     []Effect
}

// EffectBundle is everything a trait contributes to a character
type EffectBundle struct {
	AbilityModifiers []AbilityModifier
	SpecialAbilities []SpecialAbility
	FreeNodeGrants   []FreeNodeGrant
	Description      string
}

// Trait is a race, birthsign or feat
type Trait struct {
	ID           string
	Kind         TraitKind
	Name         string
	Description  string
	Icon         string
	Benefits     []string
	Requirements []string
	Effects      EffectBundle
}

// Source returns the attribution string, e.g. "race:orc"
func (t *Trait) Source() string {
	return string(t.Kind) + ":" + t.ID
}
