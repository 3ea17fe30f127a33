package skilltree

import "slices"

// Character bounds
const (
	AbilityMin     = 8
	AbilityMax     = 20
	LevelMin       = 1
	LevelMax       = 20
	ArmorMin       = 0
	DefaultArmor   = 10
	PointsPerLevel = 5
	PointBuyBudget = 50
	BaseSpeed      = 30
)

// Abilities holds the six ability scores
type Abilities struct {
	Str int `json:"str"`
	Dex int `json:"dex"`
	Con int `json:"con"`
	Int int `json:"int"`
	Wis int `json:"wis"`
	Cha int `json:"cha"`
}

// DefaultAbilities returns every ability at the point-buy floor
func DefaultAbilities() Abilities {
	return Abilities{
		Str: AbilityMin,
		Dex: AbilityMin,
		Con: AbilityMin,
		Int: AbilityMin,
		Wis: AbilityMin,
		Cha: AbilityMin,
	}
}

// pointBuyCosts is the cumulative cost of each score from 8 to 20. The step
// between scores never shrinks.
var pointBuyCosts = map[int]int{
	8:  0,
	9:  1,
	10: 2,
	11: 3,
	12: 4,
	13: 5,
	14: 7,
	15: 9,
	16: 12,
	17: 15,
	18: 19,
	19: 23,
	20: 28,
}

// PointBuyCost is the cumulative cost of one score. Scores outside the
// table are clamped to it.
func PointBuyCost(score int) int {
	return pointBuyCosts[min(max(score, AbilityMin), AbilityMax)]
}

// PointBuyTotal is the cost of all six scores
func (a Abilities) PointBuyTotal() int {
	total := 0
	for _, key := range AbilityKeys {
		total += PointBuyCost(a.Get(key))
	}
	return total
}

// Get returns the score for key; unknown keys read as zero
func (a Abilities) Get(key AbilityKey) int {
	switch key {
	case AbilityStr:
		return a.Str
	case AbilityDex:
		return a.Dex
	case AbilityCon:
		return a.Con
	case AbilityInt:
		return a.Int
	case AbilityWis:
		return a.Wis
	case AbilityCha:
		return a.Cha
	}
	return 0
}

// With returns a copy with key set to value
func (a Abilities) With(key AbilityKey, value int) Abilities {
	switch key {
	case AbilityStr:
		a.Str = value
	case AbilityDex:
		a.Dex = value
	case AbilityCon:
		a.Con = value
	case AbilityInt:
		a.Int = value
	case AbilityWis:
		a.Wis = value
	case AbilityCha:
		a.Cha = value
	}
	return a
}

// Pool is a resource with a current and maximum value
type Pool struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// Resources are the three named pools
type Resources struct {
	Adrenaline Pool `json:"adrenaline"`
	Mana       Pool `json:"mana"`
	Stamina    Pool `json:"stamina"`
}

// InventoryItem is one line of the inventory
type InventoryItem struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity"`
	Unit          string  `json:"unit"`
	WeightPerUnit float64 `json:"weight_per_unit"`
	Description   string  `json:"description"`
}

// TotalWeight is quantity times unit weight
func (i InventoryItem) TotalWeight() float64 {
	return float64(i.Quantity) * i.WeightPerUnit
}

// Derived is recomputed from the rest of the state after every command.
// It is a cache and never read back as input.
type Derived struct {
	EffectiveAbilities Abilities
	SpecialAbilities   []SpecialAbility
	ArmorClass         int
	Speed              int
	ProficiencyBonus   int
	Darkvision         bool
	Resistances        []string
	Proficiencies      []string
}

// CharacterState is the complete state of one character. Values are treated
// as immutable: operations return a modified Clone.
type CharacterState struct {
	Abilities      Abilities
	Level          int
	Armor          int
	UseDexForArmor bool
	HP             int
	MaxHP          int
	Resources      Resources

	// NodePoints are user-spent points; ColorPoints caches their per-color sums.
	NodePoints  map[string]int
	ColorPoints map[Color]int
	// FreeNodePoints are granted by traits and never charged to the budget.
	FreeNodePoints map[string]int

	RaceID      string
	BirthsignID string
	FeatIDs     []string
	NodeChoices map[string]string

	Name      string
	Notes     string
	Inventory []InventoryItem

	Derived Derived
}

// NewCharacterState returns a level 1 character with default values
func NewCharacterState() CharacterState {
	return CharacterState{
		Abilities:      DefaultAbilities(),
		Level:          LevelMin,
		Armor:          DefaultArmor,
		UseDexForArmor: true,
		NodePoints:     map[string]int{},
		ColorPoints:    map[Color]int{},
		FreeNodePoints: map[string]int{},
		FeatIDs:        []string{},
		NodeChoices:    map[string]string{},
		Inventory:      []InventoryItem{},
	}
}

// Clone returns a deep copy of the state
func (c CharacterState) Clone() CharacterState {
	out := c
	out.NodePoints = cloneMap(c.NodePoints)
	out.ColorPoints = cloneMap(c.ColorPoints)
	out.FreeNodePoints = cloneMap(c.FreeNodePoints)
	out.NodeChoices = cloneMap(c.NodeChoices)
	out.FeatIDs = slices.Clone(c.FeatIDs)
	out.Inventory = slices.Clone(c.Inventory)
	out.Derived.SpecialAbilities = slices.Clone(c.Derived.SpecialAbilities)
	out.Derived.Resistances = slices.Clone(c.Derived.Resistances)
	out.Derived.Proficiencies = slices.Clone(c.Derived.Proficiencies)
	return out
}

// TotalSpent is the sum of user-spent node points
func (c CharacterState) TotalSpent() int {
	total := 0
	for _, p := range c.NodePoints {
		total += p
	}
	return total
}

// SkillPointBudget is the number of points the level allows
func (c CharacterState) SkillPointBudget() int {
	return c.Level * PointsPerLevel
}

// AvailableSkillPoints may be negative after a level decrease
func (c CharacterState) AvailableSkillPoints() int {
	return c.SkillPointBudget() - c.TotalSpent()
}

// EffectivePoints returns user plus free points for a node
func (c CharacterState) EffectivePoints(nodeID string) int {
	return c.NodePoints[nodeID] + c.FreeNodePoints[nodeID]
}

// HasFeat reports whether the feat is selected
func (c CharacterState) HasFeat(id string) bool {
	for _, f := range c.FeatIDs {
		if f == id {
			return true
		}
	}
	return false
}

// ItemIndex returns the position of the item with id, or -1
func (c CharacterState) ItemIndex(id string) int {
	for i, item := range c.Inventory {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
