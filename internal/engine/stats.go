package engine

import (
	"sort"

	"github.com/KirkDiggler/skilltree-api/internal/catalog"
	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
)

// Hit point constants
const (
	BaseHP             = 5
	ConstitutionHPBase = 2
)

// Modifier is floor((score - 10) / 2)
func Modifier(score int) int {
	return floorDiv(score-10, 2)
}

// ProficiencyBonus is 2 at levels 1-4 and rises by one every four levels
func ProficiencyBonus(level int) int {
	if level < skilltree.LevelMin {
		level = skilltree.LevelMin
	}
	return 2 + (level-1)/4
}

// DeriveStats computes maximum HP, resource pools and trait bonuses.
// Resource pools are always topped up: current equals maximum.
func (e *engine) DeriveStats(abilities skilltree.Abilities, effective map[string]int, special []skilltree.SpecialAbility) Stats {
	conMod := Modifier(abilities.Con)

	nodeHP := 0
	for id, points := range effective {
		if n, ok := e.catalog.Node(id); ok {
			nodeHP += n.HPBonus * points
		}
	}

	stats := Stats{
		Speed: skilltree.BaseSpeed,
	}

	var specialHP, mana, stamina, adrenaline int
	resistances := map[string]bool{}
	proficiencies := map[string]bool{}

	for _, ability := range special {
		for _, effect := range ability.Effects {
			switch fx := effect.(type) {
			case skilltree.FlatBonus:
				switch fx.Stat {
				case skilltree.StatHP:
					specialHP += fx.Amount
				case skilltree.StatMana:
					mana += fx.Amount
				case skilltree.StatStamina:
					stamina += fx.Amount
				case skilltree.StatAdrenaline:
					adrenaline += fx.Amount
				case skilltree.StatArmor:
					stats.ArmorBonus += fx.Amount
				case skilltree.StatSpeed:
					stats.Speed += fx.Amount
				}
			case skilltree.ConstitutionHP:
				specialHP += ConstitutionHPBase + conMod
			case skilltree.Flag:
				if fx.Name == skilltree.FlagDarkvision {
					stats.Darkvision = true
				}
			case skilltree.Grant:
				target := proficiencies
				if fx.Type == skilltree.GrantResistance {
					target = resistances
				}
				for _, v := range fx.Values {
					target[v] = true
				}
			}
		}
	}

	stats.MaxHP = BaseHP + conMod + nodeHP + specialHP
	if stats.MaxHP < 0 {
		stats.MaxHP = 0
	}

	stats.Resources = skilltree.Resources{
		Adrenaline: fullPool(effective[catalog.NodeAdrenaline] + adrenaline),
		Mana:       fullPool(effective[catalog.NodeMana] + mana),
		Stamina:    fullPool(effective[catalog.NodeStamina] + stamina),
	}
	stats.Resistances = sortedKeys(resistances)
	stats.Proficiencies = sortedKeys(proficiencies)

	return stats
}

// ArmorClass is armor plus the base dexterity modifier when enabled plus
// armor bonuses from special abilities
func ArmorClass(state skilltree.CharacterState, bonus int) int {
	ac := state.Armor + bonus
	if state.UseDexForArmor {
		ac += Modifier(state.Abilities.Dex)
	}
	return ac
}

type hpRule func(prev, next *skilltree.CharacterState)

// hpFollowMax fills HP when the maximum grew and clamps it otherwise
func hpFollowMax(prev, next *skilltree.CharacterState) {
	if next.MaxHP > prev.MaxHP {
		next.HP = next.MaxHP
		return
	}
	next.HP = clamp(next.HP, 0, next.MaxHP)
}

func hpClamp(_, next *skilltree.CharacterState) {
	next.HP = clamp(next.HP, 0, next.MaxHP)
}

func hpFill(_, next *skilltree.CharacterState) {
	next.HP = next.MaxHP
}

// settle re-aggregates traits, optionally revalidates investments, and
// re-derives every computed field of next.
func (e *engine) settle(prev, next skilltree.CharacterState, revalidate bool) skilltree.CharacterState {
	return e.derive(prev, next, revalidate, hpFollowMax)
}

func (e *engine) derive(prev, next skilltree.CharacterState, revalidate bool, rule hpRule) skilltree.CharacterState {
	agg := e.Aggregate(next)
	next.FreeNodePoints = agg.FreeNodePoints

	if revalidate {
		e.revalidate(&next)
	}

	byNode, _ := e.effectivePoints(next)
	stats := e.DeriveStats(agg.EffectiveAbilities, byNode, agg.SpecialAbilities)

	next.MaxHP = stats.MaxHP
	rule(&prev, &next)
	next.Resources = stats.Resources
	next.Derived = skilltree.Derived{
		EffectiveAbilities: agg.EffectiveAbilities,
		SpecialAbilities:   agg.SpecialAbilities,
		ArmorClass:         ArmorClass(next, stats.ArmorBonus),
		Speed:              stats.Speed,
		ProficiencyBonus:   ProficiencyBonus(next.Level),
		Darkvision:         stats.Darkvision,
		Resistances:        stats.Resistances,
		Proficiencies:      stats.Proficiencies,
	}

	return next
}

func fullPool(size int) skilltree.Pool {
	if size < 0 {
		size = 0
	}
	return skilltree.Pool{Current: size, Max: size}
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
