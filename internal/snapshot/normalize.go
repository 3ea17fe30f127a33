package snapshot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/pkg/idgen"
)

// NodeLookup resolves skill nodes by id
type NodeLookup interface {
	Node(id string) (*skilltree.SkillNode, bool)
}

// Result is the outcome of normalizing a document
type Result struct {
	State skilltree.CharacterState
	// HPMissing is set when the document had no hit points; the caller
	// should treat the character as being at full health.
	HPMissing bool
	// Dropped describes every value that could not be kept
	Dropped []string
}

// Normalize turns a decoded document into character state. It is the single
// place defaults are applied: missing abilities read as the floor, level 1,
// armor 10, dexterity folded into armor, and empty pools and collections.
//
// Values are clamped into range and ability scores over the point-buy budget
// are lowered. Points on unknown nodes are dropped and the rest are floored to
// a multiple of the node cost. Color totals are rebuilt.
// Derived values are left for the engine to recompute.
func Normalize(doc *Document, nodes NodeLookup, ids idgen.Generator) Result {
	if doc == nil {
		doc = &Document{}
	}

	res := Result{State: skilltree.NewCharacterState()}
	res.Dropped = append(res.Dropped, doc.dropped...)
	state := &res.State

	state.Name = doc.Name
	state.Notes = doc.Notes
	state.Abilities = normalizeAbilities(doc.Abilities)
	if cost := state.Abilities.PointBuyTotal(); cost > skilltree.PointBuyBudget {
		state.Abilities = fitPointBuy(state.Abilities)
		res.Dropped = append(res.Dropped, fmt.Sprintf("abilities: point-buy cost %d exceeds %d, lowered to %d",
			cost, skilltree.PointBuyBudget, state.Abilities.PointBuyTotal()))
	}
	state.Level = clamp(valueOr(doc.Level, skilltree.LevelMin), skilltree.LevelMin, skilltree.LevelMax)
	state.Armor = max(valueOr(doc.Armor, skilltree.DefaultArmor), skilltree.ArmorMin)
	if doc.UseDexForArmor != nil {
		state.UseDexForArmor = *doc.UseDexForArmor
	}

	if doc.HP == nil {
		res.HPMissing = true
	} else {
		state.HP = max(*doc.HP, 0)
	}

	if doc.Resources != nil {
		state.Resources = skilltree.Resources{
			Adrenaline: normalizePool(doc.Resources.Adrenaline),
			Mana:       normalizePool(doc.Resources.Mana),
			Stamina:    normalizePool(doc.Resources.Stamina),
		}
	}

	state.RaceID = strings.TrimSpace(doc.RaceID)
	state.BirthsignID = strings.TrimSpace(doc.BirthsignID)
	for _, id := range doc.FeatIDs {
		id = strings.TrimSpace(id)
		if id == "" || state.HasFeat(id) {
			continue
		}
		state.FeatIDs = append(state.FeatIDs, id)
	}

	for _, id := range sortedKeys(doc.NodePoints) {
		points := doc.NodePoints[id]
		node, ok := nodes.Node(id)
		if !ok {
			res.Dropped = append(res.Dropped, fmt.Sprintf("node_points.%s: unknown node", id))
			continue
		}
		if points < 0 {
			res.Dropped = append(res.Dropped, fmt.Sprintf("node_points.%s: %d is negative", id, points))
			continue
		}
		kept := points - points%node.Cost
		if kept != points {
			res.Dropped = append(res.Dropped, fmt.Sprintf("node_points.%s: %d is not a multiple of cost %d", id, points, node.Cost))
		}
		if kept == 0 {
			continue
		}
		state.NodePoints[id] = kept
		state.ColorPoints[node.Color] += kept
	}

	for _, id := range sortedKeys(doc.NodeChoices) {
		value := doc.NodeChoices[id]
		if value == "" {
			continue
		}
		node, ok := nodes.Node(id)
		if !ok || !node.HasChoice(value) {
			res.Dropped = append(res.Dropped, fmt.Sprintf("node_choices.%s: %q is not a choice", id, value))
			continue
		}
		state.NodeChoices[id] = value
	}

	seen := make(map[string]bool, len(doc.Inventory))
	for i, item := range doc.Inventory {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			res.Dropped = append(res.Dropped, fmt.Sprintf("inventory[%d]: name is required", i))
			continue
		}
		id := item.ID
		if id == "" || seen[id] {
			id = ids.Generate()
		}
		seen[id] = true
		state.Inventory = append(state.Inventory, skilltree.InventoryItem{
			ID:            id,
			Name:          name,
			Quantity:      max(item.Quantity, 0),
			Unit:          item.Unit,
			WeightPerUnit: max(item.WeightPerUnit, 0),
			Description:   item.Description,
		})
	}

	return res
}

func normalizeAbilities(in *AbilityScores) skilltree.Abilities {
	if in == nil {
		return skilltree.DefaultAbilities()
	}
	score := func(v *int) int {
		return clamp(valueOr(v, skilltree.AbilityMin), skilltree.AbilityMin, skilltree.AbilityMax)
	}
	return skilltree.Abilities{
		Str: score(in.Str),
		Dex: score(in.Dex),
		Con: score(in.Con),
		Int: score(in.Int),
		Wis: score(in.Wis),
		Cha: score(in.Cha),
	}
}

// fitPointBuy lowers the highest score, earliest in sheet order on ties,
// until the set fits the point-buy budget
func fitPointBuy(a skilltree.Abilities) skilltree.Abilities {
	for a.PointBuyTotal() > skilltree.PointBuyBudget {
		highest := skilltree.AbilityKeys[0]
		for _, key := range skilltree.AbilityKeys[1:] {
			if a.Get(key) > a.Get(highest) {
				highest = key
			}
		}
		a = a.With(highest, a.Get(highest)-1)
	}
	return a
}

func normalizePool(p Pool) skilltree.Pool {
	size := max(p.Max, 0)
	return skilltree.Pool{Current: clamp(p.Current, 0, size), Max: size}
}

func valueOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
