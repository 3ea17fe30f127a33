package engine

import (
	"log/slog"

	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
)

// Aggregate combines the selected race, birthsign and feats. Ability
// modifiers and free node points are summed; special abilities are
// concatenated race first, then birthsign, then feats in selection order,
// without de-duplication. Unknown trait ids contribute nothing.
func (e *engine) Aggregate(state skilltree.CharacterState) Aggregate {
	agg := Aggregate{
		EffectiveAbilities: state.Abilities,
		SpecialAbilities:   []skilltree.SpecialAbility{},
		FreeNodePoints:     map[string]int{},
	}

	for _, t := range e.selectedTraits(state) {
		for _, m := range t.Effects.AbilityModifiers {
			agg.EffectiveAbilities = agg.EffectiveAbilities.With(m.Ability, agg.EffectiveAbilities.Get(m.Ability)+m.Modifier)
		}
		agg.SpecialAbilities = append(agg.SpecialAbilities, t.Effects.SpecialAbilities...)
		for _, g := range t.Effects.FreeNodeGrants {
			agg.FreeNodePoints[g.NodeID] += g.Points
		}
	}

	return agg
}

func (e *engine) selectedTraits(state skilltree.CharacterState) []*skilltree.Trait {
	var out []*skilltree.Trait

	lookup := func(kind skilltree.TraitKind, id string) {
		if id == "" {
			return
		}
		t, ok := e.catalog.Trait(kind, id)
		if !ok {
			slog.Warn("Skipping unknown trait", "kind", kind, "id", id)
			return
		}
		out = append(out, t)
	}

	lookup(skilltree.TraitKindRace, state.RaceID)
	lookup(skilltree.TraitKindBirthsign, state.BirthsignID)
	for _, id := range state.FeatIDs {
		lookup(skilltree.TraitKindFeat, id)
	}

	return out
}

func (e *engine) setTrait(state skilltree.CharacterState, kind skilltree.TraitKind, id string) (skilltree.CharacterState, error) {
	if id != "" {
		if _, ok := e.catalog.Trait(kind, id); !ok {
			return state, reject(ReasonTraitNotFound, "%s %s not found", kind, id).
				WithMeta("trait_id", id)
		}
	}

	next := state.Clone()
	switch kind {
	case skilltree.TraitKindRace:
		next.RaceID = id
	case skilltree.TraitKindBirthsign:
		next.BirthsignID = id
	}

	return e.settle(state, next, true), nil
}

// toggleFeat selects the feat, or deselects it when already selected. A
// selected id the catalog no longer knows can still be deselected.
func (e *engine) toggleFeat(state skilltree.CharacterState, id string) (skilltree.CharacterState, error) {
	if _, ok := e.catalog.Trait(skilltree.TraitKindFeat, id); !ok && !state.HasFeat(id) {
		return state, reject(ReasonTraitNotFound, "feat %s not found", id).
			WithMeta("trait_id", id)
	}

	next := state.Clone()
	if next.HasFeat(id) {
		feats := next.FeatIDs[:0]
		for _, f := range next.FeatIDs {
			if f != id {
				feats = append(feats, f)
			}
		}
		next.FeatIDs = feats
	} else {
		next.FeatIDs = append(next.FeatIDs, id)
	}

	return e.settle(state, next, true), nil
}
