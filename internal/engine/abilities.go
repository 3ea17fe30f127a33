package engine

import (
	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
)

// IncrementAbility raises a base score by one
func (e *engine) IncrementAbility(state skilltree.CharacterState, key skilltree.AbilityKey) (skilltree.CharacterState, error) {
	if !key.IsValid() {
		return state, reject(ReasonAbilityOutOfRange, "unknown ability %q", key)
	}

	current := state.Abilities.Get(key)
	if current >= skilltree.AbilityMax {
		return state, reject(ReasonAbilityOutOfRange, "%s is already %d", key, skilltree.AbilityMax).
			WithMeta("ability", string(key))
	}

	abilities := state.Abilities.With(key, current+1)
	if cost := abilities.PointBuyTotal(); cost > skilltree.PointBuyBudget {
		return state, reject(ReasonAbilityBudgetExceeded, "raising %s to %d costs %d of %d points", key, current+1, cost, skilltree.PointBuyBudget).
			WithMeta("ability", string(key))
	}

	next := state.Clone()
	next.Abilities = abilities
	return e.settle(state, next, false), nil
}

// DecrementAbility lowers a base score by one
func (e *engine) DecrementAbility(state skilltree.CharacterState, key skilltree.AbilityKey) (skilltree.CharacterState, error) {
	if !key.IsValid() {
		return state, reject(ReasonAbilityOutOfRange, "unknown ability %q", key)
	}

	current := state.Abilities.Get(key)
	if current <= skilltree.AbilityMin {
		return state, reject(ReasonAbilityOutOfRange, "%s is already %d", key, skilltree.AbilityMin).
			WithMeta("ability", string(key))
	}

	next := state.Clone()
	next.Abilities = state.Abilities.With(key, current-1)
	return e.settle(state, next, false), nil
}
