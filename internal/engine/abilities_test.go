package engine

import (
	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
)

func (s *EngineTestSuite) TestPointBuyTable() {
	prev := skilltree.PointBuyCost(skilltree.AbilityMin)
	prevStep := 0
	for score := skilltree.AbilityMin + 1; score <= skilltree.AbilityMax; score++ {
		step := skilltree.PointBuyCost(score) - prev
		s.Positive(step, "cost must strictly increase at %d", score)
		s.GreaterOrEqual(step, prevStep, "cost must be convex at %d", score)
		prev, prevStep = skilltree.PointBuyCost(score), step
	}
	s.Equal(0, skilltree.DefaultAbilities().PointBuyTotal())
}

func (s *EngineTestSuite) TestIncrementStrengthToFifteen() {
	state := s.engine.NewCharacter()
	for i := 0; i < 7; i++ {
		state = s.apply(state, Command{Type: CommandIncrementAbility, Ability: skilltree.AbilityStr})
	}

	s.Equal(15, state.Abilities.Str)
	s.Equal(9, state.Abilities.PointBuyTotal())
}

func (s *EngineTestSuite) TestIncrementRejections() {
	s.Run("above the maximum", func() {
		state := s.engine.NewCharacter()
		for i := 0; i < 12; i++ {
			state = s.apply(state, Command{Type: CommandIncrementAbility, Ability: skilltree.AbilityStr})
		}
		s.Equal(20, state.Abilities.Str)
		s.Equal(28, state.Abilities.PointBuyTotal())

		next, err := s.engine.IncrementAbility(state, skilltree.AbilityStr)
		s.assertRejected(err, ReasonAbilityOutOfRange)
		s.Equal(state, next)
	})

	s.Run("over the budget", func() {
		state := s.engine.NewCharacter()
		state.Abilities = skilltree.Abilities{Str: 20, Dex: 18, Con: 8, Int: 8, Wis: 8, Cha: 8}
		s.Equal(47, state.Abilities.PointBuyTotal())

		next, err := s.engine.IncrementAbility(state, skilltree.AbilityDex)
		s.assertRejected(err, ReasonAbilityBudgetExceeded)
		s.Equal(state, next)

		// 47 + 3 lands exactly on the budget
		state = s.apply(state,
			Command{Type: CommandIncrementAbility, Ability: skilltree.AbilityCon},
			Command{Type: CommandIncrementAbility, Ability: skilltree.AbilityCon},
			Command{Type: CommandIncrementAbility, Ability: skilltree.AbilityCon})
		s.Equal(skilltree.PointBuyBudget, state.Abilities.PointBuyTotal())

		_, err = s.engine.IncrementAbility(state, skilltree.AbilityWis)
		s.assertRejected(err, ReasonAbilityBudgetExceeded)
	})

	s.Run("below the minimum", func() {
		state := s.engine.NewCharacter()
		_, err := s.engine.DecrementAbility(state, skilltree.AbilityWis)
		s.assertRejected(err, ReasonAbilityOutOfRange)
	})

	s.Run("unknown ability", func() {
		_, err := s.engine.IncrementAbility(s.engine.NewCharacter(), "luck")
		s.assertRejected(err, ReasonAbilityOutOfRange)
	})
}

func (s *EngineTestSuite) TestDecrementRefundsBudget() {
	state := s.engine.NewCharacter()
	state = s.apply(state,
		Command{Type: CommandIncrementAbility, Ability: skilltree.AbilityCha},
		Command{Type: CommandIncrementAbility, Ability: skilltree.AbilityCha},
		Command{Type: CommandDecrementAbility, Ability: skilltree.AbilityCha})

	s.Equal(9, state.Abilities.Cha)
	s.Equal(1, state.Abilities.PointBuyTotal())
}
