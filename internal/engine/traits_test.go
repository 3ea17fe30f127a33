package engine

import (
	"github.com/KirkDiggler/skilltree-api/internal/catalog"
	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
)

func (s *EngineTestSuite) useEmbeddedCatalog() {
	c, err := catalog.Load("")
	s.Require().NoError(err)
	s.engine = s.newEngine(c)
}

func (s *EngineTestSuite) TestAggregateStacksModifiers() {
	state := s.engine.NewCharacter()
	state = s.apply(state,
		Command{Type: CommandSetRace, TraitID: "giant"},
		Command{Type: CommandSetBirthsign, TraitID: "ox"})

	s.Equal(state.Abilities.Str+3, state.Derived.EffectiveAbilities.Str)
	s.Equal(skilltree.AbilityMin, state.Abilities.Str, "base scores are untouched")
}

func (s *EngineTestSuite) TestAggregateWithEmbeddedCatalog() {
	s.useEmbeddedCatalog()

	s.Run("orc and warrior strength", func() {
		state := s.apply(s.engine.NewCharacter(),
			Command{Type: CommandSetRace, TraitID: "orc"},
			Command{Type: CommandSetBirthsign, TraitID: "warrior"})

		agg := s.engine.Aggregate(state)
		s.Equal(8+3, agg.EffectiveAbilities.Str)
		s.Equal(8+2, agg.EffectiveAbilities.Con)
		s.Equal(map[string]int{catalog.NodeAdrenaline: 1}, agg.FreeNodePoints)
	})

	s.Run("special abilities keep source order without de-duplication", func() {
		state := s.apply(s.engine.NewCharacter(),
			Command{Type: CommandToggleFeat, TraitID: "lucky"},
			Command{Type: CommandSetRace, TraitID: "elf"},
			Command{Type: CommandSetBirthsign, TraitID: "shadow"},
			Command{Type: CommandToggleFeat, TraitID: "alert"})

		var ids []string
		for _, a := range state.Derived.SpecialAbilities {
			ids = append(ids, a.ID)
		}
		s.Equal([]string{
			"elf-darkvision", "elf-fey-ancestry", "elf-trance",
			"shadow-invisibility", "shadow-darkvision",
			"lucky-points",
			"alert-no-surprise", "alert-initiative-bonus",
		}, ids)
		s.True(state.Derived.Darkvision)
	})

	s.Run("toggling a feat twice removes it", func() {
		state := s.apply(s.engine.NewCharacter(),
			Command{Type: CommandToggleFeat, TraitID: "athlete"},
			Command{Type: CommandToggleFeat, TraitID: "athlete"})
		s.Empty(state.FeatIDs)
		s.Equal(8, state.Derived.EffectiveAbilities.Str)
	})

	s.Run("unknown traits are rejected", func() {
		state := s.engine.NewCharacter()
		for _, cmd := range []Command{
			{Type: CommandSetRace, TraitID: "warrior"},
			{Type: CommandSetBirthsign, TraitID: "orc"},
			{Type: CommandToggleFeat, TraitID: "flying"},
		} {
			next, err := s.engine.Apply(state, cmd)
			s.assertRejected(err, ReasonTraitNotFound)
			s.Equal(state, next)
		}
	})

	s.Run("unknown ids already on the state are skipped", func() {
		state := s.engine.NewCharacter()
		state.RaceID = "centaur"
		state.FeatIDs = []string{"retired-feat", "alert"}

		agg := s.engine.Aggregate(state)
		s.Equal(9, agg.EffectiveAbilities.Dex)
		s.Len(agg.SpecialAbilities, 2)

		next := s.apply(state, Command{Type: CommandToggleFeat, TraitID: "retired-feat"})
		s.Equal([]string{"alert"}, next.FeatIDs)
	})
}

func (s *EngineTestSuite) TestOrcFreeAdrenaline() {
	s.useEmbeddedCatalog()

	state := s.apply(s.engine.NewCharacter(), Command{Type: CommandSetRace, TraitID: "orc"})
	s.Equal(1, state.Resources.Adrenaline.Max)
	s.Equal(1, state.Resources.Adrenaline.Current)
	s.Zero(state.TotalSpent(), "free points are not charged")

	// power-strike needs 2 adrenaline points: one free plus one bought
	_, err := s.engine.Invest(state, "power-strike")
	s.assertRejected(err, ReasonPrerequisiteNotMet)

	state = s.apply(state, invest(catalog.NodeAdrenaline), invest("power-strike"))
	s.Equal(2, state.Resources.Adrenaline.Max)
	s.Equal(2, state.NodePoints["power-strike"])

	state = s.apply(state, Command{Type: CommandSetRace, TraitID: "human"})
	s.Zero(state.NodePoints["power-strike"], "switching away from orc relocks power-strike")
	s.Equal(1, state.NodePoints[catalog.NodeAdrenaline])
	s.Equal(1, state.Resources.Adrenaline.Max)
}
