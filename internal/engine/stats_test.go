package engine

import (
	"github.com/KirkDiggler/skilltree-api/internal/catalog"
	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
)

func (s *EngineTestSuite) TestModifier() {
	for score, expected := range map[int]int{7: -2, 8: -1, 9: -1, 10: 0, 11: 0, 12: 1, 15: 2, 20: 5} {
		s.Equal(expected, Modifier(score), "score %d", score)
	}
}

func (s *EngineTestSuite) TestProficiencyBonus() {
	for level, expected := range map[int]int{1: 2, 4: 2, 5: 3, 8: 3, 9: 4, 13: 5, 16: 5, 17: 6, 20: 6} {
		s.Equal(expected, ProficiencyBonus(level), "level %d", level)
	}
}

func (s *EngineTestSuite) TestMaxHP() {
	s.Run("constitution sets base hp", func() {
		state := s.engine.NewCharacter()
		s.Equal(4, state.MaxHP)

		state = s.apply(state,
			Command{Type: CommandIncrementAbility, Ability: skilltree.AbilityCon},
			Command{Type: CommandIncrementAbility, Ability: skilltree.AbilityCon})
		s.Equal(5, state.MaxHP)
	})

	s.Run("node hp bonus scales with points", func() {
		state := s.apply(s.engine.NewCharacter(), invest("g"))
		s.Equal(4+3*2, state.MaxHP)
	})

	s.Run("free points add node hp", func() {
		state := s.apply(s.engine.NewCharacter(), Command{Type: CommandSetRace, TraitID: "giant"})
		s.Equal(4+2, state.MaxHP)
	})
}

func (s *EngineTestSuite) TestCurrentHPRule() {
	state := s.apply(s.engine.NewCharacter(), invest("g"))
	s.Equal(10, state.MaxHP)
	s.Equal(10, state.HP, "max increase fills current hp")

	state = s.apply(state, Command{Type: CommandSetHP, Value: 3})
	s.Equal(3, state.HP)

	state = s.apply(state, invest("b"))
	s.Equal(11, state.MaxHP)
	s.Equal(11, state.HP)

	state = s.apply(state, Command{Type: CommandSetHP, Value: 7}, remove("g"))
	s.Equal(5, state.MaxHP)
	s.Equal(5, state.HP, "current hp is clamped to the new max")

	state = s.apply(state, Command{Type: CommandSetHP, Value: 2}, remove("b"))
	s.Equal(4, state.MaxHP)
	s.Equal(2, state.HP, "current hp below the new max is kept")
}

func (s *EngineTestSuite) TestDerivedStatsWithEmbeddedCatalog() {
	s.useEmbeddedCatalog()

	s.Run("constitution based hp", func() {
		state := s.apply(s.engine.NewCharacter(),
			Command{Type: CommandSetRace, TraitID: "dwarf"},
			Command{Type: CommandSetBirthsign, TraitID: "lord"})
		// con 10: base 5, lord 2 + 0
		s.Equal(7, state.MaxHP)
		s.Equal(7, state.HP)
	})

	s.Run("flat hp bonus", func() {
		state := s.apply(s.engine.NewCharacter(), Command{Type: CommandSetBirthsign, TraitID: "warrior"})
		// con 9: base 4, warrior 10
		s.Equal(14, state.MaxHP)
		s.Equal([]string{"martial-weapons"}, state.Derived.Proficiencies)
	})

	s.Run("mana pool", func() {
		state := s.apply(s.engine.NewCharacter(),
			Command{Type: CommandSetBirthsign, TraitID: "mage"},
			invest(catalog.NodeMana))
		s.Equal(skilltree.Pool{Current: 21, Max: 21}, state.Resources.Mana)
		s.Equal(skilltree.Pool{}, state.Resources.Stamina)
	})

	s.Run("speed and stamina", func() {
		state := s.apply(s.engine.NewCharacter(),
			Command{Type: CommandSetBirthsign, TraitID: "steed"},
			invest(catalog.NodeStamina), invest(catalog.NodeStamina))
		s.Equal(40, state.Derived.Speed)
		s.Equal(12, state.Resources.Stamina.Max)
	})

	s.Run("armor class", func() {
		state := s.engine.NewCharacter()
		s.Equal(9, state.Derived.ArmorClass)

		for i := 0; i < 6; i++ {
			state = s.apply(state, Command{Type: CommandIncrementAbility, Ability: skilltree.AbilityDex})
		}
		s.Equal(14, state.Abilities.Dex)
		s.Equal(12, state.Derived.ArmorClass)

		state = s.apply(state,
			Command{Type: CommandToggleFeat, TraitID: "dual-wielder"},
			Command{Type: CommandToggleFeat, TraitID: "defensive-duelist"})
		s.Equal(16, state.Derived.EffectiveAbilities.Dex)
		s.Equal(15, state.Derived.ArmorClass, "armor uses base dex plus feat bonuses")

		state = s.apply(state, Command{Type: CommandToggleUseDex})
		s.Equal(13, state.Derived.ArmorClass)

		state = s.apply(state, Command{Type: CommandSetArmor, Value: 0})
		s.Equal(3, state.Derived.ArmorClass)
	})

	s.Run("resistances are sorted and de-duplicated", func() {
		state := s.apply(s.engine.NewCharacter(),
			Command{Type: CommandSetRace, TraitID: "dwarf"},
			Command{Type: CommandSetBirthsign, TraitID: "serpent"})
		s.Equal([]string{"poison"}, state.Derived.Resistances)
		s.Len(state.Derived.SpecialAbilities, 6)

		state = s.apply(state,
			Command{Type: CommandSetRace, TraitID: "tiefling"},
			Command{Type: CommandSetBirthsign, TraitID: "atronach"})
		s.Equal([]string{"fire", "magical"}, state.Derived.Resistances)
	})

	s.Run("proficiency bonus follows level", func() {
		state := s.apply(s.engine.NewCharacter(), Command{Type: CommandSetLevel, Value: 9})
		s.Equal(4, state.Derived.ProficiencyBonus)
	})
}
