package engine

import (
	"math/rand"

	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
)

func (s *EngineTestSuite) TestInvest() {
	s.Run("adds cost to the node and its color", func() {
		state := s.engine.NewCharacter()
		next := s.apply(state, invest("g"))

		s.Equal(3, next.NodePoints["g"])
		s.Equal(3, next.ColorPoints[skilltree.ColorGreen])
		s.Equal(2, next.AvailableSkillPoints())
		s.Empty(state.NodePoints, "input state must not change")
	})

	s.Run("unknown node", func() {
		_, err := s.engine.Invest(s.engine.NewCharacter(), "ghost")
		s.assertRejected(err, ReasonNodeNotFound)
	})

	s.Run("locked node", func() {
		_, err := s.engine.Invest(s.engine.NewCharacter(), "a")
		s.assertRejected(err, ReasonPrerequisiteNotMet)
	})

	s.Run("insufficient skill points", func() {
		state := s.apply(s.engine.NewCharacter(), invest("g"), invest("b"), invest("b"))
		s.Equal(0, state.AvailableSkillPoints())

		next, err := s.engine.Invest(state, "e")
		s.assertRejected(err, ReasonInsufficientSkillPoints)
		s.Equal(state, next)
	})

	s.Run("locked is reported before budget", func() {
		state := s.apply(s.engine.NewCharacter(), invest("g"), invest("e"), invest("e"))
		_, err := s.engine.Invest(state, "a")
		s.assertRejected(err, ReasonPrerequisiteNotMet)
	})
}

func (s *EngineTestSuite) TestRemove() {
	s.Run("requires a full cost unit", func() {
		_, err := s.engine.Remove(s.engine.NewCharacter(), "b")
		s.assertRejected(err, ReasonInsufficientInvestment)
	})

	s.Run("unknown node", func() {
		_, err := s.engine.Remove(s.engine.NewCharacter(), "ghost")
		s.assertRejected(err, ReasonNodeNotFound)
	})

	s.Run("without dependents only touches the node and its color", func() {
		state := s.apply(s.engine.NewCharacter(), Command{Type: CommandSetLevel, Value: 3},
			invest("b"), invest("b"), invest("a"), invest("e"), invest("g"))

		next := s.apply(state, remove("g"))

		s.Zero(next.NodePoints["g"])
		s.Zero(next.ColorPoints[skilltree.ColorGreen])
		for _, id := range []string{"a", "b", "e"} {
			s.Equal(state.NodePoints[id], next.NodePoints[id], "node %s", id)
		}
		s.Equal(state.ColorPoints[skilltree.ColorRed], next.ColorPoints[skilltree.ColorRed])
		s.Equal(state.ColorPoints[skilltree.ColorBlue], next.ColorPoints[skilltree.ColorBlue])
	})

	s.Run("removing twice from an empty node is rejected", func() {
		state := s.apply(s.engine.NewCharacter(), invest("e"), remove("e"))
		next, err := s.engine.Remove(state, "e")
		s.assertRejected(err, ReasonInsufficientInvestment)
		s.Equal(state, next)
	})
}

func (s *EngineTestSuite) TestThresholdScenario() {
	state := s.engine.NewCharacter()
	a, _ := s.engine.catalog.Node("a")

	state = s.apply(state, invest("b"))
	s.False(s.engine.isUnlocked(state, a), "one point in b leaves a locked")

	state = s.apply(state, invest("b"))
	s.True(s.engine.isUnlocked(state, a), "two points in b unlock a")

	state = s.apply(state, invest("a"), remove("b"), remove("b"))
	s.Zero(state.NodePoints["b"])
	s.Zero(state.NodePoints["a"], "a loses its points once b drops below 2")
	s.Zero(state.ColorPoints[skilltree.ColorRed])
}

func (s *EngineTestSuite) TestCascade() {
	s.Run("walks the whole chain", func() {
		state := s.apply(s.engine.NewCharacter(), Command{Type: CommandSetLevel, Value: 2},
			invest("b"), invest("b"), invest("a"), invest("c"))
		s.Equal(2, state.NodePoints["c"])

		next := s.apply(state, remove("b"))

		s.Equal(1, next.NodePoints["b"])
		s.Zero(next.NodePoints["a"])
		s.Zero(next.NodePoints["c"])
		s.Equal(1, next.ColorPoints[skilltree.ColorRed])
	})

	s.Run("OR dependent survives while an alternative holds", func() {
		state := s.apply(s.engine.NewCharacter(), invest("b"), invest("e"), invest("d"))
		next := s.apply(state, remove("b"))
		s.Equal(1, next.NodePoints["d"])

		next = s.apply(next, remove("e"))
		s.Zero(next.NodePoints["d"])
		s.Zero(next.ColorPoints[skilltree.ColorBlue])
	})

	s.Run("color requirement dependents", func() {
		state := s.apply(s.engine.NewCharacter(), Command{Type: CommandSetLevel, Value: 2},
			invest("b"), invest("b"), invest("a"), invest("f"))
		s.Equal(1, state.NodePoints["f"])

		next := s.apply(state, remove("a"))
		s.Zero(next.NodePoints["f"], "red total fell below 3")
		s.Equal(2, next.NodePoints["b"])
		s.assertColorTotals(next)
	})

	s.Run("partial removal keeps entitled dependents", func() {
		state := s.apply(s.engine.NewCharacter(), Command{Type: CommandSetLevel, Value: 2},
			invest("b"), invest("b"), invest("b"), invest("a"))
		next := s.apply(state, remove("b"))
		s.Equal(2, next.NodePoints["b"])
		s.Equal(1, next.NodePoints["a"])
	})

	s.Run("is idempotent", func() {
		state := s.apply(s.engine.NewCharacter(), Command{Type: CommandSetLevel, Value: 2},
			invest("b"), invest("b"), invest("a"), invest("c"), remove("b"))

		once := s.engine.Revalidate(state)
		twice := s.engine.Revalidate(once)
		s.Equal(once.NodePoints, twice.NodePoints)
		s.Equal(once.ColorPoints, twice.ColorPoints)
	})

	s.Run("free points keep dependents alive", func() {
		state := s.apply(s.engine.NewCharacter(), Command{Type: CommandSetRace, TraitID: "giant"}, invest("a"))
		s.Equal(1, state.NodePoints["a"])

		next := s.apply(state, Command{Type: CommandSetRace})
		s.Zero(next.FreeNodePoints["b"])
		s.Zero(next.NodePoints["a"], "losing the free grant locks a")
	})
}

func (s *EngineTestSuite) TestRevalidateClearsDanglingInvestment() {
	state := s.engine.NewCharacter()
	state.NodePoints = map[string]int{"a": 1, "c": 2, "e": 1}
	state.ColorPoints = map[skilltree.Color]int{skilltree.ColorRed: 3, skilltree.ColorBlue: 1}

	next := s.engine.Revalidate(state)

	s.Equal(map[string]int{"e": 1}, next.NodePoints)
	s.assertColorTotals(next)
	s.Equal(1, state.NodePoints["a"], "input state must not change")
}

func (s *EngineTestSuite) TestInvariantsHoldUnderRandomEdits() {
	ids := []string{"a", "b", "c", "d", "e", "f", "g"}
	rng := rand.New(rand.NewSource(7))

	state := s.apply(s.engine.NewCharacter(), Command{Type: CommandSetLevel, Value: 4})
	for i := 0; i < 500; i++ {
		id := ids[rng.Intn(len(ids))]
		var err error
		var next skilltree.CharacterState
		if rng.Intn(3) == 0 {
			next, err = s.engine.Remove(state, id)
		} else {
			next, err = s.engine.Invest(state, id)
		}
		if err != nil {
			s.Require().True(IsRejection(err))
			s.Require().Equal(state, next)
			continue
		}
		state = next

		s.assertColorTotals(state)
		s.LessOrEqual(state.TotalSpent(), state.Level*skilltree.PointsPerLevel)
		for nid, points := range state.NodePoints {
			n, _ := s.engine.catalog.Node(nid)
			s.Zero(points%n.Cost, "node %s holds a partial unit", nid)
			s.True(s.engine.isUnlocked(state, n), "node %s holds points while locked", nid)
		}
	}
}

func (s *EngineTestSuite) TestLevelDecreaseDoesNotRefund() {
	state := s.apply(s.engine.NewCharacter(), Command{Type: CommandSetLevel, Value: 2},
		invest("g"), invest("g"), invest("e"))
	s.Equal(7, state.TotalSpent())

	state = s.apply(state, Command{Type: CommandSetLevel, Value: 1})
	s.Equal(7, state.TotalSpent())
	s.Equal(-2, state.AvailableSkillPoints())

	_, err := s.engine.Invest(state, "e")
	s.assertRejected(err, ReasonInsufficientSkillPoints)

	state = s.apply(state, remove("g"))
	s.Equal(4, state.TotalSpent())
}
