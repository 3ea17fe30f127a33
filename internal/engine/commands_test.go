package engine

import (
	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
)

func (s *EngineTestSuite) TestRangeCommands() {
	testCases := []struct {
		name   string
		cmd    Command
		reason string
	}{
		{name: "level zero", cmd: Command{Type: CommandSetLevel, Value: 0}, reason: string(ReasonLevelOutOfRange)},
		{name: "level 21", cmd: Command{Type: CommandSetLevel, Value: 21}, reason: string(ReasonLevelOutOfRange)},
		{name: "negative armor", cmd: Command{Type: CommandSetArmor, Value: -1}, reason: string(ReasonArmorOutOfRange)},
		{name: "negative hp", cmd: Command{Type: CommandSetHP, Value: -1}, reason: string(ReasonHPOutOfRange)},
		{name: "hp above max", cmd: Command{Type: CommandSetHP, Value: 5}, reason: string(ReasonHPOutOfRange)},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			state := s.engine.NewCharacter()
			next, err := s.engine.Apply(state, tc.cmd)
			s.Require().Error(err)
			s.Equal(tc.reason, string(errors.GetReason(err)))
			s.Equal(state, next)
		})
	}

	s.Run("accepted bounds", func() {
		state := s.apply(s.engine.NewCharacter(),
			Command{Type: CommandSetLevel, Value: 20},
			Command{Type: CommandSetArmor, Value: 0},
			Command{Type: CommandSetHP, Value: 0})
		s.Equal(20, state.Level)
		s.Equal(100, state.SkillPointBudget())
		s.Equal(0, state.Armor)
		s.Equal(0, state.HP)
	})
}

func (s *EngineTestSuite) TestSetNodeChoice() {
	state := s.engine.NewCharacter()

	state = s.apply(state, Command{Type: CommandSetNodeChoice, NodeID: "g", Text: "left"})
	s.Equal("left", state.NodeChoices["g"])

	_, err := s.engine.Apply(state, Command{Type: CommandSetNodeChoice, NodeID: "g", Text: "up"})
	s.assertRejected(err, ReasonInvalidChoice)

	_, err = s.engine.Apply(state, Command{Type: CommandSetNodeChoice, NodeID: "b", Text: "left"})
	s.assertRejected(err, ReasonInvalidChoice)

	_, err = s.engine.Apply(state, Command{Type: CommandSetNodeChoice, NodeID: "ghost", Text: "left"})
	s.assertRejected(err, ReasonNodeNotFound)

	state = s.apply(state, Command{Type: CommandSetNodeChoice, NodeID: "g"})
	_, ok := state.NodeChoices["g"]
	s.False(ok)
}

func (s *EngineTestSuite) TestNameAndNotes() {
	state := s.apply(s.engine.NewCharacter(),
		Command{Type: CommandSetName, Text: "Brakka"},
		Command{Type: CommandSetNotes, Text: "owes the innkeeper"})
	s.Equal("Brakka", state.Name)
	s.Equal("owes the innkeeper", state.Notes)

	state = s.apply(state, Command{Type: CommandSetName})
	s.Empty(state.Name)
}

func (s *EngineTestSuite) TestInventory() {
	state := s.engine.NewCharacter()

	state = s.apply(state,
		Command{Type: CommandAddItem, Item: &skilltree.InventoryItem{Name: " Rope ", Quantity: 1, Unit: "coil", WeightPerUnit: 10}},
		Command{Type: CommandAddItem, Item: &skilltree.InventoryItem{Name: "Torch", Quantity: 5, WeightPerUnit: 1}})
	s.Require().Len(state.Inventory, 2)
	s.Equal("item_1", state.Inventory[0].ID)
	s.Equal("Rope", state.Inventory[0].Name)
	s.Equal("item_2", state.Inventory[1].ID)
	s.InDelta(5.0, state.Inventory[1].TotalWeight(), 0.001)

	s.Run("update", func() {
		next := s.apply(state, Command{Type: CommandUpdateItem, Item: &skilltree.InventoryItem{ID: "item_2", Name: "Torch", Quantity: 3, WeightPerUnit: 1}})
		s.Equal(3, next.Inventory[1].Quantity)
		s.Equal(5, state.Inventory[1].Quantity, "input state must not change")
	})

	s.Run("remove", func() {
		next := s.apply(state, Command{Type: CommandRemoveItem, Item: &skilltree.InventoryItem{ID: "item_1"}})
		s.Require().Len(next.Inventory, 1)
		s.Equal("item_2", next.Inventory[0].ID)
		s.Len(state.Inventory, 2)
	})

	s.Run("rejections", func() {
		testCases := []struct {
			name   string
			cmd    Command
			reason string
		}{
			{name: "missing item", cmd: Command{Type: CommandAddItem}, reason: string(ReasonInvalidInventoryItem)},
			{name: "blank name", cmd: Command{Type: CommandAddItem, Item: &skilltree.InventoryItem{Name: "  "}}, reason: string(ReasonInvalidInventoryItem)},
			{name: "negative quantity", cmd: Command{Type: CommandAddItem, Item: &skilltree.InventoryItem{Name: "x", Quantity: -1}}, reason: string(ReasonInvalidInventoryItem)},
			{name: "negative weight", cmd: Command{Type: CommandAddItem, Item: &skilltree.InventoryItem{Name: "x", WeightPerUnit: -0.5}}, reason: string(ReasonInvalidInventoryItem)},
			{name: "update unknown", cmd: Command{Type: CommandUpdateItem, Item: &skilltree.InventoryItem{ID: "nope", Name: "x"}}, reason: string(ReasonItemNotFound)},
			{name: "remove unknown", cmd: Command{Type: CommandRemoveItem, Item: &skilltree.InventoryItem{ID: "nope"}}, reason: string(ReasonItemNotFound)},
			{name: "remove without id", cmd: Command{Type: CommandRemoveItem}, reason: string(ReasonItemNotFound)},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				next, err := s.engine.Apply(state, tc.cmd)
				s.Require().Error(err)
				s.Equal(tc.reason, string(errors.GetReason(err)))
				s.Equal(state, next)
			})
		}
	})
}

func (s *EngineTestSuite) TestRefresh() {
	state := s.apply(s.engine.NewCharacter(), Command{Type: CommandSetLevel, Value: 2},
		invest("b"), invest("b"), invest("a"), invest("g"))

	s.Run("recomputes derived fields and color totals", func() {
		loaded := state.Clone()
		loaded.MaxHP = 999
		loaded.HP = 8
		loaded.ColorPoints = map[skilltree.Color]int{}
		loaded.Derived = skilltree.Derived{}

		next := s.engine.Refresh(loaded, RefreshOptions{})
		s.Equal(state.MaxHP, next.MaxHP)
		s.Equal(8, next.HP)
		s.Equal(state.ColorPoints, next.ColorPoints)
		s.Equal(state.Derived, next.Derived)
	})

	s.Run("fill hp", func() {
		loaded := state.Clone()
		loaded.HP = 0
		next := s.engine.Refresh(loaded, RefreshOptions{FillHP: true})
		s.Equal(next.MaxHP, next.HP)
	})

	s.Run("clamps hp", func() {
		loaded := state.Clone()
		loaded.HP = 500
		next := s.engine.Refresh(loaded, RefreshOptions{})
		s.Equal(next.MaxHP, next.HP)
	})

	s.Run("strips locked investment", func() {
		loaded := state.Clone()
		loaded.NodePoints["b"] = 1
		next := s.engine.Refresh(loaded, RefreshOptions{})
		s.Zero(next.NodePoints["a"])
		s.Equal(1, next.NodePoints["b"])
		s.assertColorTotals(next)
	})

	s.Run("refreshing a derived state changes nothing", func() {
		s.Equal(state, s.engine.Refresh(state, RefreshOptions{}))
	})
}
