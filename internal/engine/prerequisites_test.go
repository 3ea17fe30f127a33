package engine

import (
	"github.com/KirkDiggler/skilltree-api/internal/catalog"
	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
)

func (s *EngineTestSuite) TestIsUnlocked() {
	graph := s.engine.catalog

	testCases := []struct {
		name     string
		node     skilltree.SkillNode
		byNode   map[string]int
		byColor  map[skilltree.Color]int
		expected bool
	}{
		{
			name:     "no groups and no requirements",
			node:     skilltree.SkillNode{ID: "x"},
			expected: true,
		},
		{
			name:     "empty group is satisfied",
			node:     skilltree.SkillNode{ID: "x", Prerequisites: []skilltree.PrerequisiteGroup{and()}},
			expected: true,
		},
		{
			name:     "requirement unmet",
			node:     skilltree.SkillNode{ID: "x", Requirements: map[skilltree.Color]int{skilltree.ColorRed: 3}},
			byColor:  map[skilltree.Color]int{skilltree.ColorRed: 2},
			expected: false,
		},
		{
			name:     "requirement met",
			node:     skilltree.SkillNode{ID: "x", Requirements: map[skilltree.Color]int{skilltree.ColorRed: 3}},
			byColor:  map[skilltree.Color]int{skilltree.ColorRed: 3},
			expected: true,
		},
		{
			name: "own points do not meet own color requirement",
			node: skilltree.SkillNode{ID: "x", Color: skilltree.ColorRed,
				Requirements: map[skilltree.Color]int{skilltree.ColorRed: 3}},
			byNode:   map[string]int{"x": 3},
			byColor:  map[skilltree.Color]int{skilltree.ColorRed: 3},
			expected: false,
		},
		{
			name: "other points of the same color meet the requirement",
			node: skilltree.SkillNode{ID: "x", Color: skilltree.ColorRed,
				Requirements: map[skilltree.Color]int{skilltree.ColorRed: 3}},
			byNode:   map[string]int{"x": 3, "b": 3},
			byColor:  map[skilltree.Color]int{skilltree.ColorRed: 6},
			expected: true,
		},
		{
			name:     "AND needs every pair",
			node:     skilltree.SkillNode{ID: "x", Prerequisites: []skilltree.PrerequisiteGroup{and(pair("b", 1), pair("e", 1))}},
			byNode:   map[string]int{"b": 1},
			expected: false,
		},
		{
			name:     "OR needs one pair",
			node:     skilltree.SkillNode{ID: "x", Prerequisites: []skilltree.PrerequisiteGroup{or(pair("b", 1), pair("e", 1))}},
			byNode:   map[string]int{"e": 1},
			expected: true,
		},
		{
			name:     "OR with no pair met",
			node:     skilltree.SkillNode{ID: "x", Prerequisites: []skilltree.PrerequisiteGroup{or(pair("b", 2), pair("e", 2))}},
			byNode:   map[string]int{"b": 1, "e": 1},
			expected: false,
		},
		{
			name: "groups are conjoined",
			node: skilltree.SkillNode{ID: "x", Prerequisites: []skilltree.PrerequisiteGroup{
				or(pair("b", 1), pair("e", 1)),
				and(pair("a", 1)),
			}},
			byNode:   map[string]int{"b": 1},
			expected: false,
		},
		{
			name: "groups met and requirement unmet",
			node: skilltree.SkillNode{
				ID:            "x",
				Prerequisites: []skilltree.PrerequisiteGroup{and(pair("b", 1))},
				Requirements:  map[skilltree.Color]int{skilltree.ColorBlue: 1},
			},
			byNode:   map[string]int{"b": 1},
			byColor:  map[skilltree.Color]int{skilltree.ColorRed: 1},
			expected: false,
		},
		{
			name:     "unknown prerequisite fails closed",
			node:     skilltree.SkillNode{ID: "x", Prerequisites: []skilltree.PrerequisiteGroup{and(pair("ghost", 1))}},
			byNode:   map[string]int{"ghost": 5},
			expected: false,
		},
		{
			name:     "unknown prerequisite in OR falls through to the next pair",
			node:     skilltree.SkillNode{ID: "x", Prerequisites: []skilltree.PrerequisiteGroup{or(pair("ghost", 1), pair("b", 1))}},
			byNode:   map[string]int{"ghost": 5, "b": 1},
			expected: true,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, IsUnlocked(graph, &tc.node, tc.byNode, tc.byColor))
		})
	}
}

func (s *EngineTestSuite) TestNodesWithoutPrerequisitesAlwaysUnlocked() {
	states := []skilltree.CharacterState{
		s.engine.NewCharacter(),
		s.apply(s.engine.NewCharacter(), Command{Type: CommandSetLevel, Value: 5}, invest("b"), invest("b"), invest("a")),
	}

	for _, state := range states {
		for _, status := range s.engine.NodeStatuses(state) {
			if len(status.Node.Prerequisites) == 0 && len(status.Node.Requirements) == 0 {
				s.True(status.Unlocked, "node %s", status.Node.ID)
			}
		}
	}
}

func (s *EngineTestSuite) TestFreePointsCountTowardUnlocks() {
	state := s.engine.NewCharacter()

	a, _ := s.engine.catalog.Node("a")
	s.False(s.engine.isUnlocked(state, a))

	state = s.apply(state, Command{Type: CommandSetRace, TraitID: "giant"})
	s.Equal(2, state.FreeNodePoints["b"])
	s.Zero(state.NodePoints["b"])
	s.True(s.engine.isUnlocked(state, a))

	f, _ := s.engine.catalog.Node("f")
	s.False(s.engine.isUnlocked(state, f), "2 free red points are below the 3 point requirement")
	state = s.apply(state, invest("a"))
	s.True(s.engine.isUnlocked(state, f))
}

func (s *EngineTestSuite) TestSameColorRequirementCascades() {
	c, err := catalog.New([]skilltree.SkillNode{
		{ID: "y", Name: "Y", Color: skilltree.ColorRed, Tier: 1, Cost: 1},
		{ID: "x", Name: "X", Color: skilltree.ColorRed, Tier: 2, Cost: 1,
			Requirements: map[skilltree.Color]int{skilltree.ColorRed: 3}},
	}, nil)
	s.Require().NoError(err)
	s.engine = s.newEngine(c)

	state := s.apply(s.engine.NewCharacter(),
		Command{Type: CommandSetLevel, Value: 2},
		invest("y"), invest("y"), invest("y"),
		invest("x"), invest("x"), invest("x"))
	s.Equal(3, state.NodePoints["x"])

	state = s.apply(state, remove("y"), remove("y"), remove("y"))

	s.Zero(state.NodePoints["y"])
	s.Zero(state.NodePoints["x"], "x loses its points once the other red points are gone")
	s.Zero(state.ColorPoints[skilltree.ColorRed])
	s.assertColorTotals(state)

	x, _ := c.Node("x")
	s.False(s.engine.isUnlocked(state, x))
}
