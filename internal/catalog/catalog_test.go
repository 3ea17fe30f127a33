package catalog_test

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/skilltree-api/internal/catalog"
	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
)

type CatalogTestSuite struct {
	suite.Suite
	catalog *catalog.Catalog
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}

func (s *CatalogTestSuite) SetupTest() {
	c, err := catalog.Load("")
	s.Require().NoError(err)
	s.catalog = c
}

func node(id string, color skilltree.Color, groups ...skilltree.PrerequisiteGroup) skilltree.SkillNode {
	return skilltree.SkillNode{
		ID:            id,
		Name:          id,
		Color:         color,
		Tier:          1,
		Cost:          1,
		Prerequisites: groups,
	}
}

func and(pairs ...skilltree.Prerequisite) skilltree.PrerequisiteGroup {
	return skilltree.PrerequisiteGroup{Prerequisites: pairs, Relationship: skilltree.RelationshipAnd}
}

func (s *CatalogTestSuite) TestLoadEmbedded() {
	s.Len(s.catalog.Nodes(), 18)
	s.Len(s.catalog.Traits(skilltree.TraitKindRace), 7)
	s.Len(s.catalog.Traits(skilltree.TraitKindBirthsign), 12)
	s.Len(s.catalog.Traits(skilltree.TraitKindFeat), 12)

	for _, id := range []string{catalog.NodeAdrenaline, catalog.NodeMana, catalog.NodeStamina} {
		_, ok := s.catalog.Node(id)
		s.True(ok, "pool node %s", id)
	}
}

func (s *CatalogTestSuite) TestTraitEffectsDecoded() {
	s.Run("orc grants a free adrenaline point", func() {
		orc, ok := s.catalog.Trait(skilltree.TraitKindRace, "orc")
		s.Require().True(ok)
		s.Equal([]skilltree.FreeNodeGrant{{NodeID: catalog.NodeAdrenaline, Points: 1}}, orc.Effects.FreeNodeGrants)
		s.Equal("race:orc", orc.Source())
	})

	s.Run("lord hp scales with constitution", func() {
		lord, ok := s.catalog.Trait(skilltree.TraitKindBirthsign, "lord")
		s.Require().True(ok)
		s.Require().Len(lord.Effects.SpecialAbilities, 2)
		vitality := lord.Effects.SpecialAbilities[1]
		s.Equal("lord-hp-bonus", vitality.ID)
		s.Equal(skilltree.CategoryBirthsign, vitality.Category)
		s.Equal("birthsign:lord", vitality.Source)
		s.Equal([]skilltree.Effect{skilltree.ConstitutionHP{}}, vitality.Effects)
	})

	s.Run("warrior carries flat hp and a proficiency grant", func() {
		warrior, ok := s.catalog.Trait(skilltree.TraitKindBirthsign, "warrior")
		s.Require().True(ok)
		s.Equal([]skilltree.Effect{skilltree.FlatBonus{Stat: skilltree.StatHP, Amount: 10}},
			warrior.Effects.SpecialAbilities[0].Effects)
		s.Equal([]skilltree.Effect{skilltree.Grant{Type: skilltree.GrantProficiency, Values: []string{"martial-weapons"}}},
			warrior.Effects.SpecialAbilities[2].Effects)
	})

	s.Run("feats keep benefits and requirements", func() {
		grappler, ok := s.catalog.Trait(skilltree.TraitKindFeat, "grappler")
		s.Require().True(ok)
		s.Len(grappler.Benefits, 3)
		s.Equal([]string{"Strength 13 or higher"}, grappler.Requirements)
		s.Equal(skilltree.CategoryFeat, grappler.Effects.SpecialAbilities[0].Category)
	})

	s.Run("unknown trait", func() {
		_, ok := s.catalog.Trait(skilltree.TraitKindRace, "warrior")
		s.False(ok)
	})
}

func (s *CatalogTestSuite) TestDependents() {
	s.Run("prerequisite pairs", func() {
		s.Contains(s.catalog.Dependents(catalog.NodeAdrenaline), "power-strike")
		s.Contains(s.catalog.Dependents("marksman"), "evasion")
		s.Contains(s.catalog.Dependents("marksman"), "spellblade")
	})

	s.Run("color requirements", func() {
		deps := s.catalog.Dependents("toughness-1")
		s.Contains(deps, "warlord")
		s.Contains(deps, "spellblade")
		s.NotContains(deps, "archmage")
	})

	s.Run("never includes the node itself", func() {
		s.NotContains(s.catalog.Dependents("warlord"), "warlord")
	})

	s.Run("leaf has no dependents", func() {
		s.Empty(s.catalog.Dependents("shadow-step"))
	})
}

func (s *CatalogTestSuite) TestRelationshipDefaultsToAnd() {
	c, err := catalog.New([]skilltree.SkillNode{
		node("a", skilltree.ColorRed),
		node("b", skilltree.ColorRed, skilltree.PrerequisiteGroup{
			Prerequisites: []skilltree.Prerequisite{{NodeID: "a", Points: 1}},
		}),
	}, nil)
	s.Require().NoError(err)

	b, ok := c.Node("b")
	s.Require().True(ok)
	s.Equal(skilltree.RelationshipAnd, b.Prerequisites[0].Relationship)
}

func (s *CatalogTestSuite) TestRejectsCycle() {
	testCases := []struct {
		name  string
		nodes []skilltree.SkillNode
	}{
		{
			name: "two node cycle",
			nodes: []skilltree.SkillNode{
				node("a", skilltree.ColorRed, and(skilltree.Prerequisite{NodeID: "b", Points: 1})),
				node("b", skilltree.ColorRed, and(skilltree.Prerequisite{NodeID: "a", Points: 1})),
			},
		},
		{
			name: "cycle through an OR group",
			nodes: []skilltree.SkillNode{
				node("root", skilltree.ColorBlue),
				node("a", skilltree.ColorBlue, skilltree.PrerequisiteGroup{
					Relationship: skilltree.RelationshipOr,
					Prerequisites: []skilltree.Prerequisite{
						{NodeID: "root", Points: 1},
						{NodeID: "c", Points: 1},
					},
				}),
				node("b", skilltree.ColorBlue, and(skilltree.Prerequisite{NodeID: "a", Points: 1})),
				node("c", skilltree.ColorBlue, and(skilltree.Prerequisite{NodeID: "b", Points: 1})),
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := catalog.New(tc.nodes, nil)
			s.Require().Error(err)
			s.True(stderrors.Is(err, catalog.ErrCycle))
			s.True(errors.IsFailedPrecondition(err))
		})
	}
}

func (s *CatalogTestSuite) TestValidation() {
	testCases := []struct {
		name    string
		mutate  func(n *skilltree.SkillNode)
		message string
	}{
		{
			name:    "zero cost",
			mutate:  func(n *skilltree.SkillNode) { n.Cost = 0 },
			message: "cost",
		},
		{
			name:    "unknown color",
			mutate:  func(n *skilltree.SkillNode) { n.Color = "purple" },
			message: "unknown color",
		},
		{
			name:    "tier out of range",
			mutate:  func(n *skilltree.SkillNode) { n.Tier = 6 },
			message: "tier",
		},
		{
			name: "self reference",
			mutate: func(n *skilltree.SkillNode) {
				n.Prerequisites = []skilltree.PrerequisiteGroup{and(skilltree.Prerequisite{NodeID: n.ID, Points: 1})}
			},
			message: "requires itself",
		},
		{
			name:    "bad relationship",
			mutate:  func(n *skilltree.SkillNode) { n.Prerequisites = []skilltree.PrerequisiteGroup{{Relationship: "XOR"}} },
			message: "relationship",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			n := node("x", skilltree.ColorGreen)
			tc.mutate(&n)
			_, err := catalog.New([]skilltree.SkillNode{n}, nil)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.message)
		})
	}

	s.Run("duplicate ids", func() {
		_, err := catalog.New([]skilltree.SkillNode{node("x", skilltree.ColorRed), node("x", skilltree.ColorRed)}, nil)
		s.Require().Error(err)
		s.Contains(err.Error(), "duplicate node id")
	})

	s.Run("dangling reference is not fatal", func() {
		_, err := catalog.New([]skilltree.SkillNode{
			node("x", skilltree.ColorRed, and(skilltree.Prerequisite{NodeID: "ghost", Points: 1})),
		}, nil)
		s.NoError(err)
	})
}

func (s *CatalogTestSuite) TestRegister() {
	extra := node("berserker", skilltree.ColorRed, and(skilltree.Prerequisite{NodeID: "battle-rage", Points: 2}))

	updated, err := s.catalog.Register(extra)
	s.Require().NoError(err)

	_, ok := updated.Node("berserker")
	s.True(ok)
	s.Contains(updated.Dependents("battle-rage"), "berserker")
	s.Len(updated.Traits(skilltree.TraitKindFeat), 12)

	_, ok = s.catalog.Node("berserker")
	s.False(ok, "original catalog must not change")

	s.Run("registration that closes a cycle fails", func() {
		base, err := catalog.New([]skilltree.SkillNode{
			node("x", skilltree.ColorRed, and(skilltree.Prerequisite{NodeID: "ghost", Points: 1})),
		}, nil)
		s.Require().NoError(err)

		_, err = base.Register(node("ghost", skilltree.ColorRed, and(skilltree.Prerequisite{NodeID: "x", Points: 1})))
		s.Require().Error(err)
		s.True(stderrors.Is(err, catalog.ErrCycle))
	})

	s.Run("duplicate id is rejected", func() {
		_, err := s.catalog.Register(node("warlord", skilltree.ColorRed))
		s.Require().Error(err)
		s.Contains(err.Error(), "duplicate node id")
	})
}

func (s *CatalogTestSuite) TestDirectoryOverride() {
	dir := s.T().TempDir()
	skills := `nodes:
  - id: adrenaline-1
    name: Adrenaline
    color: red
    tier: 1
    cost: 2
    hp_bonus: 0
`
	s.Require().NoError(os.WriteFile(filepath.Join(dir, catalog.SkillsFile), []byte(skills), 0o600))

	c, err := catalog.Load(dir)
	s.Require().NoError(err)
	s.Len(c.Nodes(), 1)

	n, ok := c.Node(catalog.NodeAdrenaline)
	s.Require().True(ok)
	s.Equal(2, n.Cost)

	s.Len(c.Traits(skilltree.TraitKindRace), 7, "traits fall back to embedded data")
}

func (s *CatalogTestSuite) TestLoadErrors() {
	s.Run("missing directory", func() {
		_, err := catalog.Load(filepath.Join(s.T().TempDir(), "nope"))
		s.Error(err)
	})

	s.Run("unknown field", func() {
		dir := s.T().TempDir()
		s.Require().NoError(os.WriteFile(filepath.Join(dir, catalog.SkillsFile), []byte("nodes:\n  - id: a\n    colour: red\n"), 0o600))
		_, err := catalog.Load(dir)
		s.Require().Error(err)
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("unknown effect kind", func() {
		dir := s.T().TempDir()
		races := `races:
  - id: ghost
    name: Ghost
    special_abilities:
      - id: phase
        name: Phase
        effects:
          - {kind: teleport}
`
		s.Require().NoError(os.WriteFile(filepath.Join(dir, catalog.RacesFile), []byte(races), 0o600))
		_, err := catalog.Load(dir)
		s.Require().Error(err)
		s.Contains(err.Error(), "unknown effect kind")
	})
}
