package catalog

import (
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
)

// ErrCycle is returned when a node transitively requires itself.
var ErrCycle = stderrors.New("prerequisite cycle detected")

func (c *Catalog) validate() error {
	vb := errors.NewValidationBuilder()

	seen := make(map[string]bool, len(c.nodes))
	for i, n := range c.nodes {
		field := fmt.Sprintf("nodes[%d]", i)
		if n.ID == "" {
			vb.RequiredField(field + ".id")
		} else if seen[n.ID] {
			vb.Fieldf(field+".id", "duplicate node id %q", n.ID)
		}
		seen[n.ID] = true

		if n.Cost <= 0 {
			vb.Fieldf(field+".cost", "must be positive, got %d", n.Cost)
		}
		if n.Tier < skilltree.MinTier || n.Tier > skilltree.MaxTier {
			vb.Fieldf(field+".tier", "must be between %d and %d", skilltree.MinTier, skilltree.MaxTier)
		}
		if n.HPBonus < 0 {
			vb.Field(field+".hp_bonus", "must not be negative")
		}
		if !n.Color.IsValid() {
			vb.Fieldf(field+".color", "unknown color %q", n.Color)
		}
		for color, points := range n.Requirements {
			if !color.IsValid() {
				vb.Fieldf(field+".requirements", "unknown color %q", color)
			}
			if points <= 0 {
				vb.Fieldf(field+".requirements", "%s threshold must be positive", color)
			}
		}
		for j, g := range n.Prerequisites {
			if g.Relationship != skilltree.RelationshipAnd && g.Relationship != skilltree.RelationshipOr {
				vb.Fieldf(fmt.Sprintf("%s.prerequisites[%d].relationship", field, j), "unknown relationship %q", g.Relationship)
			}
			for _, p := range g.Prerequisites {
				if p.Points <= 0 {
					vb.Fieldf(fmt.Sprintf("%s.prerequisites[%d]", field, j), "threshold on %s must be positive", p.NodeID)
				}
				if p.NodeID == n.ID {
					vb.Fieldf(fmt.Sprintf("%s.prerequisites[%d]", field, j), "node %s requires itself", n.ID)
				}
			}
		}
		seenChoice := make(map[string]bool, len(n.Choices))
		for _, choice := range n.Choices {
			if choice.Value == "" {
				vb.RequiredField(field + ".choices.value")
			} else if seenChoice[choice.Value] {
				vb.Fieldf(field+".choices", "duplicate choice %q", choice.Value)
			}
			seenChoice[choice.Value] = true
		}
	}

	for _, kind := range []skilltree.TraitKind{skilltree.TraitKindRace, skilltree.TraitKindBirthsign, skilltree.TraitKindFeat} {
		ids := make(map[string]bool)
		for i, t := range c.traits[kind] {
			field := fmt.Sprintf("%ss[%d]", kind, i)
			if t.ID == "" {
				vb.RequiredField(field + ".id")
			} else if ids[t.ID] {
				vb.Fieldf(field+".id", "duplicate %s id %q", kind, t.ID)
			}
			ids[t.ID] = true

			for _, m := range t.Effects.AbilityModifiers {
				if !m.Ability.IsValid() {
					vb.Fieldf(field+".ability_modifiers", "unknown ability %q", m.Ability)
				}
			}
			for _, g := range t.Effects.FreeNodeGrants {
				if g.Points <= 0 {
					vb.Fieldf(field+".free_nodes", "grant on %s must be positive", g.NodeID)
				}
				if _, ok := c.nodeIndex[g.NodeID]; !ok {
					slog.Warn("Free node grant references unknown node",
						"trait", t.Source(),
						"node_id", g.NodeID)
				}
			}
		}
	}

	if err := vb.Build(); err != nil {
		return err
	}

	for _, n := range c.nodes {
		for _, ref := range n.References() {
			if _, ok := c.nodeIndex[ref]; !ok {
				slog.Warn("Prerequisite references unknown node, it can never be satisfied",
					"node_id", n.ID,
					"missing_id", ref)
			}
		}
	}

	if _, err := c.topologicalOrder(); err != nil {
		return errors.WrapWithCode(err, errors.CodeFailedPrecondition, "invalid skill graph")
	}

	return nil
}

// topologicalOrder orders nodes so prerequisites come before the nodes that
// name them. References to unknown nodes are ignored.
func (c *Catalog) topologicalOrder() ([]string, error) {
	inDegree := make(map[string]int, len(c.nodes))
	reverse := make(map[string][]string, len(c.nodes))
	for _, n := range c.nodes {
		for _, ref := range n.References() {
			if _, ok := c.nodeIndex[ref]; !ok {
				continue
			}
			inDegree[n.ID]++
			reverse[ref] = append(reverse[ref], n.ID)
		}
	}

	queue := make([]string, 0, len(c.nodes))
	for _, n := range c.nodes {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	sorted := make([]string, 0, len(c.nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		sorted = append(sorted, id)

		for _, dependent := range reverse[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(sorted) != len(c.nodes) {
		var stuck []string
		for _, n := range c.nodes {
			if inDegree[n.ID] > 0 {
				stuck = append(stuck, n.ID)
			}
		}
		return nil, fmt.Errorf("%w: nodes %v", ErrCycle, stuck)
	}
	return sorted, nil
}
