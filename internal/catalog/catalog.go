// Package catalog holds the immutable skill graph and trait definitions
package catalog

import (
	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
)

// Resource pool nodes. Effective points in these nodes set pool maximums.
const (
	NodeAdrenaline = "adrenaline-1"
	NodeMana       = "mana-1"
	NodeStamina    = "stamina-1"
)

// Catalog is the read-only set of skill nodes and traits. A Catalog is safe
// for concurrent use because nothing mutates it after New returns.
type Catalog struct {
	nodes      []*skilltree.SkillNode
	nodeIndex  map[string]*skilltree.SkillNode
	dependents map[string][]string

	traits     map[skilltree.TraitKind][]*skilltree.Trait
	traitIndex map[skilltree.TraitKind]map[string]*skilltree.Trait
}

// New validates the definitions and builds a catalog. Relationship defaults
// to AND when a group leaves it empty.
func New(nodes []skilltree.SkillNode, traits []skilltree.Trait) (*Catalog, error) {
	c := &Catalog{
		nodes:      make([]*skilltree.SkillNode, 0, len(nodes)),
		nodeIndex:  make(map[string]*skilltree.SkillNode, len(nodes)),
		traits:     make(map[skilltree.TraitKind][]*skilltree.Trait),
		traitIndex: make(map[skilltree.TraitKind]map[string]*skilltree.Trait),
	}

	for i := range nodes {
		n := copyNode(nodes[i])
		c.nodes = append(c.nodes, n)
		if _, exists := c.nodeIndex[n.ID]; !exists {
			c.nodeIndex[n.ID] = n
		}
	}

	for i := range traits {
		t := traits[i]
		if c.traitIndex[t.Kind] == nil {
			c.traitIndex[t.Kind] = make(map[string]*skilltree.Trait)
		}
		c.traits[t.Kind] = append(c.traits[t.Kind], &t)
		if _, exists := c.traitIndex[t.Kind][t.ID]; !exists {
			c.traitIndex[t.Kind][t.ID] = &t
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	c.buildDependents()
	return c, nil
}

// Register returns a new catalog with the extra nodes appended. The receiver
// is left unchanged.
func (c *Catalog) Register(nodes ...skilltree.SkillNode) (*Catalog, error) {
	all := make([]skilltree.SkillNode, 0, len(c.nodes)+len(nodes))
	for _, n := range c.nodes {
		all = append(all, *n)
	}
	all = append(all, nodes...)

	var traits []skilltree.Trait
	for _, kind := range []skilltree.TraitKind{skilltree.TraitKindRace, skilltree.TraitKindBirthsign, skilltree.TraitKindFeat} {
		for _, t := range c.traits[kind] {
			traits = append(traits, *t)
		}
	}

	return New(all, traits)
}

// Node returns the node with the given id
func (c *Catalog) Node(id string) (*skilltree.SkillNode, bool) {
	n, ok := c.nodeIndex[id]
	return n, ok
}

// Nodes returns every node in registration order
func (c *Catalog) Nodes() []*skilltree.SkillNode {
	out := make([]*skilltree.SkillNode, len(c.nodes))
	copy(out, c.nodes)
	return out
}

// Dependents returns the ids of nodes whose unlock state can change when the
// points in id change: nodes naming id in a prerequisite pair and nodes with
// a requirement on id's color. The node itself is never included.
func (c *Catalog) Dependents(id string) []string {
	return c.dependents[id]
}

// Trait returns the trait of the given kind and id
func (c *Catalog) Trait(kind skilltree.TraitKind, id string) (*skilltree.Trait, bool) {
	t, ok := c.traitIndex[kind][id]
	return t, ok
}

// Traits returns every trait of kind in catalog order
func (c *Catalog) Traits(kind skilltree.TraitKind) []*skilltree.Trait {
	out := make([]*skilltree.Trait, len(c.traits[kind]))
	copy(out, c.traits[kind])
	return out
}

func (c *Catalog) buildDependents() {
	byColor := make(map[skilltree.Color][]string)
	for _, n := range c.nodes {
		for color := range n.Requirements {
			byColor[color] = append(byColor[color], n.ID)
		}
	}

	c.dependents = make(map[string][]string, len(c.nodes))
	for _, target := range c.nodes {
		seen := map[string]bool{target.ID: true}
		var deps []string
		for _, n := range c.nodes {
			if seen[n.ID] {
				continue
			}
			if names(n, target.ID) {
				seen[n.ID] = true
				deps = append(deps, n.ID)
			}
		}
		for _, id := range byColor[target.Color] {
			if !seen[id] {
				seen[id] = true
				deps = append(deps, id)
			}
		}
		c.dependents[target.ID] = deps
	}
}

func names(n *skilltree.SkillNode, id string) bool {
	for _, ref := range n.References() {
		if ref == id {
			return true
		}
	}
	return false
}

func copyNode(n skilltree.SkillNode) *skilltree.SkillNode {
	out := n
	out.Prerequisites = make([]skilltree.PrerequisiteGroup, len(n.Prerequisites))
	for i, g := range n.Prerequisites {
		out.Prerequisites[i] = skilltree.PrerequisiteGroup{
			Prerequisites: append([]skilltree.Prerequisite{}, g.Prerequisites...),
			Relationship:  g.Relationship,
		}
		if out.Prerequisites[i].Relationship == "" {
			out.Prerequisites[i].Relationship = skilltree.RelationshipAnd
		}
	}
	if n.Requirements != nil {
		out.Requirements = make(map[skilltree.Color]int, len(n.Requirements))
		for color, points := range n.Requirements {
			out.Requirements[color] = points
		}
	}
	out.Choices = append([]skilltree.NodeChoice(nil), n.Choices...)
	return &out
}
