// Package skilltree holds the domain types of the skill tree character builder
package skilltree

// Color is the category a skill node belongs to
type Color string

// Node colors
const (
	ColorRed   Color = "red"
	ColorGreen Color = "green"
	ColorBlue  Color = "blue"
)

// Colors lists every node color in display order
var Colors = []Color{ColorRed, ColorGreen, ColorBlue}

// IsValid reports whether c is one of the known colors
func (c Color) IsValid() bool {
	switch c {
	case ColorRed, ColorGreen, ColorBlue:
		return true
	}
	return false
}

// Relationship combines the pairs of a prerequisite group
type Relationship string

// Group relationships
const (
	RelationshipAnd Relationship = "AND"
	RelationshipOr  Relationship = "OR"
)

// Tier bounds. Tiers are advisory and never enforced by the ledger.
const (
	MinTier = 1
	MaxTier = 5
)

// Prerequisite is a minimum point threshold on another node
type Prerequisite struct {
	NodeID string `yaml:"id" json:"id"`
	Points int    `yaml:"points" json:"points"`
}

// PrerequisiteGroup is a set of thresholds joined by AND or OR.
// An empty group is always satisfied.
type PrerequisiteGroup struct {
	Prerequisites []Prerequisite `yaml:"prerequisites" json:"prerequisites"`
	Relationship  Relationship   `yaml:"relationship" json:"relationship"`
}

// NodeChoice is a sub-option a player can pick for a node
type NodeChoice struct {
	Value       string `yaml:"value" json:"value"`
	Description string `yaml:"description" json:"description"`
}

// SkillNode is a purchasable unit of the skill graph
type SkillNode struct {
	ID            string              `yaml:"id" json:"id"`
	Name          string              `yaml:"name" json:"name"`
	Description   string              `yaml:"description" json:"description"`
	Color         Color               `yaml:"color" json:"color"`
	Tier          int                 `yaml:"tier" json:"tier"`
	Cost          int                 `yaml:"cost" json:"cost"`
	HPBonus       int                 `yaml:"hp_bonus" json:"hp_bonus"`
	Prerequisites []PrerequisiteGroup `yaml:"prerequisites,omitempty" json:"prerequisites,omitempty"`
	Requirements  map[Color]int       `yaml:"requirements,omitempty" json:"requirements,omitempty"`
	Choices       []NodeChoice        `yaml:"choices,omitempty" json:"choices,omitempty"`
}

// References returns the ids of every node named in the node's prerequisite
// groups, without duplicates.
func (n *SkillNode) References() []string {
	seen := make(map[string]bool)
	var refs []string
	for _, group := range n.Prerequisites {
		for _, p := range group.Prerequisites {
			if seen[p.NodeID] {
				continue
			}
			seen[p.NodeID] = true
			refs = append(refs, p.NodeID)
		}
	}
	return refs
}

// HasChoice reports whether value is one of the node's choices
func (n *SkillNode) HasChoice(value string) bool {
	for _, c := range n.Choices {
		if c.Value == value {
			return true
		}
	}
	return false
}
