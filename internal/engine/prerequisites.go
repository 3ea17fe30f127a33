package engine

import (
	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
)

// Graph resolves node ids
type Graph interface {
	Node(id string) (*skilltree.SkillNode, bool)
}

// IsUnlocked reports whether node's prerequisite expression and color
// requirements hold for the given effective points. A pair naming a node
// the graph does not know never holds. Points on node itself never count
// toward its own color requirement.
func IsUnlocked(graph Graph, node *skilltree.SkillNode, byNode map[string]int, byColor map[skilltree.Color]int) bool {
	for color, minimum := range node.Requirements {
		have := byColor[color]
		if color == node.Color {
			have -= byNode[node.ID]
		}
		if have < minimum {
			return false
		}
	}

	for _, group := range node.Prerequisites {
		if !groupSatisfied(graph, group, byNode) {
			return false
		}
	}
	return true
}

func groupSatisfied(graph Graph, group skilltree.PrerequisiteGroup, byNode map[string]int) bool {
	if len(group.Prerequisites) == 0 {
		return true
	}

	if group.Relationship == skilltree.RelationshipOr {
		for _, p := range group.Prerequisites {
			if pairSatisfied(graph, p, byNode) {
				return true
			}
		}
		return false
	}

	for _, p := range group.Prerequisites {
		if !pairSatisfied(graph, p, byNode) {
			return false
		}
	}
	return true
}

func pairSatisfied(graph Graph, p skilltree.Prerequisite, byNode map[string]int) bool {
	if _, ok := graph.Node(p.NodeID); !ok {
		return false
	}
	return byNode[p.NodeID] >= p.Points
}

// effectivePoints merges user and free points per node and per color.
// Points held on ids the catalog does not know are ignored.
func (e *engine) effectivePoints(state skilltree.CharacterState) (map[string]int, map[skilltree.Color]int) {
	byNode := make(map[string]int, len(state.NodePoints)+len(state.FreeNodePoints))
	byColor := make(map[skilltree.Color]int, len(skilltree.Colors))

	add := func(points map[string]int) {
		for id, p := range points {
			n, ok := e.catalog.Node(id)
			if !ok || p == 0 {
				continue
			}
			byNode[id] += p
			byColor[n.Color] += p
		}
	}
	add(state.NodePoints)
	add(state.FreeNodePoints)

	return byNode, byColor
}

func (e *engine) isUnlocked(state skilltree.CharacterState, node *skilltree.SkillNode) bool {
	byNode, byColor := e.effectivePoints(state)
	return IsUnlocked(e.catalog, node, byNode, byColor)
}
