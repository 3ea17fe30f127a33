package engine

import (
	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
)

// Invest spends one cost unit on the node. Checks run in order: the node
// exists, it is unlocked under current effective points, and the level
// budget covers its cost.
func (e *engine) Invest(state skilltree.CharacterState, nodeID string) (skilltree.CharacterState, error) {
	node, ok := e.catalog.Node(nodeID)
	if !ok {
		return state, reject(ReasonNodeNotFound, "node %s not found", nodeID)
	}

	if !e.isUnlocked(state, node) {
		return state, reject(ReasonPrerequisiteNotMet, "node %s is locked", nodeID).
			WithMeta("node_id", nodeID)
	}

	available := state.AvailableSkillPoints()
	if available < node.Cost {
		return state, reject(ReasonInsufficientSkillPoints, "node %s costs %d, %d available", nodeID, node.Cost, available).
			WithMeta("node_id", nodeID).
			WithMeta("available", available)
	}

	next := state.Clone()
	next.NodePoints[nodeID] += node.Cost
	next.ColorPoints[node.Color] += node.Cost

	return e.settle(state, next, false), nil
}

// Remove refunds one cost unit from the node, then strips every node that
// is no longer entitled to its points.
func (e *engine) Remove(state skilltree.CharacterState, nodeID string) (skilltree.CharacterState, error) {
	node, ok := e.catalog.Node(nodeID)
	if !ok {
		return state, reject(ReasonNodeNotFound, "node %s not found", nodeID)
	}

	held := state.NodePoints[nodeID]
	if held < node.Cost {
		return state, reject(ReasonInsufficientInvestment, "node %s holds %d points, removal needs %d", nodeID, held, node.Cost).
			WithMeta("node_id", nodeID)
	}

	next := state.Clone()
	next.NodePoints[nodeID] -= node.Cost
	if next.NodePoints[nodeID] == 0 {
		delete(next.NodePoints, nodeID)
	}
	next.ColorPoints[node.Color] -= node.Cost

	check := append([]string{nodeID}, e.catalog.Dependents(nodeID)...)
	e.invalidate(&next, check)

	return e.settle(state, next, false), nil
}

// Revalidate strips user points from every node whose prerequisites no
// longer hold, cascading to the nodes that depend on it.
func (e *engine) Revalidate(state skilltree.CharacterState) skilltree.CharacterState {
	next := state.Clone()
	e.revalidate(&next)
	return next
}

func (e *engine) revalidate(state *skilltree.CharacterState) []string {
	var check []string
	for _, n := range e.catalog.Nodes() {
		if state.NodePoints[n.ID] > 0 {
			check = append(check, n.ID)
		}
	}
	return e.invalidate(state, check)
}

// invalidate walks a worklist starting at check. A node that still holds
// user points but is locked loses all of them and its dependents are queued.
// Each node is cleared at most once, so the walk terminates on any graph.
// Returns the cleared ids in clearing order.
func (e *engine) invalidate(state *skilltree.CharacterState, check []string) []string {
	byNode, byColor := e.effectivePoints(*state)

	cleared := make(map[string]bool)
	var order []string

	queue := append([]string{}, check...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if cleared[id] {
			continue
		}
		node, ok := e.catalog.Node(id)
		if !ok {
			continue
		}
		points := state.NodePoints[id]
		if points == 0 {
			continue
		}
		if IsUnlocked(e.catalog, node, byNode, byColor) {
			continue
		}

		delete(state.NodePoints, id)
		state.ColorPoints[node.Color] -= points
		byNode[id] -= points
		byColor[node.Color] -= points

		cleared[id] = true
		order = append(order, id)
		queue = append(queue, e.catalog.Dependents(id)...)
	}

	return order
}

// rebuildColorPoints recomputes the per-color cache from NodePoints
func (e *engine) rebuildColorPoints(state *skilltree.CharacterState) {
	state.ColorPoints = make(map[skilltree.Color]int, len(skilltree.Colors))
	for id, points := range state.NodePoints {
		if n, ok := e.catalog.Node(id); ok {
			state.ColorPoints[n.Color] += points
		}
	}
}
