// Package engine derives character state from skill investments and traits.
// Every operation takes a CharacterState value and returns a new one; the
// input is never mutated.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/skilltree-api/internal/engine Engine

import (
	"github.com/KirkDiggler/skilltree-api/internal/catalog"
	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
)

// Engine applies commands to character state
type Engine interface {
	// NewCharacter returns a fully derived default character
	NewCharacter() skilltree.CharacterState

	// Apply runs one command. A rejected command returns the input state
	// unchanged and an error carrying a reason (see IsRejection).
	Apply(state skilltree.CharacterState, cmd Command) (skilltree.CharacterState, error)

	// Refresh re-runs revalidation, aggregation and derivation. Used after a
	// snapshot has been decoded.
	Refresh(state skilltree.CharacterState, opts RefreshOptions) skilltree.CharacterState

	// NodeStatuses reports the unlock state and investment of every node
	NodeStatuses(state skilltree.CharacterState) []NodeStatus

	// Catalog returns the catalog the engine was built with
	Catalog() *catalog.Catalog
}
