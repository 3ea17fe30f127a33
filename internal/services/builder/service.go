// Package builder defines the command surface of the skill tree character
// builder
package builder

//go:generate mockgen -destination=mock/mock_service.go -package=buildermock github.com/KirkDiggler/skilltree-api/internal/services/builder Service

import (
	"context"
	"time"

	"github.com/KirkDiggler/skilltree-api/internal/engine"
	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
)

// Service defines the interface for builder operations. Every operation
// names a session; a session that does not exist yet starts with a new
// character.
type Service interface {
	// Session state
	NewSession(ctx context.Context, input *NewSessionInput) (*NewSessionOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)

	// Execute applies one command. A rejected command is not an error: it
	// returns Accepted false and leaves the session unchanged.
	Execute(ctx context.Context, input *ExecuteInput) (*ExecuteOutput, error)

	// Persistence
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)
	Load(ctx context.Context, input *LoadInput) (*LoadOutput, error)
	Export(ctx context.Context, input *ExportInput) (*ExportOutput, error)
	Import(ctx context.Context, input *ImportInput) (*ImportOutput, error)
	ListSlots(ctx context.Context, input *ListSlotsInput) (*ListSlotsOutput, error)
	DeleteSlot(ctx context.Context, input *DeleteSlotInput) (*DeleteSlotOutput, error)

	// Catalog
	ListNodes(ctx context.Context, input *ListNodesInput) (*ListNodesOutput, error)
	ListTraits(ctx context.Context, input *ListTraitsInput) (*ListTraitsOutput, error)
}

// NewSessionInput defines the request for resetting a session
type NewSessionInput struct {
	// SessionID is generated when empty
	SessionID string
}

// NewSessionOutput defines the response for resetting a session
type NewSessionOutput struct {
	SessionID string
	Character skilltree.CharacterState
}

// GetCharacterInput defines the request for reading a session
type GetCharacterInput struct {
	SessionID string
}

// GetCharacterOutput defines the response for reading a session
type GetCharacterOutput struct {
	Character skilltree.CharacterState
}

// ExecuteInput defines the request for applying a command
type ExecuteInput struct {
	SessionID string
	Command   engine.Command
}

// ExecuteOutput is the result of a command. Character is the session state
// after the command, unchanged when the command was rejected.
type ExecuteOutput struct {
	Accepted  bool
	Reason    errors.Reason
	Message   string
	Character skilltree.CharacterState
}

// SaveInput defines the request for saving a session to a slot
type SaveInput struct {
	SessionID string
	// Slot defaults to the configured slot name
	Slot string
}

// SaveOutput defines the response for saving a session
type SaveOutput struct {
	Slot    string
	SavedAt time.Time
}

// LoadInput defines the request for loading a slot into a session
type LoadInput struct {
	SessionID string
	Slot      string
}

// LoadOutput defines the response for loading a slot. When nothing is stored
// under the slot Found is false and the session keeps its character.
type LoadOutput struct {
	Found     bool
	Slot      string
	Character skilltree.CharacterState
	// Dropped lists stored values that could not be kept
	Dropped []string
}

// ExportInput defines the request for exporting a session
type ExportInput struct {
	SessionID string
	// Format is "json" (default) or "toml"
	Format string
}

// ExportOutput holds the encoded snapshot
type ExportOutput struct {
	Data   []byte
	Format string
}

// ImportInput defines the request for replacing a session from a snapshot
type ImportInput struct {
	SessionID string
	Data      []byte
	Format    string
}

// ImportOutput defines the response for an import
type ImportOutput struct {
	Character skilltree.CharacterState
	Dropped   []string
}

// ListSlotsInput defines the request for listing saved slots
type ListSlotsInput struct{}

// ListSlotsOutput defines the response for listing saved slots
type ListSlotsOutput struct {
	Slots []string
}

// DeleteSlotInput defines the request for deleting a saved slot
type DeleteSlotInput struct {
	Slot string
}

// DeleteSlotOutput defines the response for deleting a saved slot
type DeleteSlotOutput struct {
	Deleted bool
}

// ListNodesInput defines the request for listing skill nodes
type ListNodesInput struct {
	// SessionID selects the character unlock state is computed for
	SessionID string
	// Color filters the nodes when set
	Color skilltree.Color
}

// ListNodesOutput defines the response for listing skill nodes
type ListNodesOutput struct {
	Nodes           []engine.NodeStatus
	AvailablePoints int
}

// ListTraitsInput defines the request for listing traits
type ListTraitsInput struct {
	// Kind filters the traits when set
	Kind skilltree.TraitKind
}

// ListTraitsOutput defines the response for listing traits
type ListTraitsOutput struct {
	Traits []*skilltree.Trait
}
