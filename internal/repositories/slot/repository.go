// Package slot provides storage for saved character snapshots. A slot is a
// named payload; saving to an existing name replaces it.
package slot

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=slotmock github.com/KirkDiggler/skilltree-api/internal/repositories/slot Repository

// DefaultName is the slot used when none is given
const DefaultName = "skillTreeCharacter"

// Slot is one stored snapshot
type Slot struct {
	Name string

	// Encoded snapshot document
	Payload []byte

	// Encoding of Payload, "json" or "toml"
	Format string

	SavedAt time.Time
}

// SaveInput contains parameters for saving a slot
type SaveInput struct {
	Name    string
	Payload []byte
	Format  string
}

// SaveOutput contains the stored slot
type SaveOutput struct {
	Slot *Slot
}

// LoadInput contains parameters for loading a slot
type LoadInput struct {
	Name string
}

// LoadOutput contains the slot, if one was stored under the name.
// A missing slot is not an error.
type LoadOutput struct {
	Slot  *Slot
	Found bool
}

// DeleteInput contains parameters for deleting a slot
type DeleteInput struct {
	Name string
}

// DeleteOutput reports whether a slot was removed
type DeleteOutput struct {
	Deleted bool
}

// ListInput contains parameters for listing slots
type ListInput struct{}

// ListOutput contains the stored slot names in sorted order
type ListOutput struct {
	Names []string
}

// Repository defines the interface for slot storage operations
type Repository interface {
	// Save stores the payload under the name, replacing any previous one
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Load retrieves a slot by name
	Load(ctx context.Context, input LoadInput) (*LoadOutput, error)

	// Delete removes a slot
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns the names of every stored slot
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

const (
	errNameEmpty    = "slot name cannot be empty"
	errPayloadEmpty = "payload cannot be empty"
)
