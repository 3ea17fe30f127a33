// Package session holds the current character of each builder session
package session

//go:generate mockgen -destination=mock/mock_repository.go -package=sessionmock github.com/KirkDiggler/skilltree-api/internal/repositories/session Repository

import (
	"context"

	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
)

// Repository defines the storage interface for sessions
type Repository interface {
	// Save stores the character of a session, replacing the previous one
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get retrieves the character of a session
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Delete removes a session
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

// Data is the stored state of one session
type Data struct {
	ID        string
	Character skilltree.CharacterState
	// Version increases on every save
	Version int64
}

// SaveInput defines the request for saving a session
type SaveInput struct {
	SessionID string
	Character skilltree.CharacterState
}

// SaveOutput defines the response for saving a session
type SaveOutput struct {
	Version int64
}

// GetInput defines the request for getting a session
type GetInput struct {
	SessionID string
}

// GetOutput defines the response for getting a session
type GetOutput struct {
	Data *Data
}

// DeleteInput defines the request for deleting a session
type DeleteInput struct {
	SessionID string
}

// DeleteOutput defines the response for deleting a session
type DeleteOutput struct {
	Deleted bool
}
