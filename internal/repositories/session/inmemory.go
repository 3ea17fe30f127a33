package session

import (
	"context"
	"sync"

	"github.com/KirkDiggler/skilltree-api/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*Data
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*Data),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Save stores a copy of the character
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	version := int64(1)
	if prev, ok := r.store[input.SessionID]; ok {
		version = prev.Version + 1
	}

	r.store[input.SessionID] = &Data{
		ID:        input.SessionID,
		Character: input.Character.Clone(),
		Version:   version,
	}

	return &SaveOutput{Version: version}, nil
}

// Get retrieves a session by ID
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, exists := r.store[input.SessionID]
	if !exists {
		return nil, errors.NotFoundf("session %s not found", input.SessionID)
	}

	// Return a copy to prevent external modification
	return &GetOutput{
		Data: &Data{
			ID:        data.ID,
			Character: data.Character.Clone(),
			Version:   data.Version,
		},
	}, nil
}

// Delete removes a session
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.store[input.SessionID]
	delete(r.store, input.SessionID)

	return &DeleteOutput{Deleted: exists}, nil
}
