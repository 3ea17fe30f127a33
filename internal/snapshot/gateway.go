package snapshot

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
	"github.com/KirkDiggler/skilltree-api/internal/pkg/clock"
	"github.com/KirkDiggler/skilltree-api/internal/pkg/idgen"
)

// Gateway is the persistence boundary for character state. It stamps
// exports with the current time and runs Normalize on every import.
type Gateway struct {
	nodes NodeLookup
	clock clock.Clock
	idGen idgen.Generator
}

// Config holds the dependencies of a Gateway
type Config struct {
	Nodes       NodeLookup
	Clock       clock.Clock
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are set
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Nodes == nil {
		vb.RequiredField("Nodes")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// NewGateway creates a gateway
func NewGateway(cfg *Config) (*Gateway, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Gateway{
		nodes: cfg.Nodes,
		clock: cfg.Clock,
		idGen: cfg.IDGenerator,
	}, nil
}

// Export encodes state with the current time and schema version
func (g *Gateway) Export(ctx context.Context, state skilltree.CharacterState, format Format) ([]byte, error) {
	data, err := Encode(FromState(state, g.clock.Now()), format)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to encode snapshot", "format", format, "error", err)
		return nil, err
	}

	slog.DebugContext(ctx, "Snapshot exported", "format", format, "bytes", len(data))
	return data, nil
}

// Import decodes and normalizes a payload. Parse failures carry
// ReasonMalformedSnapshot; anything that parses produces a state.
func (g *Gateway) Import(ctx context.Context, data []byte, format Format) (*Result, error) {
	doc, err := Decode(data, format)
	if err != nil {
		slog.WarnContext(ctx, "Rejected malformed snapshot", "format", format, "error", err)
		return nil, err
	}

	if doc.SchemaVersion > SchemaVersion {
		slog.WarnContext(ctx, "Snapshot written by a newer schema",
			"schema_version", doc.SchemaVersion,
			"supported", SchemaVersion)
	}

	res := Normalize(doc, g.nodes, g.idGen)
	for _, dropped := range res.Dropped {
		slog.WarnContext(ctx, "Snapshot value dropped", "detail", dropped)
	}

	slog.DebugContext(ctx, "Snapshot imported",
		"format", format,
		"schema_version", doc.SchemaVersion,
		"hp_missing", res.HPMissing,
		"dropped", len(res.Dropped))

	return &res, nil
}
