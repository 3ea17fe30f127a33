// Package builder implements the builder orchestrator. It owns the session
// lifecycle: every call locks its session, reads the current character,
// runs the engine and stores the result.
package builder

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/skilltree-api/internal/engine"
	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
	"github.com/KirkDiggler/skilltree-api/internal/pkg/idgen"
	sessionrepo "github.com/KirkDiggler/skilltree-api/internal/repositories/session"
	slotrepo "github.com/KirkDiggler/skilltree-api/internal/repositories/slot"
	"github.com/KirkDiggler/skilltree-api/internal/services/builder"
	"github.com/KirkDiggler/skilltree-api/internal/snapshot"
	"github.com/KirkDiggler/skilltree-api/internal/telemetry"
)

var tracer = telemetry.Tracer("builder")

// Config holds the dependencies for the builder orchestrator
type Config struct {
	Engine      engine.Engine
	SessionRepo sessionrepo.Repository
	SlotRepo    slotrepo.Repository
	Gateway     *snapshot.Gateway
	// IDGenerator issues ids for sessions started without one
	IDGenerator idgen.Generator
	// DefaultSlot is used when a save or load names no slot
	DefaultSlot string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.SlotRepo == nil {
		vb.RequiredField("SlotRepo")
	}
	if c.Gateway == nil {
		vb.RequiredField("Gateway")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Orchestrator implements the builder.Service interface
type Orchestrator struct {
	engine      engine.Engine
	sessions    sessionrepo.Repository
	slots       slotrepo.Repository
	gateway     *snapshot.Gateway
	idGen       idgen.Generator
	defaultSlot string
	locks       *sessionLocks
}

// New creates a new builder orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	defaultSlot := cfg.DefaultSlot
	if defaultSlot == "" {
		defaultSlot = slotrepo.DefaultName
	}

	return &Orchestrator{
		engine:      cfg.Engine,
		sessions:    cfg.SessionRepo,
		slots:       cfg.SlotRepo,
		gateway:     cfg.Gateway,
		idGen:       cfg.IDGenerator,
		defaultSlot: defaultSlot,
		locks:       newSessionLocks(),
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ builder.Service = (*Orchestrator)(nil)

// NewSession replaces the session character with a new default character
func (o *Orchestrator) NewSession(ctx context.Context, input *builder.NewSessionInput) (*builder.NewSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = o.idGen.Generate()
	}

	ctx, span := startSpan(ctx, "builder.NewSession", sessionID)
	defer span.End()

	unlock := o.locks.lock(sessionID)
	defer unlock()

	state := o.engine.NewCharacter()
	if err := o.store(ctx, sessionID, state); err != nil {
		return nil, fail(span, err)
	}

	slog.InfoContext(ctx, "Session started", "session_id", sessionID)
	return &builder.NewSessionOutput{SessionID: sessionID, Character: state}, nil
}

// GetCharacter returns the current character of a session
func (o *Orchestrator) GetCharacter(ctx context.Context, input *builder.GetCharacterInput) (*builder.GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := requireSession(input.SessionID); err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "builder.GetCharacter", input.SessionID)
	defer span.End()

	unlock := o.locks.lock(input.SessionID)
	defer unlock()

	state, err := o.current(ctx, input.SessionID)
	if err != nil {
		return nil, fail(span, err)
	}

	return &builder.GetCharacterOutput{Character: state}, nil
}

// Execute applies one command to the session character
func (o *Orchestrator) Execute(ctx context.Context, input *builder.ExecuteInput) (*builder.ExecuteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := requireSession(input.SessionID); err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "builder.Execute", input.SessionID,
		attribute.String("command.type", string(input.Command.Type)))
	defer span.End()

	unlock := o.locks.lock(input.SessionID)
	defer unlock()

	state, err := o.current(ctx, input.SessionID)
	if err != nil {
		return nil, fail(span, err)
	}

	next, err := o.engine.Apply(state, input.Command)
	if err != nil {
		if !engine.IsRejection(err) {
			return nil, fail(span, err)
		}

		reason := errors.GetReason(err)
		span.SetAttributes(
			attribute.Bool("command.accepted", false),
			attribute.String("command.reason", string(reason)))
		slog.DebugContext(ctx, "Command rejected",
			"session_id", input.SessionID,
			"command", input.Command.Type,
			"reason", reason)

		return &builder.ExecuteOutput{
			Accepted:  false,
			Reason:    reason,
			Message:   errors.GetMessage(err),
			Character: state,
		}, nil
	}

	if err := o.store(ctx, input.SessionID, next); err != nil {
		return nil, fail(span, err)
	}

	span.SetAttributes(attribute.Bool("command.accepted", true))
	slog.DebugContext(ctx, "Command applied",
		"session_id", input.SessionID,
		"command", input.Command.Type,
		"available_points", next.AvailableSkillPoints())

	return &builder.ExecuteOutput{Accepted: true, Character: next}, nil
}

// current returns the stored character, starting the session when it does
// not exist yet. Callers hold the session lock.
func (o *Orchestrator) current(ctx context.Context, sessionID string) (skilltree.CharacterState, error) {
	out, err := o.sessions.Get(ctx, &sessionrepo.GetInput{SessionID: sessionID})
	if err == nil {
		return out.Data.Character, nil
	}
	if !errors.IsNotFound(err) {
		return skilltree.CharacterState{}, errors.Wrapf(err, "failed to get session %s", sessionID)
	}

	state := o.engine.NewCharacter()
	if err := o.store(ctx, sessionID, state); err != nil {
		return skilltree.CharacterState{}, err
	}

	slog.InfoContext(ctx, "Session started", "session_id", sessionID)
	return state, nil
}

func (o *Orchestrator) store(ctx context.Context, sessionID string, state skilltree.CharacterState) error {
	_, err := o.sessions.Save(ctx, &sessionrepo.SaveInput{SessionID: sessionID, Character: state})
	if err != nil {
		return errors.Wrapf(err, "failed to save session %s", sessionID)
	}
	return nil
}

func (o *Orchestrator) slotName(name string) string {
	if name == "" {
		return o.defaultSlot
	}
	return name
}

func requireSession(sessionID string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("sessionID", sessionID, vb)
	return vb.Build()
}

func startSpan(ctx context.Context, name, sessionID string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("session.id", sessionID))
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
