package builder

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/KirkDiggler/skilltree-api/internal/engine"
	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
	slotrepo "github.com/KirkDiggler/skilltree-api/internal/repositories/slot"
	"github.com/KirkDiggler/skilltree-api/internal/services/builder"
	"github.com/KirkDiggler/skilltree-api/internal/snapshot"
)

// Save writes the session character to a slot as JSON
func (o *Orchestrator) Save(ctx context.Context, input *builder.SaveInput) (*builder.SaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := requireSession(input.SessionID); err != nil {
		return nil, err
	}

	name := o.slotName(input.Slot)
	ctx, span := startSpan(ctx, "builder.Save", input.SessionID, attribute.String("slot.name", name))
	defer span.End()

	unlock := o.locks.lock(input.SessionID)
	defer unlock()

	state, err := o.current(ctx, input.SessionID)
	if err != nil {
		return nil, fail(span, err)
	}

	data, err := o.gateway.Export(ctx, state, snapshot.FormatJSON)
	if err != nil {
		return nil, fail(span, err)
	}

	out, err := o.slots.Save(ctx, slotrepo.SaveInput{
		Name:    name,
		Payload: data,
		Format:  string(snapshot.FormatJSON),
	})
	if err != nil {
		return nil, fail(span, errors.Wrapf(err, "failed to save slot %s", name))
	}

	slog.InfoContext(ctx, "Character saved",
		"session_id", input.SessionID,
		"slot", name,
		"bytes", len(data))

	return &builder.SaveOutput{Slot: name, SavedAt: out.Slot.SavedAt}, nil
}

// Load replaces the session character with the one stored in a slot. An
// empty slot leaves the session as it was.
func (o *Orchestrator) Load(ctx context.Context, input *builder.LoadInput) (*builder.LoadOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := requireSession(input.SessionID); err != nil {
		return nil, err
	}

	name := o.slotName(input.Slot)
	ctx, span := startSpan(ctx, "builder.Load", input.SessionID, attribute.String("slot.name", name))
	defer span.End()

	unlock := o.locks.lock(input.SessionID)
	defer unlock()

	stored, err := o.slots.Load(ctx, slotrepo.LoadInput{Name: name})
	if err != nil {
		return nil, fail(span, errors.Wrapf(err, "failed to load slot %s", name))
	}

	if !stored.Found {
		state, err := o.current(ctx, input.SessionID)
		if err != nil {
			return nil, fail(span, err)
		}
		slog.DebugContext(ctx, "Slot is empty", "session_id", input.SessionID, "slot", name)
		return &builder.LoadOutput{Found: false, Slot: name, Character: state}, nil
	}

	format, err := snapshot.ParseFormat(stored.Slot.Format)
	if err != nil {
		return nil, fail(span, errors.WrapWithCode(err, errors.CodeDataLoss, "slot has an unknown format"))
	}

	state, dropped, err := o.restore(ctx, input.SessionID, stored.Slot.Payload, format)
	if err != nil {
		return nil, fail(span, err)
	}

	slog.InfoContext(ctx, "Character loaded",
		"session_id", input.SessionID,
		"slot", name,
		"dropped", len(dropped))

	return &builder.LoadOutput{
		Found:     true,
		Slot:      name,
		Character: state,
		Dropped:   dropped,
	}, nil
}

// Export encodes the session character
func (o *Orchestrator) Export(ctx context.Context, input *builder.ExportInput) (*builder.ExportOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := requireSession(input.SessionID); err != nil {
		return nil, err
	}

	format, err := snapshot.ParseFormat(input.Format)
	if err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "builder.Export", input.SessionID, attribute.String("snapshot.format", string(format)))
	defer span.End()

	unlock := o.locks.lock(input.SessionID)
	defer unlock()

	state, err := o.current(ctx, input.SessionID)
	if err != nil {
		return nil, fail(span, err)
	}

	data, err := o.gateway.Export(ctx, state, format)
	if err != nil {
		return nil, fail(span, err)
	}

	return &builder.ExportOutput{Data: data, Format: string(format)}, nil
}

// Import replaces the session character from an encoded snapshot. A payload
// that does not parse leaves the session unchanged.
func (o *Orchestrator) Import(ctx context.Context, input *builder.ImportInput) (*builder.ImportOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := requireSession(input.SessionID); err != nil {
		return nil, err
	}

	format, err := snapshot.ParseFormat(input.Format)
	if err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "builder.Import", input.SessionID, attribute.String("snapshot.format", string(format)))
	defer span.End()

	unlock := o.locks.lock(input.SessionID)
	defer unlock()

	state, dropped, err := o.restore(ctx, input.SessionID, input.Data, format)
	if err != nil {
		return nil, fail(span, err)
	}

	slog.InfoContext(ctx, "Character imported",
		"session_id", input.SessionID,
		"format", format,
		"dropped", len(dropped))

	return &builder.ImportOutput{Character: state, Dropped: dropped}, nil
}

// ListSlots returns the stored slot names
func (o *Orchestrator) ListSlots(ctx context.Context, input *builder.ListSlotsInput) (*builder.ListSlotsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.slots.List(ctx, slotrepo.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list slots")
	}

	return &builder.ListSlotsOutput{Slots: out.Names}, nil
}

// DeleteSlot removes a stored slot
func (o *Orchestrator) DeleteSlot(ctx context.Context, input *builder.DeleteSlotInput) (*builder.DeleteSlotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	name := o.slotName(input.Slot)
	out, err := o.slots.Delete(ctx, slotrepo.DeleteInput{Name: name})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete slot %s", name)
	}

	slog.InfoContext(ctx, "Slot deleted", "slot", name, "deleted", out.Deleted)
	return &builder.DeleteSlotOutput{Deleted: out.Deleted}, nil
}

// restore decodes a payload, rederives it and stores it as the session
// character. Callers hold the session lock.
func (o *Orchestrator) restore(
	ctx context.Context,
	sessionID string,
	data []byte,
	format snapshot.Format,
) (skilltree.CharacterState, []string, error) {
	res, err := o.gateway.Import(ctx, data, format)
	if err != nil {
		return skilltree.CharacterState{}, nil, err
	}

	state := o.engine.Refresh(res.State, engine.RefreshOptions{FillHP: res.HPMissing})
	if err := o.store(ctx, sessionID, state); err != nil {
		return skilltree.CharacterState{}, nil, err
	}

	return state, res.Dropped, nil
}
