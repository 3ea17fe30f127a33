package v1alpha1

import (
	"context"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
	"github.com/KirkDiggler/skilltree-api/internal/services/builder"
)

// HandlerConfig holds dependencies for the builder handler
type HandlerConfig struct {
	BuilderService builder.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.BuilderService == nil {
		return errors.InvalidArgument("builder service is required")
	}
	return nil
}

// Handler implements CharacterBuilderServiceServer
type Handler struct {
	builderService builder.Service
}

// NewHandler creates a new builder handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		builderService: cfg.BuilderService,
	}, nil
}

var _ CharacterBuilderServiceServer = (*Handler)(nil)

func requireSessionID(req *structpb.Struct) (string, error) {
	id := stringField(req, FieldSessionID)
	if id == "" {
		return "", errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}
	return id, nil
}

// respond builds a response struct, encoding the character under
// "character" when one is given
func respond(fields map[string]any, state *skilltree.CharacterState) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	if state != nil {
		character, err := characterValue(*state)
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		out.Fields["character"] = character
	}
	return out, nil
}

// NewSession resets a session to a new character
func (h *Handler) NewSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.builderService.NewSession(ctx, &builder.NewSessionInput{
		SessionID: stringField(req, FieldSessionID),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{FieldSessionID: out.SessionID}, &out.Character)
}

// GetCharacter returns the session character
func (h *Handler) GetCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.builderService.GetCharacter(ctx, &builder.GetCharacterInput{SessionID: sessionID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{}, &out.Character)
}

// Execute applies one command. Rejections are reported in the response,
// not as a gRPC error.
func (h *Handler) Execute(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return nil, err
	}

	cmd, err := commandFromStruct(structField(req, FieldCommand))
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.builderService.Execute(ctx, &builder.ExecuteInput{SessionID: sessionID, Command: cmd})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		"accepted": out.Accepted,
		"reason":   string(out.Reason),
		"message":  out.Message,
	}, &out.Character)
}

// Save stores the session character in a slot
func (h *Handler) Save(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.builderService.Save(ctx, &builder.SaveInput{
		SessionID: sessionID,
		Slot:      stringField(req, FieldSlot),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		FieldSlot:  out.Slot,
		"saved_at": out.SavedAt.UTC().Format(time.RFC3339),
	}, nil)
}

// Load replaces the session character with a stored slot
func (h *Handler) Load(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.builderService.Load(ctx, &builder.LoadInput{
		SessionID: sessionID,
		Slot:      stringField(req, FieldSlot),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		"found":   out.Found,
		FieldSlot: out.Slot,
		"dropped": stringsToAny(out.Dropped),
	}, &out.Character)
}

// Export encodes the session character
func (h *Handler) Export(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.builderService.Export(ctx, &builder.ExportInput{
		SessionID: sessionID,
		Format:    stringField(req, FieldFormat),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		FieldData:   string(out.Data),
		FieldFormat: out.Format,
	}, nil)
}

// Import replaces the session character from an encoded snapshot
func (h *Handler) Import(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.builderService.Import(ctx, &builder.ImportInput{
		SessionID: sessionID,
		Data:      []byte(stringField(req, FieldData)),
		Format:    stringField(req, FieldFormat),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"dropped": stringsToAny(out.Dropped)}, &out.Character)
}

// ListSlots returns the stored slot names
func (h *Handler) ListSlots(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.builderService.ListSlots(ctx, &builder.ListSlotsInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"slots": stringsToAny(out.Slots)}, nil)
}

// DeleteSlot removes a stored slot
func (h *Handler) DeleteSlot(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.builderService.DeleteSlot(ctx, &builder.DeleteSlotInput{Slot: stringField(req, FieldSlot)})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"deleted": out.Deleted}, nil)
}

// ListNodes returns the nodes with their unlock state
func (h *Handler) ListNodes(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := requireSessionID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.builderService.ListNodes(ctx, &builder.ListNodesInput{
		SessionID: sessionID,
		Color:     skilltree.Color(stringField(req, FieldColor)),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	nodes, err := nodesValue(out.Nodes)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := respond(map[string]any{"available_points": out.AvailablePoints}, nil)
	if err != nil {
		return nil, err
	}
	resp.Fields["nodes"] = nodes
	return resp, nil
}

// ListTraits returns catalog traits, optionally of one kind
func (h *Handler) ListTraits(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.builderService.ListTraits(ctx, &builder.ListTraitsInput{
		Kind: skilltree.TraitKind(stringField(req, FieldKind)),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	traits, err := traitsValue(out.Traits)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := respond(map[string]any{}, nil)
	if err != nil {
		return nil, err
	}
	resp.Fields["traits"] = traits
	return resp, nil
}

func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
