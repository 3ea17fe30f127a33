package builder

import (
	"context"

	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
	"github.com/KirkDiggler/skilltree-api/internal/services/builder"
)

// ListNodes returns the skill nodes with their unlock state for the session
// character, optionally filtered by color
func (o *Orchestrator) ListNodes(ctx context.Context, input *builder.ListNodesInput) (*builder.ListNodesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := requireSession(input.SessionID); err != nil {
		return nil, err
	}
	if input.Color != "" && !input.Color.IsValid() {
		return nil, errors.InvalidArgumentf("unknown color %q", input.Color)
	}

	ctx, span := startSpan(ctx, "builder.ListNodes", input.SessionID)
	defer span.End()

	unlock := o.locks.lock(input.SessionID)
	defer unlock()

	state, err := o.current(ctx, input.SessionID)
	if err != nil {
		return nil, fail(span, err)
	}

	statuses := o.engine.NodeStatuses(state)
	if input.Color != "" {
		filtered := statuses[:0]
		for _, st := range statuses {
			if st.Node.Color == input.Color {
				filtered = append(filtered, st)
			}
		}
		statuses = filtered
	}

	return &builder.ListNodesOutput{
		Nodes:           statuses,
		AvailablePoints: state.AvailableSkillPoints(),
	}, nil
}

// ListTraits returns the catalog traits of one kind, or all of them
func (o *Orchestrator) ListTraits(_ context.Context, input *builder.ListTraitsInput) (*builder.ListTraitsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Kind != "" && !input.Kind.IsValid() {
		return nil, errors.InvalidArgumentf("unknown trait kind %q", input.Kind)
	}

	kinds := skilltree.TraitKinds
	if input.Kind != "" {
		kinds = []skilltree.TraitKind{input.Kind}
	}

	var traits []*skilltree.Trait
	for _, kind := range kinds {
		traits = append(traits, o.engine.Catalog().Traits(kind)...)
	}

	return &builder.ListTraitsOutput{Traits: traits}, nil
}
