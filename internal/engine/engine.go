package engine

import (
	"github.com/KirkDiggler/skilltree-api/internal/catalog"
	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
	"github.com/KirkDiggler/skilltree-api/internal/pkg/idgen"
)

type engine struct {
	catalog *catalog.Catalog
	idGen   idgen.Generator
}

// Config holds the engine dependencies
type Config struct {
	Catalog *catalog.Catalog
	// IDGenerator issues inventory item ids
	IDGenerator idgen.Generator
}

// Validate checks the config
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if cfg.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if cfg.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// New creates an engine
func New(cfg *Config) (Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid engine config")
	}

	return &engine{
		catalog: cfg.Catalog,
		idGen:   cfg.IDGenerator,
	}, nil
}

var _ Engine = (*engine)(nil)

func (e *engine) Catalog() *catalog.Catalog {
	return e.catalog
}

func (e *engine) NewCharacter() skilltree.CharacterState {
	state := skilltree.NewCharacterState()
	return e.derive(state, state, false, hpFill)
}

func (e *engine) Refresh(state skilltree.CharacterState, opts RefreshOptions) skilltree.CharacterState {
	rule := hpClamp
	if opts.FillHP {
		rule = hpFill
	}

	next := state.Clone()
	e.rebuildColorPoints(&next)
	return e.derive(state, next, true, rule)
}

func (e *engine) Apply(state skilltree.CharacterState, cmd Command) (skilltree.CharacterState, error) {
	switch cmd.Type {
	case CommandInvest:
		return e.Invest(state, cmd.NodeID)
	case CommandRemove:
		return e.Remove(state, cmd.NodeID)
	case CommandIncrementAbility:
		return e.IncrementAbility(state, cmd.Ability)
	case CommandDecrementAbility:
		return e.DecrementAbility(state, cmd.Ability)
	case CommandSetLevel:
		return e.SetLevel(state, cmd.Value)
	case CommandSetArmor:
		return e.SetArmor(state, cmd.Value)
	case CommandSetHP:
		return e.SetHP(state, cmd.Value)
	case CommandToggleUseDex:
		return e.ToggleUseDexForArmor(state), nil
	case CommandSetRace:
		return e.setTrait(state, skilltree.TraitKindRace, cmd.TraitID)
	case CommandSetBirthsign:
		return e.setTrait(state, skilltree.TraitKindBirthsign, cmd.TraitID)
	case CommandToggleFeat:
		return e.toggleFeat(state, cmd.TraitID)
	case CommandSetNodeChoice:
		return e.SetNodeChoice(state, cmd.NodeID, cmd.Text)
	case CommandSetName:
		return e.SetName(state, cmd.Text), nil
	case CommandSetNotes:
		return e.SetNotes(state, cmd.Text), nil
	case CommandAddItem, CommandUpdateItem:
		if cmd.Item == nil {
			return state, reject(ReasonInvalidInventoryItem, "item is required")
		}
		if cmd.Type == CommandAddItem {
			return e.AddItem(state, *cmd.Item)
		}
		return e.UpdateItem(state, *cmd.Item)
	case CommandRemoveItem:
		if cmd.Item == nil {
			return state, reject(ReasonItemNotFound, "item id is required")
		}
		return e.RemoveItem(state, cmd.Item.ID)
	}

	return state, errors.InvalidArgumentf("unknown command type %q", cmd.Type)
}

func (e *engine) NodeStatuses(state skilltree.CharacterState) []NodeStatus {
	byNode, byColor := e.effectivePoints(state)

	nodes := e.catalog.Nodes()
	out := make([]NodeStatus, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, NodeStatus{
			Node:       n,
			Unlocked:   IsUnlocked(e.catalog, n, byNode, byColor),
			Points:     state.NodePoints[n.ID],
			FreePoints: state.FreeNodePoints[n.ID],
			Choice:     state.NodeChoices[n.ID],
		})
	}
	return out
}
