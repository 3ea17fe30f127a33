package v1alpha1

import (
	"encoding/json"
	"math"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/skilltree-api/internal/engine"
	"github.com/KirkDiggler/skilltree-api/internal/entities/skilltree"
	"github.com/KirkDiggler/skilltree-api/internal/errors"
	"github.com/KirkDiggler/skilltree-api/internal/snapshot"
)

// Request field names
const (
	FieldSessionID = "session_id"
	FieldCommand   = "command"
	FieldSlot      = "slot"
	FieldFormat    = "format"
	FieldData      = "data"
	FieldColor     = "color"
	FieldKind      = "kind"
)

func stringField(s *structpb.Struct, key string) string {
	if s == nil {
		return ""
	}
	return s.GetFields()[key].GetStringValue()
}

func intField(s *structpb.Struct, key string) (int, error) {
	if s == nil {
		return 0, nil
	}
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, nil
	}
	n := v.GetNumberValue()
	if _, isNumber := v.GetKind().(*structpb.Value_NumberValue); !isNumber || n != math.Trunc(n) {
		return 0, errors.InvalidArgumentf("%s must be a whole number", key)
	}
	return int(n), nil
}

func floatField(s *structpb.Struct, key string) float64 {
	if s == nil {
		return 0
	}
	return s.GetFields()[key].GetNumberValue()
}

func structField(s *structpb.Struct, key string) *structpb.Struct {
	if s == nil {
		return nil
	}
	return s.GetFields()[key].GetStructValue()
}

// commandFromStruct reads a command. Keys mirror engine.Command in snake
// case; item is a nested object.
func commandFromStruct(s *structpb.Struct) (engine.Command, error) {
	if s == nil {
		return engine.Command{}, errors.InvalidArgument("command is required")
	}

	value, err := intField(s, "value")
	if err != nil {
		return engine.Command{}, err
	}

	cmd := engine.Command{
		Type:    engine.CommandType(stringField(s, "type")),
		NodeID:  stringField(s, "node_id"),
		Ability: skilltree.AbilityKey(stringField(s, "ability")),
		Value:   value,
		TraitID: stringField(s, "trait_id"),
		Text:    stringField(s, "text"),
	}
	if cmd.Type == "" {
		return engine.Command{}, errors.InvalidArgument("command.type is required")
	}

	if item := structField(s, "item"); item != nil {
		quantity, err := intField(item, "quantity")
		if err != nil {
			return engine.Command{}, err
		}
		cmd.Item = &skilltree.InventoryItem{
			ID:            stringField(item, "id"),
			Name:          stringField(item, "name"),
			Quantity:      quantity,
			Unit:          stringField(item, "unit"),
			WeightPerUnit: floatField(item, "weight_per_unit"),
			Description:   stringField(item, "description"),
		}
	}

	return cmd, nil
}

// toStruct converts any JSON encodable value into a Struct
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	return out, nil
}

// characterValue renders state the same way a snapshot does, plus the
// special ability details
func characterValue(state skilltree.CharacterState) (*structpb.Value, error) {
	doc := snapshot.FromState(state, time.Time{})
	doc.ExportedAt = nil

	s, err := toStruct(doc)
	if err != nil {
		return nil, err
	}

	details := make([]any, 0, len(state.Derived.SpecialAbilities))
	for _, sa := range state.Derived.SpecialAbilities {
		details = append(details, map[string]any{
			"id":          sa.ID,
			"name":        sa.Name,
			"description": sa.Description,
			"source":      sa.Source,
		})
	}
	list, err := structpb.NewList(details)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode special abilities")
	}
	s.Fields["special_ability_details"] = structpb.NewListValue(list)

	return structpb.NewStructValue(s), nil
}

type nodeView struct {
	*skilltree.SkillNode
	Unlocked   bool   `json:"unlocked"`
	Points     int    `json:"points"`
	FreePoints int    `json:"free_points"`
	Choice     string `json:"choice,omitempty"`
}

func nodesValue(statuses []engine.NodeStatus) (*structpb.Value, error) {
	views := make([]nodeView, 0, len(statuses))
	for _, st := range statuses {
		views = append(views, nodeView{
			SkillNode:  st.Node,
			Unlocked:   st.Unlocked,
			Points:     st.Points,
			FreePoints: st.FreePoints,
			Choice:     st.Choice,
		})
	}
	return listValue(views)
}

type traitView struct {
	ID           string   `json:"id"`
	Kind         string   `json:"kind"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Benefits     []string `json:"benefits,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
}

func traitsValue(traits []*skilltree.Trait) (*structpb.Value, error) {
	views := make([]traitView, 0, len(traits))
	for _, t := range traits {
		views = append(views, traitView{
			ID:           t.ID,
			Kind:         string(t.Kind),
			Name:         t.Name,
			Description:  t.Description,
			Benefits:     t.Benefits,
			Requirements: t.Requirements,
		})
	}
	return listValue(views)
}

func listValue[T any](items []T) (*structpb.Value, error) {
	s, err := toStruct(map[string]any{"items": items})
	if err != nil {
		return nil, err
	}
	return s.Fields["items"], nil
}
