package snapshot

import (
	"encoding/json"
	"fmt"
)

// fields is a parsed payload keyed by field name. Each value is decoded on
// its own so a mistyped field is defaulted instead of failing the document.
type fields map[string]json.RawMessage

// tomlFields re-encodes a generic TOML table so it shares the JSON decode
// path. Values that cannot be represented are reported and skipped.
func tomlFields(table map[string]any) (fields, []string) {
	out := make(fields, len(table))
	var dropped []string
	for _, key := range sortedKeys(table) {
		raw, err := json.Marshal(table[key])
		if err != nil {
			dropped = append(dropped, fmt.Sprintf("%s: %v", key, err))
			continue
		}
		out[key] = raw
	}
	return out, dropped
}

type fieldDecoder struct {
	fields  fields
	prefix  string
	dropped []string
}

func (d *fieldDecoder) drop(key string, err error) {
	d.dropped = append(d.dropped, fmt.Sprintf("%s%s: %v", d.prefix, key, err))
}

// nested returns a decoder over the object stored at key. A value that is
// not an object is dropped and the returned decoder is empty.
func (d *fieldDecoder) nested(key string) (*fieldDecoder, bool) {
	raw, ok := d.fields[key]
	if !ok || isNull(raw) {
		return nil, false
	}
	var inner fields
	if err := json.Unmarshal(raw, &inner); err != nil {
		d.drop(key, err)
		return nil, false
	}
	return &fieldDecoder{fields: inner, prefix: d.prefix + key + "."}, true
}

func (d *fieldDecoder) merge(inner *fieldDecoder) {
	d.dropped = append(d.dropped, inner.dropped...)
}

// decodeField stores the value at key in dst and reports whether it did.
// A missing or null value leaves dst untouched.
func decodeField[T any](d *fieldDecoder, key string, dst *T) bool {
	raw, ok := d.fields[key]
	if !ok || isNull(raw) {
		return false
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		d.drop(key, err)
		return false
	}
	*dst = v
	return true
}

// decodeEntries fills a map entry by entry, keeping the entries that decode
func decodeEntries[V any](d *fieldDecoder, key string) map[string]V {
	inner, ok := d.nested(key)
	if !ok {
		return nil
	}
	out := make(map[string]V, len(inner.fields))
	for _, name := range sortedKeys(inner.fields) {
		var v V
		if decodeField(inner, name, &v) {
			out[name] = v
		}
	}
	d.merge(inner)
	return out
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// documentFromFields decodes every known field of a document on its own
func documentFromFields(f fields) *Document {
	d := &fieldDecoder{fields: f}
	doc := &Document{}

	decodeField(d, "schema_version", &doc.SchemaVersion)
	decodeField(d, "exported_at", &doc.ExportedAt)
	decodeField(d, "name", &doc.Name)
	decodeField(d, "notes", &doc.Notes)
	decodeField(d, "level", &doc.Level)
	decodeField(d, "armor", &doc.Armor)
	decodeField(d, "use_dex_for_armor", &doc.UseDexForArmor)
	decodeField(d, "hp", &doc.HP)
	decodeField(d, "max_hp", &doc.MaxHP)
	decodeField(d, "race", &doc.RaceID)
	decodeField(d, "birthsign", &doc.BirthsignID)

	decodeField(d, "feats", &doc.FeatIDs)

	if inner, ok := d.nested("abilities"); ok {
		doc.Abilities = &AbilityScores{}
		decodeField(inner, "str", &doc.Abilities.Str)
		decodeField(inner, "dex", &doc.Abilities.Dex)
		decodeField(inner, "con", &doc.Abilities.Con)
		decodeField(inner, "int", &doc.Abilities.Int)
		decodeField(inner, "wis", &doc.Abilities.Wis)
		decodeField(inner, "cha", &doc.Abilities.Cha)
		d.merge(inner)
	}

	if inner, ok := d.nested("resources"); ok {
		doc.Resources = &ResourcePools{}
		decodeField(inner, "adrenaline", &doc.Resources.Adrenaline)
		decodeField(inner, "mana", &doc.Resources.Mana)
		decodeField(inner, "stamina", &doc.Resources.Stamina)
		d.merge(inner)
	}

	doc.NodePoints = decodeEntries[int](d, "node_points")
	doc.NodeChoices = decodeEntries[string](d, "node_choices")

	if raw, ok := f["inventory"]; ok && !isNull(raw) {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			d.drop("inventory", err)
		}
		for i, itemRaw := range items {
			var item Item
			if err := json.Unmarshal(itemRaw, &item); err != nil {
				d.drop(fmt.Sprintf("inventory[%d]", i), err)
				continue
			}
			doc.Inventory = append(doc.Inventory, item)
		}
	}

	decodeField(d, "derived", &doc.Derived)

	doc.dropped = d.dropped
	return doc
}
