package snapshot

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/KirkDiggler/skilltree-api/internal/errors"
)

// ReasonMalformedSnapshot marks a payload that could not be parsed at all.
// Missing fields are defaulted and never produce it.
const ReasonMalformedSnapshot errors.Reason = "MALFORMED_SNAPSHOT"

// Format is the encoding of a document
type Format string

// Supported formats
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// IsValid reports whether f is a supported format
func (f Format) IsValid() bool {
	return f == FormatJSON || f == FormatTOML
}

// FormatFromPath picks the format from a file extension. Anything that is not
// .toml is JSON.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// ParseFormat maps a user supplied name to a format; empty means JSON
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatTOML:
		return f, nil
	default:
		return "", errors.InvalidArgumentf("unsupported snapshot format %q", name)
	}
}

// Encode writes doc in the given format
func Encode(doc *Document, format Format) ([]byte, error) {
	if doc == nil {
		return nil, errors.InvalidArgument("document is required")
	}

	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode snapshot")
		}
		return data, nil
	case FormatTOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(doc); err != nil {
			return nil, errors.Wrap(err, "failed to encode snapshot")
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.InvalidArgumentf("unsupported snapshot format %q", format)
	}
}

// Decode parses data in the given format. Only a payload that is not a
// structured object fails, as an InvalidArgument error carrying
// ReasonMalformedSnapshot. Fields holding the wrong type are left unset and
// reported through the Result of Normalize.
func Decode(data []byte, format Format) (*Document, error) {
	var (
		f       fields
		dropped []string
		err     error
	)
	switch format {
	case FormatJSON, "":
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, malformed(format, "empty payload")
		}
		err = json.Unmarshal(data, &f)
		if err == nil && f == nil {
			return nil, malformed(format, "payload is not an object")
		}
	case FormatTOML:
		var table map[string]any
		err = toml.Unmarshal(data, &table)
		f, dropped = tomlFields(table)
	default:
		return nil, errors.InvalidArgumentf("unsupported snapshot format %q", format)
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed snapshot").
			WithReason(ReasonMalformedSnapshot).
			WithMeta("format", string(format))
	}

	doc := documentFromFields(f)
	doc.dropped = append(dropped, doc.dropped...)
	return doc, nil
}

// IsMalformed reports whether err came from a payload that failed to parse
func IsMalformed(err error) bool {
	return errors.HasReason(err, ReasonMalformedSnapshot)
}

func malformed(format Format, message string) *errors.Error {
	return errors.InvalidArgumentf("malformed snapshot: %s", message).
		WithReason(ReasonMalformedSnapshot).
		WithMeta("format", string(format))
}
