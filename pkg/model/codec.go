package model

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// wireField mirrors the authoring tool's JSON encoding of a field.
type wireField struct {
	CSSClass string `json:"cssClass"`
	Required string `json:"required"`
	Values   any    `json:"values"`
	Title    string `json:"title,omitempty"`
	Multiple string `json:"multiple,omitempty"`
}

type wireOption struct {
	Value   string `json:"value"`
	Default string `json:"default"`
}

// MarshalJSON writes the field in the authoring tool's format, with booleans
// rendered as "true"/"false" strings.
func (f Field) MarshalJSON() ([]byte, error) {
	wire := wireField{
		CSSClass: string(f.Kind),
		Required: formatBool(f.Required),
		Title:    f.Title,
	}

	switch {
	case f.Kind == KindText || f.Kind == KindTextarea:
		wire.Values = f.Label
	case f.Kind.HasOptions():
		wire.Values = wireOptions(f.Options)
	case f.Label != "":
		wire.Values = f.Label
	case f.Options != nil:
		wire.Values = wireOptions(f.Options)
	default:
		wire.Values = ""
	}

	if f.Kind == KindSelect || f.Multiple {
		wire.Multiple = formatBool(f.Multiple)
	}

	return json.Marshal(wire)
}

// UnmarshalJSON decodes a field leniently. A payload that is not an object
// yields an empty field of unknown kind rather than an error so one bad entry
// never rejects the rest of the structure.
func (f *Field) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		*f = Field{}
		return nil
	}
	*f = fieldFromMap(raw)
	return nil
}

func wireOptions(options []Option) []wireOption {
	out := make([]wireOption, 0, len(options))
	for _, option := range options {
		out = append(out, wireOption{
			Value:   option.Value,
			Default: formatBool(option.Default),
		})
	}
	return out
}

func fieldFromMap(raw map[string]any) Field {
	field := Field{
		Kind:     Kind(strings.TrimSpace(asString(raw["cssClass"]))),
		Required: parseBool(raw["required"]),
		Title:    asString(raw["title"]),
		Multiple: parseBool(raw["multiple"]),
	}

	values := raw["values"]
	switch {
	case field.Kind == KindText || field.Kind == KindTextarea:
		field.Label = asString(values)
	case field.Kind.HasOptions():
		field.Options = parseOptions(values)
	default:
		if label, ok := values.(string); ok {
			field.Label = label
		} else {
			field.Options = parseOptions(values)
		}
	}

	return field
}

func parseOptions(value any) []Option {
	var items []any
	switch v := value.(type) {
	case []any:
		items = v
	case map[string]any:
		items = indexedValues(v)
	default:
		return nil
	}

	out := make([]Option, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case map[string]any:
			out = append(out, Option{
				Value:   asString(v["value"]),
				Default: parseBool(v["default"]),
			})
		case string:
			out = append(out, Option{Value: v})
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// indexedValues orders an index-keyed object ({"2": ..., "10": ...}) the way
// the authoring tool numbered it: numeric keys ascending, then any remaining
// keys lexically.
func indexedValues(in map[string]any) []any {
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})

	out := make([]any, 0, len(keys))
	for _, key := range keys {
		out = append(out, in[key])
	}
	return out
}

func asString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return formatBool(v)
	default:
		return ""
	}
}

func parseBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "checked", "1", "yes", "on":
			return true
		}
	case float64:
		return v != 0
	case int:
		return v != 0
	}
	return false
}

func formatBool(value bool) string {
	if value {
		return "true"
	}
	return "false"
}
