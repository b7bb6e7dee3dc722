package render

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DefaultHashField is the hidden input that carries a form's container hash.
const DefaultHashField = "form_hash"

// HiddenField is a hidden input written before the visible fields.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField with a trimmed name and value formatted with
// fmt.Sprint.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

// CSRFToken carries a CSRF token under the name the host framework expects,
// for example "_csrf".
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// AuthToken carries an authentication token or session hint.
func AuthToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// HashField carries a container hash so a posted submission can be matched
// to the stored form it was rendered from. An empty name selects
// DefaultHashField.
func HashField(name, hash string) HiddenField {
	if strings.TrimSpace(name) == "" {
		name = DefaultHashField
	}
	return Hidden(name, hash)
}

// MergeHiddenFields copies base and applies fields on top; later fields win
// and blank names are dropped. The result is nil when nothing survives.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for name, value := range base {
		setHidden(out, name, value)
	}
	for _, field := range fields {
		setHidden(out, field.Name, field.Value)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields returns fields ordered by name so rendered markup is
// stable across requests.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	clean := MergeHiddenFields(fields)
	if clean == nil {
		return nil
	}
	out := make([]HiddenField, 0, len(clean))
	for _, name := range slices.Sorted(maps.Keys(clean)) {
		out = append(out, HiddenField{Name: name, Value: clean[name]})
	}
	return out
}

func setHidden(dst map[string]string, name, value string) {
	if name = strings.TrimSpace(name); name != "" {
		dst[name] = value
	}
}
