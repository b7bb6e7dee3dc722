package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFormRoot is the parameter name the authoring tool nests its fields
// under when posting a structure (frmb[0][cssClass]=...).
const DefaultFormRoot = "frmb"

var (
	// ErrEmptyInput is returned when there is nothing to parse.
	ErrEmptyInput = errors.New("model: structure input is empty")
	// ErrNotList is returned when the payload is not a list of fields.
	ErrNotList = errors.New("model: structure must be a list of fields")
)

// ParseStructure decodes a structure from JSON, falling back to YAML. The
// payload may be a bare list of fields or an object wrapping the list under
// "frmb" or "fields".
func ParseStructure(data []byte) (Structure, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyInput
	}

	var generic any
	if err := json.Unmarshal(trimmed, &generic); err != nil {
		if yerr := yaml.Unmarshal(trimmed, &generic); yerr != nil {
			return nil, fmt.Errorf("model: parse structure: invalid JSON or YAML: %w", err)
		}
	}

	list, ok := structureList(generic)
	if !ok {
		return nil, ErrNotList
	}
	return structureFromList(list), nil
}

// ParseForm rebuilds a structure from the bracketed form encoding used by the
// authoring tool, e.g. frmb[1][values][2][value]=Red. An empty root selects
// DefaultFormRoot.
func ParseForm(values url.Values, root string) (Structure, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		root = DefaultFormRoot
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	tree := make(map[string]any)
	for _, key := range keys {
		head, segments, ok := splitBracketKey(key)
		if !ok || head != root || len(segments) == 0 {
			continue
		}
		list := values[key]
		value := ""
		if len(list) > 0 {
			value = list[len(list)-1]
		}
		insertPath(tree, segments, value)
	}

	if len(tree) == 0 {
		return nil, fmt.Errorf("model: parse form: no %q fields posted: %w", root, ErrEmptyInput)
	}
	return structureFromList(indexedValues(tree)), nil
}

func structureList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case map[string]any:
		for _, key := range []string{DefaultFormRoot, "fields"} {
			if nested, ok := v[key]; ok {
				return structureList(nested)
			}
		}
	}
	return nil, false
}

func structureFromList(list []any) Structure {
	out := make(Structure, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			out = append(out, Field{})
			continue
		}
		out = append(out, fieldFromMap(normalizeKeys(entry)))
	}
	return out
}

// normalizeKeys converts nested map[any]any values (possible with YAML) into
// map[string]any so the lenient field decoder sees a uniform shape.
func normalizeKeys(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return normalizeKeys(v)
	case map[any]any:
		converted := make(map[string]any, len(v))
		for key, item := range v {
			converted[fmt.Sprint(key)] = normalizeValue(item)
		}
		return converted
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}

func splitBracketKey(key string) (string, []string, bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 {
		return key, nil, true
	}
	head := key[:open]
	rest := key[open:]

	var segments []string
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, false
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", nil, false
		}
		segments = append(segments, rest[1:end])
		rest = rest[end+1:]
	}
	return head, segments, true
}

func insertPath(tree map[string]any, segments []string, value string) {
	node := tree
	for i, segment := range segments {
		if segment == "" {
			segment = fmt.Sprint(len(node))
		}
		if i == len(segments)-1 {
			node[segment] = value
			return
		}
		child, ok := node[segment].(map[string]any)
		if !ok {
			child = make(map[string]any)
			node[segment] = child
		}
		node = child
	}
}
