package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Transformer mutates a structure before it is sealed into a document.
// Implementations can relabel fields, toggle requirements or drop fields.
type Transformer interface {
	Transform(ctx context.Context, structure *model.Structure) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, structure *model.Structure) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, structure *model.Structure) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, structure)
}

// JSONPresetTransformer patches a structure from a preset document. Fields
// are addressed by the element id they had before the preset ran:
//
//	{
//	  "fields": {
//	    "full_name": {"label": "Your name", "required": true},
//	    "size": {"title": "Pizza size"}
//	  },
//	  "drop": ["sign_here"]
//	}
//
// Naming a field that is not in the structure is an error so stale presets
// surface instead of silently doing nothing.
type JSONPresetTransformer struct {
	overrides map[string]fieldOverride
	drop      []string
}

type fieldOverride struct {
	Label    string `json:"label"`
	Title    string `json:"title"`
	Required *bool  `json:"required"`
	Multiple *bool  `json:"multiple"`
}

func (o fieldOverride) apply(field model.Field) model.Field {
	if o.Label != "" {
		field.Label = o.Label
	}
	if o.Title != "" {
		field.Title = o.Title
	}
	if o.Required != nil {
		field.Required = *o.Required
	}
	if o.Multiple != nil && field.Kind == model.KindSelect {
		field.Multiple = *o.Multiple
	}
	return field
}

var errEmptyPreset = errors.New("orchestrator: preset document is empty")

func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmptyPreset
	}
	var preset struct {
		Fields map[string]fieldOverride `json:"fields"`
		Drop   []string                 `json:"drop"`
	}
	if err := json.Unmarshal(data, &preset); err != nil {
		return nil, fmt.Errorf("orchestrator: decode preset: %w", err)
	}
	return &JSONPresetTransformer{overrides: preset.Fields, drop: preset.Drop}, nil
}

// NewJSONPresetTransformerFromFS reads the preset at name from fsys.
func NewJSONPresetTransformerFromFS(fsys fs.FS, name string) (*JSONPresetTransformer, error) {
	switch {
	case fsys == nil:
		return nil, errors.New("orchestrator: preset filesystem is nil")
	case strings.TrimSpace(name) == "":
		return nil, errors.New("orchestrator: preset path is required")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: read preset: %w", err)
	}
	return NewJSONPresetTransformer(data)
}

func (t *JSONPresetTransformer) Transform(ctx context.Context, structure *model.Structure) error {
	if structure == nil {
		return errors.New("orchestrator: preset applied to nil structure")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	patched := make(model.Structure, 0, len(*structure))
	matched := make(map[string]bool, len(t.overrides))
	for _, field := range *structure {
		id := field.ID()
		if slices.Contains(t.drop, id) {
			continue
		}
		if override, ok := t.overrides[id]; ok {
			field = override.apply(field)
			matched[id] = true
		}
		patched = append(patched, field)
	}

	var missing []error
	for _, id := range slices.Sorted(maps.Keys(t.overrides)) {
		if !matched[id] {
			missing = append(missing, fmt.Errorf("orchestrator: preset field %q not in structure", id))
		}
	}
	if err := errors.Join(missing...); err != nil {
		return err
	}

	*structure = patched
	return nil
}
