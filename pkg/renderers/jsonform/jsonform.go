// Package jsonform renders a form structure as the JSON array the authoring
// tool reads back, preserving field order and attributes.
package jsonform

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Renderer implements render.Renderer for the JSON view.
type Renderer struct{}

var _ render.Renderer = Renderer{}

// New returns the JSON renderer.
func New() Renderer {
	return Renderer{}
}

func (Renderer) Name() string {
	return "json"
}

func (Renderer) ContentType() string {
	return "application/json"
}

func (Renderer) Render(ctx context.Context, structure model.Structure, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Marshal(structure)
}

// Marshal encodes every field, unknown kinds included, in authoring order. A
// nil structure encodes as an empty array.
func Marshal(structure model.Structure) ([]byte, error) {
	if structure == nil {
		structure = model.Structure{}
	}
	payload, err := json.Marshal(structure)
	if err != nil {
		return nil, fmt.Errorf("jsonform: marshal structure: %w", err)
	}
	return payload, nil
}
