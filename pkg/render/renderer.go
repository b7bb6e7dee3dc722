package render

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Renderer converts a form structure into a byte representation (HTML, XML,
// JSON, ...). ContentType designates the header an HTTP layer should send
// before writing the output.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, structure model.Structure, options RenderOptions) ([]byte, error)
}
