// Package htmlform renders a form structure as the HTML form shown to people
// filling it in. Controls are re-populated from the submission passed in the
// render options so a failed POST can be shown again with its values intact.
package htmlform

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Renderer implements render.Renderer for HTML output.
type Renderer struct {
	cfg config
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) *Renderer {
	cfg := config{
		formClass:   defaultFormClass,
		submitLabel: defaultSubmitLabel,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &Renderer{cfg: cfg}
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, structure model.Structure, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(r.Generate(structure, options)), nil
}

// Generate builds the <form> markup: one list item per recognised field
// followed by the submit button.
func (r *Renderer) Generate(structure model.Structure, options render.RenderOptions) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<form class=\"%s\" method=\"post\" action=\"%s\">\n",
		html.EscapeString(r.cfg.formClass), html.EscapeString(options.FormAction()))

	b.WriteString(render.ErrorListHTML(options.Errors))

	for _, hidden := range render.SortedHiddenFields(options.Hidden) {
		fmt.Fprintf(&b, "<input type=\"hidden\" name=\"%s\" value=\"%s\" />\n",
			html.EscapeString(hidden.Name), html.EscapeString(hidden.Value))
	}

	b.WriteString("<ol>\n")
	fields := fieldRenderer{cfg: r.cfg, submission: options.Submission}
	for _, field := range structure.Known() {
		fields.render(&b, field)
	}

	submit := render.Translate(options.Translator, options.Locale, render.MessageSubmitLabel, r.cfg.submitLabel)
	fmt.Fprintf(&b, "<li class=\"btn-submit\"><input type=\"submit\" name=\"submit\" value=\"%s\" /></li>\n",
		html.EscapeString(submit))
	b.WriteString("</ol>\n")
	b.WriteString("</form>\n")

	return b.String()
}
