// Package xmlform renders a form structure as the XML document the authoring
// tool loads when it reopens a saved form.
package xmlform

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Declaration is the prolog written at the top of every document.
const Declaration = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

// Renderer implements render.Renderer for the XML view.
type Renderer struct{}

var _ render.Renderer = Renderer{}

// New returns the XML renderer.
func New() Renderer {
	return Renderer{}
}

func (Renderer) Name() string {
	return "xml"
}

func (Renderer) ContentType() string {
	return "text/xml"
}

// Render writes the XML document. Options are ignored: the XML view reflects
// the stored definition, not submission state.
func (Renderer) Render(ctx context.Context, structure model.Structure, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(Generate(structure)), nil
}

// Generate builds the XML document for structure. Fields of unknown kind are
// skipped; an empty structure still yields an empty <form> element.
func Generate(structure model.Structure) string {
	var b strings.Builder
	b.WriteString(Declaration)
	b.WriteString("\n<form>\n")

	for _, field := range structure.Known() {
		writeField(&b, field)
	}

	b.WriteString("</form>\n")
	return b.String()
}

func writeField(b *strings.Builder, field model.Field) {
	switch field.Kind {
	case model.KindText, model.KindTextarea:
		fmt.Fprintf(b, "<field type=\"%s\" required=\"%t\">%s</field>\n",
			field.Kind, field.Required, EncodeText(field.Label))
	case model.KindCheckbox:
		fmt.Fprintf(b, "<field type=\"checkbox\" required=\"%t\" title=\"%s\">\n",
			field.Required, EncodeText(field.Title))
		writeOptions(b, "checkbox", field.Options)
		b.WriteString("</field>\n")
	case model.KindRadio:
		fmt.Fprintf(b, "<field type=\"radio\" required=\"%t\" title=\"%s\">\n",
			field.Required, EncodeText(field.Title))
		writeOptions(b, "radio", field.Options)
		b.WriteString("</field>\n")
	case model.KindSelect:
		fmt.Fprintf(b, "<field type=\"select\" required=\"%t\" multiple=\"%t\" title=\"%s\">\n",
			field.Required, field.Multiple, EncodeText(field.Title))
		writeOptions(b, "option", field.Options)
		b.WriteString("</field>\n")
	}
}

func writeOptions(b *strings.Builder, element string, options []model.Option) {
	for _, option := range options {
		fmt.Fprintf(b, "<%s checked=\"%t\">%s</%s>\n", element, option.Default, EncodeText(option.Value), element)
	}
}

var angleBrackets = strings.NewReplacer("&lt;", "<", "&gt;", ">")

// EncodeText prepares label text for the XML view. Existing entities are
// decoded first so already-escaped input is not double encoded, the result is
// re-encoded, and finally &lt; and &gt; are turned back into literal angle
// brackets so markup embedded in labels reaches the authoring tool intact.
func EncodeText(value string) string {
	decoded := html.UnescapeString(value)
	encoded := html.EscapeString(decoded)
	return angleBrackets.Replace(encoded)
}
