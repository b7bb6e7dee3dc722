// Package openapischema describes a form's submission as an OpenAPI 3
// document: one POST operation whose url-encoded request body lists every
// element id the rendered form posts.
package openapischema

import (
	"context"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

const (
	// Version is the OpenAPI version written into generated documents.
	Version = "3.0.3"

	kindExtension  = "x-formbuilder-kind"
	groupExtension = "x-formbuilder-group"

	formContentType = "application/x-www-form-urlencoded"
)

// Renderer implements render.Renderer for the OpenAPI export.
type Renderer struct {
	title   string
	version string
}

var _ render.Renderer = (*Renderer)(nil)

// Option configures the renderer.
type Option func(*Renderer)

// WithInfo sets the info.title and info.version of generated documents.
func WithInfo(title, version string) Option {
	return func(r *Renderer) {
		if strings.TrimSpace(title) != "" {
			r.title = title
		}
		if strings.TrimSpace(version) != "" {
			r.version = version
		}
	}
}

// New constructs the OpenAPI renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{title: "Form submission", version: "1.0.0"}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "schema"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render writes the OpenAPI document for the form posting to the action (or
// request path) in options.
func (r *Renderer) Render(ctx context.Context, structure model.Structure, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := r.Document(structure, options.FormAction())
	out, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("openapischema: marshal document: %w", err)
	}
	return out, nil
}

// Document wraps Schema in a document with a single POST operation at path.
// Paths that are not absolute fall back to "/".
func (r *Renderer) Document(structure model.Structure, path string) *openapi3.T {
	if !strings.HasPrefix(path, "/") {
		path = "/"
	}

	body := openapi3.NewRequestBody().
		WithRequired(true).
		WithContent(openapi3.Content{
			formContentType: openapi3.NewMediaType().WithSchema(Schema(structure)),
		})

	op := openapi3.NewOperation()
	op.OperationID = "submitForm"
	op.Summary = "Submit the form"
	op.RequestBody = &openapi3.RequestBodyRef{Value: body}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Submission accepted")}),
		openapi3.WithStatus(422, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Required fields are missing")}),
	)

	return &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:   r.title,
			Version: r.version,
		},
		Paths: openapi3.NewPaths(openapi3.WithPath(path, &openapi3.PathItem{Post: op})),
	}
}

// Schema returns the object schema of a submission. Required text, radio and
// select fields must be non-empty. Each required checkbox group adds an allOf
// entry holding an anyOf over its option ids.
func Schema(structure model.Structure) *openapi3.Schema {
	root := openapi3.NewObjectSchema()

	for _, field := range structure.Known() {
		switch field.Kind {
		case model.KindText, model.KindTextarea:
			addSingle(root, field, field.Label, openapi3.NewStringSchema())
		case model.KindRadio:
			addSingle(root, field, field.Title, enumSchema(field.Options))
		case model.KindSelect:
			property := enumSchema(field.Options)
			if field.Multiple {
				property = openapi3.NewArraySchema().WithItems(property)
			}
			addSingle(root, field, field.Title, property)
		case model.KindCheckbox:
			addCheckboxGroup(root, field)
		}
	}

	return root
}

func addSingle(root *openapi3.Schema, field model.Field, name string, property *openapi3.Schema) {
	id := model.ElementID(name)
	property.Title = name
	property.Extensions = map[string]any{kindExtension: string(field.Kind)}
	if field.Required {
		if property.Type.Is(openapi3.TypeString) {
			property.WithMinLength(1)
		} else {
			property.WithMinItems(1)
		}
		root.Required = append(root.Required, id)
	}
	root.WithProperty(id, property)
}

func addCheckboxGroup(root *openapi3.Schema, field model.Field) {
	group := model.ElementID(field.Title)
	var anyOf openapi3.SchemaRefs

	for _, option := range field.Options {
		id := model.GroupElementID(field.Title, option.Value)
		property := openapi3.NewStringSchema().WithEnum(option.Value)
		property.Title = option.Value
		property.Extensions = map[string]any{
			kindExtension:  string(field.Kind),
			groupExtension: group,
		}
		root.WithProperty(id, property)

		if field.Required {
			clause := openapi3.NewObjectSchema()
			clause.Required = []string{id}
			anyOf = append(anyOf, openapi3.NewSchemaRef("", clause))
		}
	}

	if len(anyOf) > 0 {
		atLeastOne := openapi3.NewSchema()
		atLeastOne.AnyOf = anyOf
		root.AllOf = append(root.AllOf, openapi3.NewSchemaRef("", atLeastOne))
	}
}

func enumSchema(options []model.Option) *openapi3.Schema {
	schema := openapi3.NewStringSchema()
	if len(options) == 0 {
		return schema
	}
	values := make([]any, 0, len(options))
	for _, option := range options {
		values = append(values, option.Value)
	}
	return schema.WithEnum(values...)
}
