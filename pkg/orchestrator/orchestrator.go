package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/document"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/htmlform"
	"github.com/goliatone/go-formbuilder/pkg/renderers/jsonform"
	"github.com/goliatone/go-formbuilder/pkg/renderers/openapischema"
	"github.com/goliatone/go-formbuilder/pkg/renderers/xmlform"
)

const defaultRendererName = "html"

// ErrNoInput is returned when a request carries neither a structure, a
// container nor a raw payload.
var ErrNoInput = errors.New("orchestrator: structure, container or raw payload is required")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer applied to fresh structures before
// they are sealed. Structures loaded from containers are never transformed so
// their hash keeps matching.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDocumentOptions forwards options (logger, hasher) to the document
// loader.
func WithDocumentOptions(options ...document.Option) Option {
	return func(o *Orchestrator) {
		o.documentOptions = append(o.documentOptions, options...)
	}
}

// Orchestrator coordinates loading and rendering. It applies defaults (the
// built-in registry, HTML output) while remaining open to dependency
// injection.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	documentOptions []document.Option
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	return o
}

// DefaultRegistry returns a registry holding the html, xml, json and schema
// renderers.
func DefaultRegistry() *render.Registry {
	registry := render.NewRegistry()
	registry.MustRegister(htmlform.New())
	registry.MustRegister(xmlform.New())
	registry.MustRegister(jsonform.New())
	registry.MustRegister(openapischema.New())
	return registry
}

// Registry exposes the registry used for renderer lookups.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Request describes the form to load and how to render it. Exactly one of
// Container, Structure or Raw is used, checked in that order.
type Request struct {
	// Container is a previously persisted form. Its hash is verified before
	// anything is rendered.
	Container *document.Container

	// Structure is an in-memory form definition.
	Structure model.Structure

	// Raw is an authoring payload in JSON or YAML.
	Raw []byte

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request data such as the prior submission or
	// validation errors.
	RenderOptions render.RenderOptions
}

// Output is the rendered form together with the sealed document it came from.
type Output struct {
	Body        []byte
	ContentType string
	Document    *document.Document
}

// Load resolves the request into a sealed document without rendering it.
func (o *Orchestrator) Load(ctx context.Context, req Request) (*document.Document, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch {
	case req.Container != nil:
		result := document.FromContainer(*req.Container, o.documentOptions...)
		if !result.Loaded() {
			return nil, fmt.Errorf("orchestrator: load container: %w", result.Reason)
		}
		return result.Document, nil
	case req.Structure != nil:
		return o.seal(ctx, req.Structure)
	case len(req.Raw) > 0:
		structure, err := model.ParseStructure(req.Raw)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: parse structure: %w", err)
		}
		return o.seal(ctx, structure)
	default:
		return nil, ErrNoInput
	}
}

// Generate loads the request and renders it with the requested renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Output, error) {
	doc, err := o.Load(ctx, req)
	if err != nil {
		return Output{}, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Output{}, err
	}

	body, contentType, err := doc.Render(ctx, renderer, req.RenderOptions)
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: render output: %w", err)
	}

	return Output{Body: body, ContentType: contentType, Document: doc}, nil
}

func (o *Orchestrator) seal(ctx context.Context, structure model.Structure) (*document.Document, error) {
	structure = structure.Clone()
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &structure); err != nil {
			return nil, fmt.Errorf("orchestrator: transform structure: %w", err)
		}
	}
	return document.FromStructure(structure, o.documentOptions...), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
	}
	return renderer, nil
}
