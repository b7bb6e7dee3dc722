// Package formbuilder turns form definitions from the drag-and-drop authoring
// tool into sealed documents that can be stored, rendered and used to validate
// submissions. The subpackages hold the pieces; this package re-exports the
// common entry points.
package formbuilder

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/document"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Document is a sealed form: a structure paired with its container.
type Document = document.Document

// Container is the persisted form: the canonical serialization and its hash.
type Container = document.Container

// LoadResult reports whether a container passed its integrity check.
type LoadResult = document.LoadResult

// Structure is the ordered list of field descriptors.
type Structure = model.Structure

// Submission maps element ids to posted values.
type Submission = model.Submission

// RenderOptions carries per-request rendering data such as the prior
// submission and validation errors.
type RenderOptions = render.RenderOptions

// New seals an in-memory structure.
func New(structure Structure, options ...document.Option) *Document {
	return document.FromStructure(structure, options...)
}

// FromContainer verifies and loads a stored container.
func FromContainer(container Container, options ...document.Option) LoadResult {
	return document.FromContainer(container, options...)
}

// Load parses a JSON or YAML authoring payload and seals it.
func Load(raw []byte, options ...document.Option) (*Document, error) {
	return document.Load(raw, options...)
}

// DefaultRegistry returns a registry holding the html, xml, json and schema
// renderers.
func DefaultRegistry() *render.Registry {
	return orchestrator.DefaultRegistry()
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads the request and renders it with the named renderer. It is the
// simplest entry point for callers that just want output bytes.
func Generate(ctx context.Context, req orchestrator.Request, options ...orchestrator.Option) ([]byte, error) {
	out, err := orchestrator.New(options...).Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}
