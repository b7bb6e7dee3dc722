// Package document loads a form structure from authoring input or from a
// persisted container, seals it with an integrity hash, and exposes the
// rendered views and submission validation for that structure.
package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/htmlform"
	"github.com/goliatone/go-formbuilder/pkg/renderers/jsonform"
	"github.com/goliatone/go-formbuilder/pkg/renderers/xmlform"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

var (
	// ErrIntegrity marks a container whose hash does not match its content.
	ErrIntegrity = errors.New("document: container integrity check failed")
	// ErrDecode marks a container or payload that could not be decoded.
	ErrDecode = errors.New("document: decode failed")
	// ErrNilRenderer is returned by Render when no renderer is supplied.
	ErrNilRenderer = errors.New("document: renderer is required")
)

// Status tags the outcome of loading a container.
type Status int

const (
	// StatusInvalid is the zero value so an unset result is never mistaken
	// for a loaded one.
	StatusInvalid Status = iota
	StatusLoaded
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	default:
		return "invalid"
	}
}

// LoadResult is returned by FromContainer. Document is nil unless Status is
// StatusLoaded, and Reason explains an invalid result.
type LoadResult struct {
	Status   Status
	Document *Document
	Reason   error
}

// Loaded reports whether the container was accepted.
func (r LoadResult) Loaded() bool {
	return r.Status == StatusLoaded && r.Document != nil
}

// Document is an immutable, sealed form structure.
type Document struct {
	structure model.Structure
	container Container
}

// FromStructure serializes structure, hashes it and builds a fresh container.
// The structure is copied; later changes by the caller do not leak in.
func FromStructure(structure model.Structure, options ...Option) *Document {
	cfg := newConfig(options)
	clone := structure.Clone()

	serialized, err := Serialize(clone)
	if err != nil {
		// Unreachable: the wire encoding only holds strings and lists.
		raw, _ := json.Marshal(clone)
		serialized = string(raw)
	}

	return &Document{
		structure: clone,
		container: Container{
			FormStructure: serialized,
			FormHash:      cfg.hasher([]byte(serialized)),
		},
	}
}

// FromContainer verifies the container's hash and decodes its structure.
// Tampered or undecodable containers yield StatusInvalid, never a partially
// trusted document.
func FromContainer(container Container, options ...Option) LoadResult {
	cfg := newConfig(options)

	if cfg.hasher([]byte(container.FormStructure)) != container.FormHash {
		return cfg.reject(ErrIntegrity, container)
	}

	structure, err := Deserialize(container.FormStructure)
	if err != nil {
		return cfg.reject(err, container)
	}

	return LoadResult{
		Status: StatusLoaded,
		Document: &Document{
			structure: structure,
			container: container,
		},
	}
}

// LoadContainerJSON decodes a JSON encoded Container and loads it.
func LoadContainerJSON(raw []byte, options ...Option) LoadResult {
	var container Container
	if err := json.Unmarshal(raw, &container); err != nil {
		cfg := newConfig(options)
		return cfg.reject(fmt.Errorf("%w: container: %v", ErrDecode, err), Container{})
	}
	return FromContainer(container, options...)
}

// Load parses an authoring payload (JSON or YAML, see model.ParseStructure)
// and seals it.
func Load(raw []byte, options ...Option) (*Document, error) {
	structure, err := model.ParseStructure(raw)
	if err != nil {
		return nil, fmt.Errorf("document: load: %w", err)
	}
	return FromStructure(structure, options...), nil
}

func (cfg config) reject(reason error, container Container) LoadResult {
	if cfg.logger != nil {
		cfg.logger.Warn("form container rejected",
			"reason", reason,
			"hash", container.FormHash,
			"bytes", len(container.FormStructure),
		)
	}
	return LoadResult{Status: StatusInvalid, Reason: reason}
}

// Structure returns a copy of the loaded structure. A nil document has none.
func (d *Document) Structure() model.Structure {
	if d == nil {
		return nil
	}
	return d.structure.Clone()
}

// Container returns the persisted form of the document.
func (d *Document) Container() Container {
	if d == nil {
		return Container{}
	}
	return d.container
}

// Hash returns the container's integrity hash.
func (d *Document) Hash() string {
	return d.Container().FormHash
}

// XML renders the document's XML view.
func (d *Document) XML() string {
	if d == nil {
		return ""
	}
	return xmlform.Generate(d.structure)
}

// JSON renders the document's JSON view.
func (d *Document) JSON() string {
	if d == nil {
		return ""
	}
	out, err := jsonform.Marshal(d.structure)
	if err != nil {
		return ""
	}
	return string(out)
}

// HTML renders the fill-in form with the default HTML renderer.
func (d *Document) HTML(options render.RenderOptions) string {
	if d == nil {
		return ""
	}
	return htmlform.New().Generate(d.structure, options)
}

// Validate checks submission against the document's structure. A nil
// document yields an unsuccessful, empty result.
func (d *Document) Validate(submission model.Submission, options ...validation.Option) validation.Result {
	if d == nil {
		return validation.Result{}
	}
	return validation.Validate(d.structure, submission, options...)
}

// Render runs r over the document and returns the output together with the
// content type the caller should send. A nil document produces no output.
func (d *Document) Render(ctx context.Context, r render.Renderer, options render.RenderOptions) ([]byte, string, error) {
	if r == nil {
		return nil, "", ErrNilRenderer
	}
	if d == nil {
		return nil, r.ContentType(), nil
	}
	out, err := r.Render(ctx, d.structure, options)
	if err != nil {
		return nil, "", fmt.Errorf("document: render %s: %w", r.Name(), err)
	}
	return out, r.ContentType(), nil
}
