package tui

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// OutputFormat names the encoding of the submission the renderer returns.
type OutputFormat string

const (
	OutputFormatJSON           OutputFormat = "json"   // application/json
	OutputFormatFormURLEncoded OutputFormat = "form"   // application/x-www-form-urlencoded
	OutputFormatPrettyText     OutputFormat = "pretty" // one name=value per line
)

// ParseOutputFormat resolves a user supplied format name. The empty string
// selects OutputFormatJSON.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(strings.TrimSpace(name))); format {
	case "":
		return OutputFormatJSON, nil
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return format, nil
	default:
		return "", fmt.Errorf("tui: unknown output format %q", name)
	}
}

// Theme holds the prefixes put in front of notices printed between prompts.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// SubmitTransformer rewrites the collected answers once validation passed.
type SubmitTransformer func(model.Submission) (model.Submission, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver swaps the survey backed driver, mostly for tests.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithMaxAttempts bounds how many times fields that failed validation are
// asked again. Values below one are ignored.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithSubmitTransformer installs fn; a nil fn removes it.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
