// Package validation checks a posted submission against a form structure's
// required-field rules and collects the accepted values.
package validation

import (
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

const (
	requiredFieldMessage    = "Please complete the %s field."
	requiredCheckboxMessage = "Please check at least one %s choice."
)

// Issue is a single failed rule. Field carries the element id the message
// refers to so callers can attach it next to the control.
type Issue struct {
	Field   string `json:"field"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

// Result captures the outcome of validating one submission.
type Result struct {
	Success bool              `json:"success"`
	Values  map[string]string `json:"values"`
	// Missing is the absent marker: element ids that were not posted at all,
	// including unchecked checkbox options. Values holds only posted keys, so
	// Values plus Missing covers every field and option in the structure.
	Missing []string `json:"missing,omitempty"`
	Issues  []Issue  `json:"errors,omitempty"`
}

// Messages returns the issue messages in field order.
func (r Result) Messages() []string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		out = append(out, issue.Message)
	}
	return out
}

// Errors returns each message wrapped in a list item, ready to be placed in
// a <ul>.
func (r Result) Errors() []string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		out = append(out, "<li>"+issue.Message+"</li>")
	}
	return out
}

// ErrorHTML renders Errors one per line.
func (r Result) ErrorHTML() string {
	errs := r.Errors()
	if len(errs) == 0 {
		return ""
	}
	return strings.Join(errs, "\n") + "\n"
}

// Option configures Validate.
type Option func(*config)

type config struct {
	translator render.Translator
	locale     string
}

// WithTranslator localises issue messages. The translator receives the
// render.MessageRequiredField or render.MessageRequiredCheckbox key with the
// field label as its only argument.
func WithTranslator(t render.Translator, locale string) Option {
	return func(cfg *config) {
		cfg.translator = t
		cfg.locale = locale
	}
}

// Validate walks the known fields in order. Failures are collected, never
// returned as errors, and processing continues with the remaining fields.
func Validate(structure model.Structure, submission model.Submission, options ...Option) Result {
	var cfg config
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	v := validator{
		cfg:        cfg,
		submission: submission,
		result:     Result{Values: make(map[string]string)},
	}
	for _, field := range structure.Known() {
		switch field.Kind {
		case model.KindText, model.KindTextarea:
			v.single(field.Label, field)
		case model.KindRadio, model.KindSelect:
			v.single(field.Title, field)
		case model.KindCheckbox:
			v.checkboxGroup(field)
		}
	}

	v.result.Success = len(v.result.Issues) == 0
	return v.result
}

type validator struct {
	cfg        config
	submission model.Submission
	result     Result
}

func (v *validator) single(name string, field model.Field) {
	id := model.ElementID(name)
	value, ok := v.submission.Lookup(id)
	if field.Required && model.IsEmpty(value) {
		v.fail(id, name, render.MessageRequiredField, requiredFieldMessage)
		return
	}
	if !ok {
		v.result.Missing = append(v.result.Missing, id)
		return
	}
	v.result.Values[id] = value
}

// Options are stored under their own slug, so two groups sharing an option
// caption write to the same key and the later group wins.
func (v *validator) checkboxGroup(field model.Field) {
	anyChecked := false
	for _, option := range field.Options {
		key := model.ElementID(option.Value)
		value, ok := v.submission.Lookup(model.GroupElementID(field.Title, option.Value))
		if !ok {
			v.result.Missing = append(v.result.Missing, key)
			continue
		}
		v.result.Values[key] = value
		if !model.IsEmpty(value) {
			anyChecked = true
		}
	}
	if field.Required && !anyChecked {
		v.fail(model.ElementID(field.Title), field.Title, render.MessageRequiredCheckbox, requiredCheckboxMessage)
	}
}

func (v *validator) fail(id, label, key, format string) {
	v.result.Issues = append(v.result.Issues, Issue{
		Field:   id,
		Label:   label,
		Message: render.Translate(v.cfg.translator, v.cfg.locale, key, format, label),
	})
}
