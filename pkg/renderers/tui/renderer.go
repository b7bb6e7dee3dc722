package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

const (
	defaultMaxAttempts  = 3
	multiValueSeparator = ","
)

// Renderer implements render.Renderer for terminal-driven sessions: it asks
// for every field in turn and serializes the collected submission.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	maxAttempts       int
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		maxAttempts:  defaultMaxAttempts,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil, nil)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for the structure and returns the serialized submission.
func (r *Renderer) Render(ctx context.Context, structure model.Structure, opts render.RenderOptions) ([]byte, error) {
	submission, err := r.Fill(ctx, structure, opts)
	if err != nil {
		return nil, err
	}

	if r.submitTransformer != nil {
		submission, err = r.submitTransformer(submission)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	return r.serialize(submission)
}

// Fill asks for every known field, validates the answers and asks again for
// the fields that failed until they pass or the attempts run out. The
// submission is keyed by element id exactly as the HTML form would post it.
func (r *Renderer) Fill(ctx context.Context, structure model.Structure, opts render.RenderOptions) (model.Submission, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	state := NewState(opts.Submission)
	fields := structure.Known()
	pending := fields

	if hasRequired(fields) {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+"Fields marked * are required."); err != nil {
			return nil, err
		}
	}
	for _, msg := range render.MergeFormErrors(opts.Errors) {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
			return nil, err
		}
	}

	for attempt := 1; ; attempt++ {
		for _, field := range pending {
			if err := r.promptField(ctx, field, state); err != nil {
				return nil, err
			}
		}

		result := validation.Validate(structure, state.Values(), validation.WithTranslator(opts.Translator, opts.Locale))
		if result.Success {
			return state.Values(), nil
		}
		if attempt >= r.maxAttempts {
			return state.Values(), fmt.Errorf("%w: %s", ErrIncomplete, strings.Join(result.Messages(), " "))
		}

		state.SetIssues(result.Issues)
		for _, msg := range result.Messages() {
			if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
				return nil, err
			}
		}
		pending = failedFields(fields, state)
	}
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, state *State) error {
	switch field.Kind {
	case model.KindText:
		return r.promptText(ctx, field, state)
	case model.KindTextarea:
		return r.promptTextArea(ctx, field, state)
	case model.KindRadio:
		return r.promptChoice(ctx, field, state)
	case model.KindSelect:
		if field.Multiple {
			return r.promptMultiSelect(ctx, field, state)
		}
		return r.promptChoice(ctx, field, state)
	case model.KindCheckbox:
		return r.promptCheckboxGroup(ctx, field, state)
	}
	return nil
}

func (r *Renderer) promptText(ctx context.Context, field model.Field, state *State) error {
	id := field.ID()
	current, _ := state.Value(id)
	value, err := r.driver.Input(ctx, InputConfig{
		Message:   displayLabel(field),
		Default:   current,
		Help:      displayHelp(field, state),
		Validator: requiredValidator(field),
	})
	if err != nil {
		return err
	}
	state.Set(id, value)
	return nil
}

func (r *Renderer) promptTextArea(ctx context.Context, field model.Field, state *State) error {
	id := field.ID()
	current, _ := state.Value(id)
	value, err := r.driver.TextArea(ctx, TextAreaConfig{
		Message:   displayLabel(field),
		Default:   current,
		Help:      displayHelp(field, state),
		Validator: requiredValidator(field),
	})
	if err != nil {
		return err
	}
	state.Set(id, value)
	return nil
}

// Radios and single selects post one value under the group id.
func (r *Renderer) promptChoice(ctx context.Context, field model.Field, state *State) error {
	group := field.ID()
	options := optionValues(field.Options)
	if len(options) == 0 {
		return nil
	}

	defaultIndex := firstDefault(field.Options)
	if current, ok := state.Value(group); ok {
		if idx := indexOf(options, current); idx >= 0 {
			defaultIndex = idx
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(field),
		Options:      options,
		DefaultIndex: defaultIndex,
		Help:         displayHelp(field, state),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		state.Delete(group)
		return nil
	}
	state.Set(group, options[idx])
	return nil
}

// A multiple select still posts a single key; the chosen values are joined
// with commas. Options are matched whole against the joined value, so an
// option containing a comma still round-trips.
func (r *Renderer) promptMultiSelect(ctx context.Context, field model.Field, state *State) error {
	group := field.ID()
	options := optionValues(field.Options)
	if len(options) == 0 {
		return nil
	}

	var defaults []int
	if current, ok := state.Value(group); ok {
		defaults = joinedIndices(options, current)
	} else if !state.Prefilled() {
		defaults = defaultIndices(field.Options)
	}

	indices, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  displayLabel(field),
		Options:  options,
		Defaults: defaults,
		Help:     displayHelp(field, state),
	})
	if err != nil {
		return err
	}
	chosen := defaultsFromIndices(options, indices)
	if len(chosen) == 0 {
		state.Delete(group)
		return nil
	}
	state.Set(group, strings.Join(chosen, multiValueSeparator))
	return nil
}

// Each checked option posts its own compound id, unchecked ones post nothing.
func (r *Renderer) promptCheckboxGroup(ctx context.Context, field model.Field, state *State) error {
	options := optionValues(field.Options)
	if len(options) == 0 {
		return nil
	}

	var defaults []int
	for i, option := range field.Options {
		id := model.GroupElementID(field.Title, option.Value)
		if state.Prefilled() {
			if value, _ := state.Value(id); !model.IsEmpty(value) {
				defaults = append(defaults, i)
			}
			continue
		}
		if option.Default {
			defaults = append(defaults, i)
		}
	}

	indices, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  displayLabel(field),
		Options:  options,
		Defaults: defaults,
		Help:     displayHelp(field, state),
	})
	if err != nil {
		return err
	}

	selected := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		selected[idx] = struct{}{}
	}
	for i, option := range field.Options {
		id := model.GroupElementID(field.Title, option.Value)
		if _, ok := selected[i]; ok {
			state.Set(id, option.Value)
			continue
		}
		state.Delete(id)
	}
	return nil
}

func (r *Renderer) serialize(values model.Submission) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for key, value := range values {
			form.Set(key, value)
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		if values == nil {
			values = model.Submission{}
		}
		return json.Marshal(values)
	}
}

func failedFields(fields []model.Field, state *State) []model.Field {
	var out []model.Field
	for _, field := range fields {
		if len(state.ErrorsFor(field.ID())) > 0 {
			out = append(out, field)
		}
	}
	return out
}

func hasRequired(fields []model.Field) bool {
	for _, field := range fields {
		if field.Required {
			return true
		}
	}
	return false
}

func displayLabel(field model.Field) string {
	label := field.Name()
	if field.Required {
		label += " *"
	}
	return label
}

func displayHelp(field model.Field, state *State) string {
	if errs := state.ErrorsFor(field.ID()); len(errs) > 0 {
		return strings.Join(errs, " ")
	}
	if field.Kind == model.KindCheckbox && field.Required {
		return "Select at least one option."
	}
	return ""
}

func requiredValidator(field model.Field) func(string) error {
	if !field.Required {
		return nil
	}
	name := field.Name()
	return func(value string) error {
		if model.IsEmpty(strings.TrimSpace(value)) {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func optionValues(options []model.Option) []string {
	out := make([]string, 0, len(options))
	for _, option := range options {
		out = append(out, option.Value)
	}
	return out
}

func firstDefault(options []model.Option) int {
	for i, option := range options {
		if option.Default {
			return i
		}
	}
	return 0
}

func defaultIndices(options []model.Option) []int {
	var out []int
	for i, option := range options {
		if option.Default {
			out = append(out, i)
		}
	}
	return out
}

func prettyPrint(values model.Submission) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, values[key])
	}
	return b.String()
}

// joinedIndices returns the positions of the options present in a comma
// joined answer.
func joinedIndices(options []string, joined string) []int {
	wrapped := multiValueSeparator + joined + multiValueSeparator
	var out []int
	for i, option := range options {
		if strings.Contains(wrapped, multiValueSeparator+option+multiValueSeparator) {
			out = append(out, i)
		}
	}
	return out
}
