package tui

import (
	"sort"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// State tracks the submission being collected and the validation messages
// attached to each element id. Higher-level orchestration lives in the
// renderer.
type State struct {
	values    model.Submission
	errors    map[string][]string
	prefilled bool
}

// NewState seeds the state with a prior submission. A nil prefill means the
// form is filled for the first time and option defaults apply.
func NewState(prefill model.Submission) *State {
	s := &State{
		values:    make(model.Submission, len(prefill)),
		prefilled: prefill != nil,
	}
	for key, value := range prefill {
		s.values[key] = value
	}
	return s
}

// Prefilled reports whether the state started from a prior submission.
func (s *State) Prefilled() bool {
	return s != nil && s.prefilled
}

// Values returns a copy of the collected submission.
func (s *State) Values() model.Submission {
	if s == nil {
		return nil
	}
	out := make(model.Submission, len(s.values))
	for key, value := range s.values {
		out[key] = value
	}
	return out
}

// Value returns the collected value for id.
func (s *State) Value(id string) (string, bool) {
	if s == nil {
		return "", false
	}
	return s.values.Lookup(id)
}

// Set records value under id.
func (s *State) Set(id, value string) {
	s.values[id] = value
}

// Delete removes id, mirroring a control the browser would not post.
func (s *State) Delete(id string) {
	delete(s.values, id)
}

// SetIssues replaces the per-field messages with those in issues.
func (s *State) SetIssues(issues []validation.Issue) {
	s.errors = make(map[string][]string, len(issues))
	for _, issue := range issues {
		s.errors[issue.Field] = append(s.errors[issue.Field], issue.Message)
	}
}

// ErrorsFor returns the messages attached to an element id.
func (s *State) ErrorsFor(id string) []string {
	if s == nil || len(s.errors) == 0 {
		return nil
	}
	return s.errors[id]
}

// FailedIDs returns the element ids that currently carry messages, sorted.
func (s *State) FailedIDs() []string {
	if s == nil || len(s.errors) == 0 {
		return nil
	}
	ids := make([]string, 0, len(s.errors))
	for id := range s.errors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
