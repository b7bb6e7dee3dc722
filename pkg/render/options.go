package render

import "github.com/goliatone/go-formbuilder/pkg/model"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the structure.
type RenderOptions struct {
	// Action sets the form's action attribute. When empty, RequestPath is used
	// so the form posts back to the page that rendered it.
	Action string
	// RequestPath is the path of the current request, supplied by the HTTP
	// layer.
	RequestPath string
	// Submission re-populates controls with previously posted values. A nil
	// submission means the form is shown for the first time and option
	// defaults apply.
	Submission model.Submission
	// Errors are form-level messages rendered above the fields, typically the
	// outcome of a failed validation.
	Errors []string
	// Hidden adds hidden inputs (CSRF tokens, versions) to the form.
	Hidden map[string]string
	// Locale and Translator localise fixed strings such as the submit label.
	Locale     string
	Translator Translator
}

// FormAction resolves the action attribute for the form element.
func (o RenderOptions) FormAction() string {
	if o.Action != "" {
		return o.Action
	}
	return o.RequestPath
}
