package render

import (
	"strings"
)

// MergeFormErrors combines the messages shown above a re-rendered form.
// Blank messages are dropped and a message repeated by the validator and the
// caller is shown once, at its first position.
func MergeFormErrors(existing []string, extras ...string) []string {
	var out []string
	seen := make(map[string]bool, len(existing)+len(extras))
	add := func(message string) {
		message = strings.TrimSpace(message)
		if message == "" || seen[message] {
			return
		}
		seen[message] = true
		out = append(out, message)
	}

	for _, message := range existing {
		add(message)
	}
	for _, message := range extras {
		add(message)
	}
	return out
}

// ErrorListHTML renders messages as the <ul class="frm-errors"> block placed
// above the form fields, one <li> per line. Messages are written as given;
// they come from the validator and may carry authored label markup.
func ErrorListHTML(messages []string) string {
	merged := MergeFormErrors(messages)
	if len(merged) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<ul class=\"frm-errors\">\n")
	for _, message := range merged {
		b.WriteString("<li>")
		b.WriteString(message)
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
	return b.String()
}
