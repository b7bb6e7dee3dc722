package model

import "net/url"

// Submission holds posted form values keyed by element id. A nil Submission
// means nothing has been posted yet, which lets renderers fall back to option
// defaults on first display.
type Submission map[string]string

// SubmissionFromValues flattens url.Values into a Submission. When a key is
// repeated the last value wins.
func SubmissionFromValues(values url.Values) Submission {
	if values == nil {
		return nil
	}
	out := make(Submission, len(values))
	for key, list := range values {
		if len(list) == 0 {
			out[key] = ""
			continue
		}
		out[key] = list[len(list)-1]
	}
	return out
}

// Lookup returns the value stored under id and whether the key was posted.
func (s Submission) Lookup(id string) (string, bool) {
	if s == nil {
		return "", false
	}
	value, ok := s[id]
	return value, ok
}

// Value returns the value stored under id or the empty string.
func (s Submission) Value(id string) string {
	value, _ := s.Lookup(id)
	return value
}

// Filled reports whether a non-empty value was posted for id.
func (s Submission) Filled(id string) bool {
	return !IsEmpty(s.Value(id))
}

// IsEmpty reports whether a posted value counts as no answer. Both the empty
// string and "0" do, which is what the authoring tool's processor assumes.
func IsEmpty(value string) bool {
	return value == "" || value == "0"
}
