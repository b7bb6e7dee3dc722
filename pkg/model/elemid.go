package model

import "strings"

// ElementID converts a label into the identifier used for HTML id/name
// attributes and submission keys: spaces become underscores, anything outside
// [A-Za-z0-9_] is dropped and the result is lowercased.
func ElementID(label string) string {
	replaced := strings.ReplaceAll(label, " ", "_")
	stripped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return -1
		}
	}, replaced)
	return strings.ToLower(stripped)
}

// GroupElementID builds the compound id of an option inside a group, for
// example "colours-dark_red" for group "Colours" and option "Dark Red".
func GroupElementID(group, option string) string {
	return ElementID(group) + "-" + ElementID(option)
}
