// Package httpform exposes a sealed form over net/http. The form handler
// renders the document on GET and validates posted submissions; the authoring
// handler turns posted structures into containers and verifies stored ones.
package httpform
