// Package model defines the typed form structure shared by the loader,
// renderers and validator. A Structure is an ordered list of Field
// descriptors authored with the jQuery form builder; each Field carries one of
// five known kinds (text input, textarea, checkbox group, radio group, select)
// and the kind decides which attributes are meaningful. Descriptors are parsed
// leniently at ingestion: booleans arrive as "true"/"false" strings, option
// lists arrive as arrays or index-keyed objects, and anything absent or
// mismatched decodes to its zero value instead of failing the whole structure.
//
// Field ids used by HTML controls and submissions are derived from labels via
// ElementID and GroupElementID so renderers and the validator agree on names.
package model
