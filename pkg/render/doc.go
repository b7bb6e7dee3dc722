// Package render holds the contracts shared by every form renderer: the
// Renderer interface, a name-keyed Registry, per-request RenderOptions and the
// small helpers (hidden fields, error lists, translation) that renderers and
// the HTTP layer reuse.
package render
