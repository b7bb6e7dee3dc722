// Package orchestrator wires the load → seal → render pipeline behind a
// single entry point: callers hand over a structure, a stored container or a
// raw authoring payload and get the output of a named renderer back.
package orchestrator
