// Package template defines the renderer-agnostic template seam the page tags
// and form helpers render through. The gotemplate subpackage provides the
// pongo2-backed implementation.
package template
