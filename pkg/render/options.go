package render

// RenderOptions carry per-request data layout helpers use to fill in a form
// without mutating its definition.
type RenderOptions struct {
	// Values pre-populates controls keyed by field name.
	Values map[string]any
	// Errors surfaces server-side validation feedback keyed by field path.
	// Paths are resolved with MapErrorPayload; anything that does not match a
	// field is shown as a form-level error.
	Errors map[string][]string
}
