// Package uniform lays out forms with the uni-form markup conventions: a
// div-based field layout, an optional surrounding form tag configured by a
// FormHelper, and auxiliary submit/reset/hidden/button inputs each rendered
// from its own template.
package uniform
