// Package model defines the form definitions consumed by the uniform layout
// helpers. Types live in internal/model and are re-exported here so callers
// can build forms by hand or load them from an OpenAPI operation.
package model
