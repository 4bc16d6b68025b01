// Package sorting turns the sort and direction query parameters of a request
// into table header links and an ordering for a collection.
//
// Anchor builds the header link for a column: the active column flips its
// direction and shows an arrow, every other column links to a descending
// sort. AutoSort intersects the requested fields with an allow-list, falls
// back to a default ordering and reorders an Orderable collection. Unknown
// fields are either ignored or reported as ErrNotFound depending on
// Options.InvalidFieldRaises404.
package sorting
