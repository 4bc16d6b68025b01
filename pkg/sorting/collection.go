package sorting

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

// Orderable is an ordered collection that can be reordered by field names. A
// leading "-" on a name sorts that field descending. OrderBy replaces the
// ordering and returns ErrInvalidField (wrapped) for unknown fields.
type Orderable interface {
	Ordering() []string
	OrderBy(fields ...string) (Orderable, error)
}

// KeyFunc resolves the value of field on row; ok is false for unknown fields.
type KeyFunc[T any] func(row T, field string) (value any, ok bool)

// SliceCollection is an in-memory Orderable over a slice of rows.
type SliceCollection[T any] struct {
	rows     []T
	ordering []string
	key      KeyFunc[T]
	fields   map[string]struct{}
}

var _ Orderable = (*SliceCollection[map[string]any])(nil)

// NewSliceCollection wraps rows. ordering records the ordering the rows are
// already in; it is kept as the primary ordering on subsequent OrderBy calls.
func NewSliceCollection[T any](rows []T, key KeyFunc[T], ordering ...string) *SliceCollection[T] {
	return &SliceCollection[T]{
		rows:     append([]T(nil), rows...),
		ordering: append([]string(nil), ordering...),
		key:      key,
	}
}

// NewMapCollection wraps rows keyed by column name.
func NewMapCollection(rows []map[string]any, ordering ...string) *SliceCollection[map[string]any] {
	return NewSliceCollection(rows, MapKey, ordering...)
}

// MapKey is the KeyFunc for map rows.
func MapKey(row map[string]any, field string) (any, bool) {
	value, ok := row[field]
	return value, ok
}

// WithFields declares the sortable field names. When set, OrderBy validates
// against this set instead of the rows, so unknown fields are rejected even
// when the collection is empty.
func (c *SliceCollection[T]) WithFields(fields ...string) *SliceCollection[T] {
	if c == nil {
		return nil
	}
	out := *c
	out.fields = make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if field = strings.TrimSpace(field); field != "" {
			out.fields[field] = struct{}{}
		}
	}
	return &out
}

func (c *SliceCollection[T]) Rows() []T {
	if c == nil {
		return nil
	}
	return c.rows
}

func (c *SliceCollection[T]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.rows)
}

func (c *SliceCollection[T]) Ordering() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.ordering...)
}

// OrderBy returns a new collection sorted by fields. The receiver is left
// untouched. Fields are validated against the declared field set, else the
// first row, else the zero row for value types such as structs.
func (c *SliceCollection[T]) OrderBy(fields ...string) (Orderable, error) {
	if c == nil {
		return nil, fmt.Errorf("sorting: order nil collection")
	}
	if c.key == nil {
		return nil, fmt.Errorf("sorting: collection has no key func")
	}

	type sortKey struct {
		name string
		desc bool
	}
	keys := make([]sortKey, 0, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field)
		desc := strings.HasPrefix(name, "-")
		name = strings.TrimPrefix(name, "-")
		if name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidField, field)
		}
		if !c.knows(name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidField, name)
		}
		keys = append(keys, sortKey{name: name, desc: desc})
	}

	rows := append([]T(nil), c.rows...)
	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			left, _ := c.key(rows[i], k.name)
			right, _ := c.key(rows[j], k.name)
			cmp := compareValues(left, right)
			if cmp == 0 {
				continue
			}
			if k.desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})

	return &SliceCollection[T]{
		rows:     rows,
		ordering: append([]string(nil), fields...),
		key:      c.key,
		fields:   c.fields,
	}, nil
}

func (c *SliceCollection[T]) knows(field string) bool {
	if c.fields != nil {
		_, ok := c.fields[field]
		return ok
	}
	if len(c.rows) > 0 {
		_, ok := c.key(c.rows[0], field)
		return ok
	}
	var zero T
	if !zeroRowUsable(reflect.TypeOf(&zero).Elem()) {
		// Map or pointer rows carry no field information when empty.
		return true
	}
	_, ok := c.key(zero, field)
	return ok
}

// zeroRowUsable reports whether the zero value of t is a usable row.
func zeroRowUsable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Func, reflect.Chan:
		return false
	}
	return true
}

func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return compareOrdered(af, bf)
		}
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			return compareBool(av, bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func compareOrdered(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
