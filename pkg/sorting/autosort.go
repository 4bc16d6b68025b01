package sorting

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// OrderFields computes the ordering requested by state.
//
// When accepted is non-empty and none of the requested fields (ignoring a
// leading "-") is accepted, defaultOrdering is used, sorted descending. An
// empty accepted list only falls back to the default when nothing was
// requested. Otherwise the direction comes from the state (descending when
// unset). Requested fields outside the allow-list are dropped; fields of the
// default ordering are always kept.
func OrderFields(state State, accepted []string, defaultOrdering string) []string {
	requested := SplitFields(state.Sort)
	allowed := SplitFieldSet(accepted)

	prefix := state.Direction.Prefix()
	usingDefault := false
	if strings.TrimSpace(defaultOrdering) != "" {
		switch {
		case len(allowed) == 0 && len(requested) == 0:
			usingDefault = true
		case len(allowed) > 0 && !intersects(requested, allowed):
			usingDefault = true
		}
	}
	if usingDefault {
		requested = SplitFields(defaultOrdering)
		prefix = "-"
	}

	out := make([]string, 0, len(requested))
	for _, field := range requested {
		if !usingDefault && !permitted(field, allowed) {
			continue
		}
		if prefix == "-" && strings.HasPrefix(field, "-") {
			out = append(out, field[1:])
			continue
		}
		out = append(out, prefix+field)
	}
	return out
}

// AutoSort orders collection by the fields the request asks for, restricted
// to accepted, after the collection's own ordering.
//
// An unknown field makes the collection's OrderBy fail with ErrInvalidField.
// In strict mode that is reported as ErrNotFound inside a 404 StatusError;
// otherwise the original collection is returned unchanged.
func AutoSort(r *http.Request, collection Orderable, accepted []string, defaultOrdering string, fns ...OptionFn) (Orderable, error) {
	opts := NewOptions(fns...)
	return autoSort(stateFromRequest(r, opts), collection, accepted, defaultOrdering, opts)
}

// AutoSortState is AutoSort over an explicit state.
func AutoSortState(state State, collection Orderable, accepted []string, defaultOrdering string, fns ...OptionFn) (Orderable, error) {
	return autoSort(state, collection, accepted, defaultOrdering, NewOptions(fns...))
}

func autoSort(state State, collection Orderable, accepted []string, defaultOrdering string, opts Options) (Orderable, error) {
	if collection == nil {
		return nil, errors.New("sorting: collection is nil")
	}

	fields := OrderFields(state, accepted, defaultOrdering)
	if len(fields) == 0 {
		return collection, nil
	}
	ordering := append(collection.Ordering(), fields...)

	sorted, err := collection.OrderBy(ordering...)
	if err == nil {
		return sorted, nil
	}
	if !errors.Is(err, ErrInvalidField) {
		return nil, fmt.Errorf("sorting: order collection: %w", err)
	}
	if opts.InvalidFieldRaises404 {
		return nil, StatusError{
			Code: http.StatusNotFound,
			Err:  fmt.Errorf("%w: %v", ErrNotFound, err),
		}
	}
	opts.Logger.Debug("ignoring invalid sort field",
		zap.Strings("ordering", ordering),
		zap.Error(err),
	)
	return collection, nil
}

// SplitFieldSet flattens accepted lists that may themselves hold comma
// separated names.
func SplitFieldSet(lists []string) []string {
	var out []string
	for _, list := range lists {
		out = append(out, SplitFields(list)...)
	}
	return out
}

func rawField(field string) string {
	return strings.TrimPrefix(field, "-")
}

func intersects(requested, accepted []string) bool {
	set := make(map[string]struct{}, len(accepted))
	for _, field := range accepted {
		set[rawField(field)] = struct{}{}
	}
	for _, field := range requested {
		if _, ok := set[rawField(field)]; ok {
			return true
		}
	}
	return false
}

func permitted(field string, accepted []string) bool {
	if len(accepted) == 0 {
		return true
	}
	for _, candidate := range accepted {
		if candidate == field {
			return true
		}
		if strings.HasPrefix(field, "-") && candidate == field[1:] {
			return true
		}
	}
	return false
}
