package sorting

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// State is the sort requested by the current page: the raw sort value (one
// field or a comma separated list) and its direction.
type State struct {
	Sort      string
	Direction Direction
}

// Fields splits the sort value into its trimmed, non-empty field names.
func (s State) Fields() []string {
	return SplitFields(s.Sort)
}

type stateKey struct{}

// WithState attaches a parsed State to ctx.
func WithState(ctx context.Context, state State) context.Context {
	return context.WithValue(ctx, stateKey{}, state)
}

// StateFrom returns the State attached by WithState or Middleware.
func StateFrom(ctx context.Context) (State, bool) {
	if ctx == nil {
		return State{}, false
	}
	state, ok := ctx.Value(stateKey{}).(State)
	return state, ok
}

// StateFromValues reads the sort state out of query values.
func StateFromValues(values url.Values, fns ...OptionFn) State {
	opts := NewOptions(fns...)
	return stateFromValues(values, opts)
}

// StateFromRequest prefers a State attached to the request context and
// otherwise parses the query string.
func StateFromRequest(r *http.Request, fns ...OptionFn) State {
	opts := NewOptions(fns...)
	return stateFromRequest(r, opts)
}

func stateFromRequest(r *http.Request, opts Options) State {
	if r == nil {
		return State{}
	}
	if state, ok := StateFrom(r.Context()); ok {
		return state
	}
	if r.URL == nil {
		return State{}
	}
	return stateFromValues(r.URL.Query(), opts)
}

func stateFromValues(values url.Values, opts Options) State {
	if values == nil {
		return State{}
	}
	return State{
		Sort:      strings.TrimSpace(values.Get(opts.SortParam)),
		Direction: ParseDirection(values.Get(opts.DirectionParam)),
	}
}

// Middleware parses the sort state once per request and attaches it to the
// request context for Anchor, AutoSort and the template tags.
func Middleware(next http.Handler, fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil || next == nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		state := stateFromRequest(r, opts)
		next.ServeHTTP(w, r.WithContext(WithState(r.Context(), state)))
	})
}

// SplitFields splits a comma separated field list, dropping blanks.
func SplitFields(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
