package sorting

import (
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

const anchorClass = "sorting"

var (
	titlePolicyOnce sync.Once
	titlePolicy     *bluemonday.Policy
)

// Link is a column header link produced by Anchor.
type Link struct {
	Href      string
	Class     string
	Title     string
	Field     string
	Direction Direction
	Active    bool
}

// HTML renders the link as an anchor element. Title already holds escaped
// text plus the icon markup.
func (l Link) HTML() string {
	return fmt.Sprintf(`<a href="%s" class="%s" title="%s">%s</a>`,
		html.EscapeString(l.Href), html.EscapeString(l.Class), l.Title, l.Title)
}

func (l Link) String() string { return l.HTML() }

// Anchor builds the header link for field (one name or a comma separated
// list). title defaults to field; fragment, when set, is appended as #fragment.
//
// The column is active when the requested sort is non-empty and contained in
// field. An active column links to the inverse of the current direction and
// shows the icon of the current one. Any other column links to a descending
// sort. The remaining query parameters are preserved.
func Anchor(r *http.Request, field, title, fragment string, fns ...OptionFn) Link {
	opts := NewOptions(fns...)
	return anchor(stateFromRequest(r, opts), queryOf(r), field, title, fragment, opts)
}

// AnchorFor is Anchor over an explicit state and query, for callers rendering
// outside of an http.Request.
func AnchorFor(state State, query url.Values, field, title, fragment string, fns ...OptionFn) Link {
	return anchor(state, query, field, title, fragment, NewOptions(fns...))
}

func anchor(state State, query url.Values, field, title, fragment string, opts Options) Link {
	field = strings.TrimSpace(field)
	if strings.TrimSpace(title) == "" {
		title = field
	}
	text := sanitizeTitle(title)

	vars := cloneValues(query)
	link := Link{Field: field, Class: anchorClass}

	if state.Sort != "" && strings.Contains(field, state.Sort) {
		link.Active = true
		link.Direction = state.Direction.Inverse()
		link.Class = fmt.Sprintf("%s active %s", anchorClass, link.Direction)
		if icon := state.Direction.Icon(opts.Icons); icon != "" {
			text = text + " " + icon
		}
	} else {
		link.Direction = Descending
	}

	vars.Set(opts.DirectionParam, string(link.Direction))
	vars.Set(opts.SortParam, field)

	target := url.URL{RawQuery: vars.Encode(), Fragment: strings.TrimSpace(fragment)}
	link.Href = target.String()
	link.Title = text
	return link
}

func queryOf(r *http.Request) url.Values {
	if r == nil || r.URL == nil {
		return url.Values{}
	}
	return r.URL.Query()
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values)+2)
	for key, list := range values {
		out[key] = append([]string(nil), list...)
	}
	return out
}

func sanitizeTitle(raw string) string {
	titlePolicyOnce.Do(func() {
		titlePolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(titlePolicy.Sanitize(raw))
}
