package sorting_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pagetags/pkg/sorting"
)

func TestOrderFields(t *testing.T) {
	cases := []struct {
		name     string
		state    sorting.State
		accepted []string
		fallback string
		want     []string
	}{
		{name: "ascending", state: sorting.State{Sort: "name", Direction: sorting.Ascending}, accepted: []string{"name", "age"}, want: []string{"name"}},
		{name: "descending", state: sorting.State{Sort: "name", Direction: sorting.Descending}, accepted: []string{"name", "age"}, want: []string{"-name"}},
		{name: "unset direction sorts descending", state: sorting.State{Sort: "name"}, accepted: []string{"name"}, want: []string{"-name"}},
		{name: "prefixed field under descending collapses", state: sorting.State{Sort: "-name", Direction: sorting.Descending}, accepted: []string{"name"}, want: []string{"name"}},
		{name: "prefixed field under ascending kept", state: sorting.State{Sort: "-name", Direction: sorting.Ascending}, accepted: []string{"name"}, want: []string{"-name"}},
		{name: "not accepted falls back to default", state: sorting.State{Sort: "bogus", Direction: sorting.Ascending}, accepted: []string{"name"}, fallback: "created", want: []string{"-created"}},
		{name: "empty sort falls back to default", state: sorting.State{}, accepted: []string{"name"}, fallback: "created,-id", want: []string{"-created", "id"}},
		{name: "no allow-list and no sort uses default", state: sorting.State{}, fallback: "created", want: []string{"-created"}},
		{name: "no allow-list keeps requested", state: sorting.State{Sort: "bogus", Direction: sorting.Ascending}, fallback: "created", want: []string{"bogus"}},
		{name: "drops fields outside allow-list", state: sorting.State{Sort: "name,bogus", Direction: sorting.Descending}, accepted: []string{"name"}, want: []string{"-name"}},
		{name: "not accepted without default is empty", state: sorting.State{Sort: "bogus"}, accepted: []string{"name"}, want: []string{}},
		{name: "comma separated allow-list", state: sorting.State{Sort: "age", Direction: sorting.Ascending}, accepted: []string{"name,age"}, want: []string{"age"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sorting.OrderFields(tc.state, tc.accepted, tc.fallback)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func people() *sorting.SliceCollection[map[string]any] {
	return sorting.NewMapCollection([]map[string]any{
		{"name": "Grace", "age": 45, "team": "b"},
		{"name": "Ada", "age": 36, "team": "a"},
		{"name": "Linus", "age": 21, "team": "b"},
	})
}

func names(t *testing.T, collection sorting.Orderable) []string {
	t.Helper()
	rows, ok := collection.(*sorting.SliceCollection[map[string]any])
	if !ok {
		t.Fatalf("unexpected collection type %T", collection)
	}
	out := make([]string, 0, rows.Len())
	for _, row := range rows.Rows() {
		out = append(out, row["name"].(string))
	}
	return out
}

func TestAutoSort_OrdersByRequestedField(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/people?sort=age&direction=asc", nil)

	sorted, err := sorting.AutoSort(req, people(), []string{"name", "age"}, "")
	if err != nil {
		t.Fatalf("autosort: %v", err)
	}
	if diff := cmp.Diff([]string{"Linus", "Ada", "Grace"}, names(t, sorted)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"age"}, sorted.Ordering()); diff != "" {
		t.Fatalf("ordering mismatch (-want +got):\n%s", diff)
	}
}

func TestAutoSort_DefaultOrdering(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/people", nil)

	sorted, err := sorting.AutoSort(req, people(), []string{"name"}, "age")
	if err != nil {
		t.Fatalf("autosort: %v", err)
	}
	if diff := cmp.Diff([]string{"Grace", "Ada", "Linus"}, names(t, sorted)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestAutoSort_ExistingOrderingComesFirst(t *testing.T) {
	collection := sorting.NewMapCollection(people().Rows(), "team")
	req := httptest.NewRequest(http.MethodGet, "/people?sort=name&direction=desc", nil)

	sorted, err := sorting.AutoSort(req, collection, nil, "")
	if err != nil {
		t.Fatalf("autosort: %v", err)
	}
	if diff := cmp.Diff([]string{"team", "-name"}, sorted.Ordering()); diff != "" {
		t.Fatalf("ordering mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Ada", "Linus", "Grace"}, names(t, sorted)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestAutoSort_InvalidFieldStrict(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/people?sort=bogus", nil)

	_, err := sorting.AutoSort(req, people(), nil, "", sorting.WithInvalidFieldRaises404(true))
	if !errors.Is(err, sorting.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var httpErr sorting.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode() != http.StatusNotFound {
		t.Fatalf("expected 404 status error, got %v", err)
	}
}

type track struct {
	Title  string
	Length int
}

func trackKey(row track, field string) (any, bool) {
	switch field {
	case "title":
		return row.Title, true
	case "length":
		return row.Length, true
	}
	return nil, false
}

func TestAutoSortState_EmptyCollectionStrict404(t *testing.T) {
	cases := map[string]sorting.Orderable{
		"typed rows":      sorting.NewSliceCollection([]track{}, trackKey),
		"declared fields": sorting.NewMapCollection(nil).WithFields("name", "age"),
	}
	for name, collection := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := sorting.AutoSortState(sorting.State{Sort: "missing"}, collection, nil, "", sorting.WithInvalidFieldRaises404(true))
			if !errors.Is(err, sorting.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			var httpErr sorting.HTTPError
			if !errors.As(err, &httpErr) || httpErr.StatusCode() != http.StatusNotFound {
				t.Fatalf("expected 404 status error, got %v", err)
			}
		})
	}
}

func TestAutoSort_InvalidFieldLenientReturnsOriginal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/people?sort=bogus", nil)
	original := people()

	sorted, err := sorting.AutoSort(req, original, nil, "")
	if err != nil {
		t.Fatalf("autosort: %v", err)
	}
	if sorted != sorting.Orderable(original) {
		t.Fatalf("expected the original collection back")
	}
	if diff := cmp.Diff([]string{"Grace", "Ada", "Linus"}, names(t, sorted)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestAutoSort_NoFieldsIsNoop(t *testing.T) {
	original := people()
	sorted, err := sorting.AutoSortState(sorting.State{Sort: "bogus"}, original, []string{"name"}, "")
	if err != nil {
		t.Fatalf("autosort: %v", err)
	}
	if sorted != sorting.Orderable(original) {
		t.Fatalf("expected the original collection back")
	}
}

func TestAutoSort_NilCollection(t *testing.T) {
	if _, err := sorting.AutoSortState(sorting.State{}, nil, nil, ""); err == nil {
		t.Fatalf("expected error for nil collection")
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	sorting.WriteError(rec, sorting.StatusError{Code: http.StatusNotFound, Err: sorting.ErrNotFound})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	sorting.WriteError(rec, errors.New("boom"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
