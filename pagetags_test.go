package pagetags_test

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-pagetags"
	"github.com/goliatone/go-pagetags/pkg/model"
	"github.com/goliatone/go-pagetags/pkg/sorting"
	"github.com/goliatone/go-pagetags/pkg/testsupport"
	"github.com/goliatone/go-pagetags/pkg/uniform"
)

var pages = fstest.MapFS{
	"people.html": {Data: []byte(`{% autosort people "name,age" %}{% anchor "name" "Name" %}|{% for p in people.Rows() %}{{ p.name }},{% endfor %}`)},
	"strict.html": {Data: []byte(`{% autosort people %}{% for p in people.Rows() %}{{ p.name }},{% endfor %}`)},
	"signup.html": {Data: []byte(`{% uni_form_setup %}{% uni_form form helper %}`)},
}

func newEngine(t *testing.T, mutate func(*pagetags.Settings)) *pagetags.Engine {
	t.Helper()
	settings := pagetags.DefaultSettings()
	if mutate != nil {
		mutate(&settings)
	}
	engine, err := pagetags.NewEngine(settings, pagetags.WithTemplatesFS(pages))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func people() *sorting.SliceCollection[map[string]any] {
	return sorting.NewMapCollection([]map[string]any{
		{"name": "Bob", "age": 25},
		{"name": "Ada", "age": 36},
	})
}

func TestEngine_RenderPageSortsCollection(t *testing.T) {
	engine := newEngine(t, nil)
	r := testsupport.NewRequest(t, "/people?sort=name&direction=asc")

	out, err := engine.RenderPage("people", r, map[string]any{"people": people()})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	want := `<a href="?direction=desc&amp;sort=name" class="sorting active desc" title="Name &uarr;">Name &uarr;</a>|Ada,Bob,`
	if out != want {
		t.Fatalf("want %s\ngot  %s", want, out)
	}
}

func TestEngine_RenderPageStrictSorting(t *testing.T) {
	engine := newEngine(t, func(s *pagetags.Settings) { s.InvalidFieldRaises404 = true })
	t.Cleanup(func() { newEngine(t, nil) })

	r := testsupport.NewRequest(t, "/people?sort=age,missing")
	_, err := engine.RenderPage("strict", r, map[string]any{"people": people()})
	if !errors.Is(err, sorting.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEngine_RenderPageForm(t *testing.T) {
	engine := newEngine(t, nil)
	form := model.FormModel{Fields: []model.Field{{Name: "email", Type: model.FieldTypeString}}}
	helper := uniform.NewFormHelper()
	helper.AddInput(uniform.Submit("save", "Save"))

	out, err := engine.RenderPage("signup", testsupport.NewRequest(t, "/signup"), map[string]any{
		"form":   form,
		"helper": helper,
	})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	for _, want := range []string{"/static/uni_form/uni-form.css", `<form action="" class="uniForm" method="post">`, `id="submit-id-save"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestEngine_RenderInlineContent(t *testing.T) {
	engine := newEngine(t, nil)
	out, err := engine.RenderPage(`{% anchor "age" %}`, testsupport.NewRequest(t, "/"), nil)
	if err != nil {
		t.Fatalf("render inline: %v", err)
	}
	if out != `<a href="?direction=desc&amp;sort=age" class="sorting" title="age">age</a>` {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestEngine_RequiresTemplateSource(t *testing.T) {
	if _, err := pagetags.NewEngine(pagetags.DefaultSettings()); err == nil {
		t.Fatal("expected error without a template source")
	}
}

func TestEmbeddedFilesystems(t *testing.T) {
	if _, err := fs.ReadFile(pagetags.EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("expected form template to be readable: %v", err)
	}
	for _, name := range []string{"uni-form.css", "default.uni-form.css", "uni-form-ie.css", "uni-form.jquery.js"} {
		if _, err := fs.ReadFile(pagetags.RuntimeAssetsFS(), name); err != nil {
			t.Fatalf("expected asset %s to be readable: %v", name, err)
		}
	}
}

func TestLoadForm(t *testing.T) {
	form, err := pagetags.LoadForm(testsupport.Context(), "testdata/signup.openapi.yaml", "createAccount")
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	if len(form.Fields) != 2 || form.Fields[0].Name != "email" || !form.Fields[0].Required {
		t.Fatalf("unexpected form %+v", form)
	}

	if _, err := pagetags.LoadForm(testsupport.Context(), "", "createAccount"); err == nil {
		t.Fatal("expected error for empty path")
	}
}
