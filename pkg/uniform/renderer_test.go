package uniform_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-pagetags/pkg/model"
	"github.com/goliatone/go-pagetags/pkg/render"
	"github.com/goliatone/go-pagetags/pkg/testsupport"
	"github.com/goliatone/go-pagetags/pkg/uniform"
)

func newRenderer(t *testing.T, opts ...uniform.Option) *uniform.Renderer {
	t.Helper()
	renderer, err := uniform.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func signupForm(t *testing.T) model.FormModel {
	t.Helper()
	return testsupport.MustLoadFormModel(t, "testdata/signup_form.json")
}

func TestRenderer_Inputs(t *testing.T) {
	renderer := newRenderer(t)
	helper := uniform.NewFormHelper()
	helper.AddInput(
		uniform.Submit("my-submit", "Submit"),
		uniform.Reset("my-reset", "Reset"),
		uniform.Hidden("my-hidden", "Hidden"),
		uniform.Button("my-button", "Button"),
	)

	out, err := renderer.Render(testsupport.Context(), signupForm(t), helper, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`class="submit submitButton"`,
		`id="submit-id-my-submit"`,
		`class="reset resetButton"`,
		`id="reset-id-my-reset"`,
		`name="my-hidden"`,
		`class="button"`,
		`id="button-id-my-button"`,
		`<div class="buttonHolder">`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestRenderer_FormTagAttributes(t *testing.T) {
	renderer := newRenderer(t)
	helper := uniform.NewFormHelper()
	helper.Method = "GET"
	helper.ID = "this-form-rocks"
	helper.Class = "forms-that-rock"
	helper.Action = "/signup"

	out, err := renderer.Render(testsupport.Context(), signupForm(t), helper, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	want := `<form action="/signup" class="uniForm forms-that-rock" method="get" id="this-form-rocks">`
	if !strings.HasPrefix(html, want) {
		t.Fatalf("expected form tag %q, got:\n%s", want, html)
	}
	if !strings.HasSuffix(html, "</form>") {
		t.Fatalf("expected closing form tag, got:\n%s", html)
	}
}

func TestRenderer_TagToggleOnlyRemovesFormElement(t *testing.T) {
	renderer := newRenderer(t)
	form := signupForm(t)

	helper := uniform.NewFormHelper()
	helper.ID = "this-form-rocks"
	helper.Class = "forms-that-rock"
	helper.AddInput(uniform.Submit("save", "Save"))

	withTag, err := renderer.Render(testsupport.Context(), form, helper, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render with tag: %v", err)
	}

	helper.Tag = false
	withoutTag, err := renderer.Render(testsupport.Context(), form, helper, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render without tag: %v", err)
	}

	if strings.Contains(string(withoutTag), "<form") || strings.Contains(string(withoutTag), "</form>") {
		t.Fatalf("form tag should be omitted:\n%s", withoutTag)
	}
	for _, attr := range []string{`class="uniForm`, `id="this-form-rocks"`} {
		if strings.Contains(string(withoutTag), attr) {
			t.Fatalf("form attribute %q should be omitted:\n%s", attr, withoutTag)
		}
	}

	inner := string(withTag)
	inner = inner[strings.Index(inner, ">")+1:]
	inner = strings.TrimSuffix(inner, "</form>")
	if inner != string(withoutTag) {
		t.Fatalf("toggle changed more than the form element\nwith tag body:\n%s\nwithout tag:\n%s", inner, withoutTag)
	}
}

func TestRenderer_RenderFieldsLayout(t *testing.T) {
	renderer := newRenderer(t)

	out, err := renderer.RenderFields(testsupport.Context(), signupForm(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render fields: %v", err)
	}
	html := string(out)

	if strings.Contains(html, "<td>") {
		t.Fatalf("layout must not use tables:\n%s", html)
	}
	if strings.Contains(html, "<form") {
		t.Fatalf("fields must not include a form tag:\n%s", html)
	}
	for _, want := range []string{
		`<fieldset class="inlineLabels">`,
		`id="id_is_company"`,
		`<div id="div_id_email" class="ctrlHolder">`,
		`<label for="id_email"><em>*</em> Email address</label>`,
		`type="email"`,
		`maxlength="30"`,
		`type="password"`,
		`<label for="id_is_company">is company</label>`,
		`<option value="free">free</option>`,
		`<div class="hiddenFields"><input type="hidden" name="next" id="id_next" value="" /></div>`,
		`Tick if you <em>sign</em> for a company`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in output:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("help text should be sanitized:\n%s", html)
	}
}

func TestRenderer_ValuesAndErrors(t *testing.T) {
	renderer := newRenderer(t)

	out, err := renderer.RenderFields(testsupport.Context(), signupForm(t), render.RenderOptions{
		Values: map[string]any{
			"email":      "ada@example.com",
			"password1":  "secret",
			"plan":       "pro",
			"is_company": "on",
		},
		Errors: map[string][]string{
			"/body/email": {"Enter a valid email address."},
			"__all__":     {"Passwords do not match."},
		},
	})
	if err != nil {
		t.Fatalf("render fields: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`value="ada@example.com"`,
		`<option value="pro" selected="selected">pro</option>`,
		`checked="checked"`,
		`<div id="div_id_email" class="ctrlHolder error">`,
		`<strong>Enter a valid email address.</strong>`,
		`<div id="errorMsg">`,
		`<li>Passwords do not match.</li>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in output:\n%s", want, html)
		}
	}
	if strings.Contains(html, "secret") {
		t.Fatalf("password value must not be echoed:\n%s", html)
	}
}

func TestRenderer_NilHelperRendersFieldsOnly(t *testing.T) {
	renderer := newRenderer(t)
	form := signupForm(t)

	full, err := renderer.Render(testsupport.Context(), form, nil, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	fields, err := renderer.RenderFields(testsupport.Context(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render fields: %v", err)
	}
	if string(full) != string(fields) {
		t.Fatalf("nil helper output mismatch\nrender:\n%s\nfields:\n%s", full, fields)
	}
}

func TestRenderer_Setup(t *testing.T) {
	renderer := newRenderer(t, uniform.WithMediaURL("/media"))

	out, err := renderer.Setup()
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	for _, want := range []string{
		`/media/uni_form/uni-form.css`,
		`/media/uni_form/default.uni-form.css`,
		`/media/uni_form/uni-form.jquery.js`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in setup output:\n%s", want, out)
		}
	}
}

func TestRenderer_TemplateOverride(t *testing.T) {
	files := fstest.MapFS{
		"templates/inputs/submit.tmpl": {Data: []byte(`<button name="{{ input.name }}">{{ input.value }}</button>`)},
	}
	renderer := newRenderer(t, uniform.WithTemplatesFS(files))

	out, err := renderer.RenderInput(uniform.Submit("go", "Go"))
	if err != nil {
		t.Fatalf("render input: %v", err)
	}
	if out != `<button name="go">Go</button>` {
		t.Fatalf("unexpected override output %q", out)
	}
}

func TestRenderer_CanceledContext(t *testing.T) {
	renderer := newRenderer(t)
	ctx, cancel := canceledContext()
	defer cancel()

	if _, err := renderer.RenderFields(ctx, signupForm(t), render.RenderOptions{}); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
