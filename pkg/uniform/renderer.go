package uniform

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-pagetags/pkg/model"
	"github.com/goliatone/go-pagetags/pkg/render"
	rendertemplate "github.com/goliatone/go-pagetags/pkg/render/template"
	gotemplate "github.com/goliatone/go-pagetags/pkg/render/template/gotemplate"
)

const DefaultMediaURL = "/static/"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	mediaURL         string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithMediaURL sets the prefix Setup uses for stylesheet and script URLs.
func WithMediaURL(prefix string) Option {
	return func(cfg *config) {
		cfg.mediaURL = strings.TrimSpace(prefix)
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	mediaURL  string
}

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), mediaURL: DefaultMediaURL}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.mediaURL == "" {
		cfg.mediaURL = DefaultMediaURL
	}
	if !strings.HasSuffix(cfg.mediaURL, "/") {
		cfg.mediaURL += "/"
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("uniform renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, mediaURL: cfg.mediaURL}, nil
}

func (r *Renderer) Name() string {
	return "uniform"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render lays out form and wraps it according to helper. A nil helper
// renders the fields only, which is what the as_uni_form filter produces.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, helper *FormHelper, options render.RenderOptions) ([]byte, error) {
	if err := r.ready(ctx); err != nil {
		return nil, err
	}

	var inputs []Input
	if helper != nil {
		inputs = helper.Inputs
	}
	body, err := r.renderBody(form, inputs, options)
	if err != nil {
		return nil, err
	}

	result, err := r.templates.RenderTemplate("templates/form", map[string]any{
		"helper": helper.view(),
		"body":   body,
	})
	if err != nil {
		return nil, fmt.Errorf("uniform renderer: render form: %w", err)
	}
	return []byte(result), nil
}

// RenderFields lays out the form fields without a form tag or inputs.
func (r *Renderer) RenderFields(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if err := r.ready(ctx); err != nil {
		return nil, err
	}
	body, err := r.renderBody(form, nil, options)
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}

// RenderInput renders a single auxiliary input from its kind's template.
func (r *Renderer) RenderInput(input Input) (string, error) {
	if r == nil || r.templates == nil {
		return "", fmt.Errorf("uniform renderer: template renderer is nil")
	}
	out, err := r.templates.RenderTemplate(input.TemplateName(), map[string]any{
		"input": input.view(),
	})
	if err != nil {
		return "", fmt.Errorf("uniform renderer: render %s input %q: %w", input.Kind, input.Name, err)
	}
	return out, nil
}

// Setup returns the stylesheet and script tags the layout depends on.
func (r *Renderer) Setup() (string, error) {
	if r == nil || r.templates == nil {
		return "", fmt.Errorf("uniform renderer: template renderer is nil")
	}
	out, err := r.templates.RenderTemplate("templates/setup", map[string]any{
		"media_url": r.mediaURL,
	})
	if err != nil {
		return "", fmt.Errorf("uniform renderer: render setup: %w", err)
	}
	return out, nil
}

func (r *Renderer) ready(ctx context.Context) error {
	if r == nil || r.templates == nil {
		return fmt.Errorf("uniform renderer: template renderer is nil")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderBody(form model.FormModel, inputs []Input, options render.RenderOptions) (string, error) {
	mapping := render.MapErrorPayload(form, options.Errors)

	var fields, hidden strings.Builder
	for _, field := range form.Fields {
		if strings.TrimSpace(field.Name) == "" {
			continue
		}
		view := fieldView(field, options.Values, mapping.Fields[field.Name])
		name := "templates/field"
		target := &fields
		if field.ResolveWidget() == model.WidgetHidden {
			name = "templates/hidden_field"
			target = &hidden
		}
		out, err := r.templates.RenderTemplate(name, map[string]any{"field": view})
		if err != nil {
			return "", fmt.Errorf("uniform renderer: render field %q: %w", field.Name, err)
		}
		target.WriteString(out)
	}

	var buttons strings.Builder
	for _, input := range inputs {
		out, err := r.RenderInput(input)
		if err != nil {
			return "", err
		}
		buttons.WriteString(out)
	}

	errs := make([]any, 0, len(mapping.Form))
	for _, message := range mapping.Form {
		errs = append(errs, message)
	}

	out, err := r.templates.RenderTemplate("templates/fields", map[string]any{
		"errors": errs,
		"fields": fields.String(),
		"hidden": hidden.String(),
		"inputs": buttons.String(),
	})
	if err != nil {
		return "", fmt.Errorf("uniform renderer: render fields: %w", err)
	}
	return out, nil
}

func fieldView(field model.Field, values map[string]any, errs []string) map[string]any {
	value, hasValue := values[field.Name]
	if !hasValue {
		value = field.Default
	}

	messages := make([]any, 0, len(errs))
	for _, message := range errs {
		messages = append(messages, message)
	}

	widget := field.ResolveWidget()
	view := map[string]any{
		"name":        field.Name,
		"id":          field.ControlID(),
		"label":       field.DisplayLabel(),
		"required":    field.Required,
		"widget":      string(widget),
		"placeholder": field.Placeholder,
		"maxlength":   maxLength(field.MaxLength),
		"help":        sanitizeHelpText(field.HelpText),
		"errors":      messages,
		"value":       "",
		"checked":     false,
	}

	switch widget {
	case model.WidgetCheckbox:
		view["checked"] = truthy(value)
	case model.WidgetPassword:
		// Passwords are never echoed back.
	default:
		view["value"] = stringValue(value)
	}

	if widget == model.WidgetSelect {
		selected := stringValue(value)
		choices := make([]any, 0, len(field.Enum)+1)
		if !field.Required {
			choices = append(choices, map[string]any{"value": "", "label": "---------", "selected": selected == ""})
		}
		for _, option := range field.Enum {
			text := stringValue(option)
			choices = append(choices, map[string]any{"value": text, "label": text, "selected": text == selected})
		}
		view["choices"] = choices
	}
	return view
}

func maxLength(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func stringValue(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "on", "yes", "checked":
			return true
		}
		return false
	default:
		return stringValue(v) != "" && stringValue(v) != "0"
	}
}

var (
	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

func sanitizeHelpText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	helpPolicyOnce.Do(func() {
		helpPolicy = bluemonday.UGCPolicy()
	})
	return strings.TrimSpace(helpPolicy.Sanitize(trimmed))
}
