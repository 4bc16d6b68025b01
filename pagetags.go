// Package pagetags wires the page helpers into a pongo2 template engine.
//
// Templates rendered through an Engine can use the comment, sorting and form
// tags registered by pkg/tags:
//
//	engine, err := pagetags.NewEngine(settings, pagetags.WithTemplatesDir("templates"))
//	html, err := engine.RenderPage("people/list", r, map[string]any{"people": people})
package pagetags

import (
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-pagetags/internal/config"
	"github.com/goliatone/go-pagetags/pkg/render"
	rendertemplate "github.com/goliatone/go-pagetags/pkg/render/template"
	gotemplate "github.com/goliatone/go-pagetags/pkg/render/template/gotemplate"
	"github.com/goliatone/go-pagetags/pkg/tags"
)

// Settings aliases the site settings read by the tags.
type Settings = config.Settings

// RenderOptions describes per-request overrides that the form renderer uses
// to prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// DefaultSettings returns settings with every optional value populated.
func DefaultSettings() Settings {
	return config.Default()
}

// LoadSettings reads settings from an optional YAML file and overlays
// PAGETAGS_* environment variables.
func LoadSettings(path string) (Settings, error) {
	return config.Load(path)
}

// Option configures NewEngine.
type Option func(*engineConfig)

type engineConfig struct {
	templatesDir string
	templatesFS  fs.FS
	extension    string
	globals      map[string]any
	logger       *zap.Logger
	tagOptions   []tags.Option
}

// WithTemplatesDir loads page templates from a directory on disk.
func WithTemplatesDir(dir string) Option {
	return func(cfg *engineConfig) {
		cfg.templatesDir = strings.TrimSpace(dir)
	}
}

// WithTemplatesFS loads page templates from an fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *engineConfig) {
		cfg.templatesFS = files
	}
}

// WithExtension overrides the page template extension (".html" by default).
func WithExtension(ext string) Option {
	return func(cfg *engineConfig) {
		cfg.extension = ext
	}
}

// WithGlobalData seeds values visible to every page.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *engineConfig) {
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[key] = value
		}
	}
}

// WithLogger sets the logger shared by the engine and the tags.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *engineConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithTagOptions forwards extra options to tags.Install.
func WithTagOptions(opts ...tags.Option) Option {
	return func(cfg *engineConfig) {
		cfg.tagOptions = append(cfg.tagOptions, opts...)
	}
}

// Engine renders pages with the page tags installed.
type Engine struct {
	templates rendertemplate.TemplateRenderer
	logger    *zap.Logger
}

// NewEngine installs the tags with settings and builds a template engine
// over the configured template source.
func NewEngine(settings Settings, options ...Option) (*Engine, error) {
	cfg := engineConfig{extension: ".html", logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	tagOpts := append([]tags.Option{tags.WithLogger(cfg.logger)}, cfg.tagOptions...)
	if err := tags.Install(settings, tagOpts...); err != nil {
		return nil, fmt.Errorf("pagetags: install tags: %w", err)
	}

	engineOpts := []gotemplate.Option{
		gotemplate.WithExtension(cfg.extension),
		gotemplate.WithGlobalData(cfg.globals),
	}
	if cfg.templatesDir != "" {
		engineOpts = append(engineOpts, gotemplate.WithBaseDir(cfg.templatesDir))
	}
	if cfg.templatesFS != nil {
		engineOpts = append(engineOpts, gotemplate.WithFS(cfg.templatesFS))
	}

	engine, err := gotemplate.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("pagetags: configure engine: %w", err)
	}
	return &Engine{templates: engine, logger: cfg.logger}, nil
}

// Templates returns the underlying renderer, e.g. to register filters.
func (e *Engine) Templates() rendertemplate.TemplateRenderer {
	return e.templates
}

// RenderPage renders the named template (or inline template content) with r
// available to the tags under the "request" key.
func (e *Engine) RenderPage(name string, r *http.Request, data map[string]any) (string, error) {
	if e == nil || e.templates == nil {
		return "", fmt.Errorf("pagetags: engine is nil")
	}
	view := make(map[string]any, len(data)+1)
	for key, value := range data {
		view[key] = value
	}
	if r != nil {
		view[tags.RequestKey] = r
	}

	out, err := e.templates.Render(name, view)
	if err != nil {
		e.logger.Debug("render page failed", zap.String("template", name), zap.Error(err))
		return "", fmt.Errorf("pagetags: render %q: %w", name, tags.Cause(err))
	}
	return out, nil
}
