package tags

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/flosch/pongo2/v6"
	"go.uber.org/zap"

	"github.com/goliatone/go-pagetags/internal/config"
	"github.com/goliatone/go-pagetags/pkg/comments"
	"github.com/goliatone/go-pagetags/pkg/sorting"
	"github.com/goliatone/go-pagetags/pkg/uniform"
)

// RequestKey is the template context key holding the current *http.Request.
const RequestKey = "request"

type Option func(*options)

type options struct {
	logger  *zap.Logger
	uniform []uniform.Option
}

// WithLogger sets the logger used by the tags. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithUniformOptions forwards options to the form renderer backing the
// uni_form tags, e.g. uniform.WithTemplatesDir to override templates.
func WithUniformOptions(opts ...uniform.Option) Option {
	return func(o *options) {
		o.uniform = append(o.uniform, opts...)
	}
}

type runtime struct {
	settings config.Settings
	logger   *zap.Logger
	forms    *uniform.Renderer
}

var (
	registerOnce sync.Once
	registerErr  error
	current      atomic.Pointer[runtime]
)

// Install registers the tags and filters with pongo2 and makes settings the
// active configuration. Registration happens once per process; later calls
// only replace the settings.
func Install(settings config.Settings, opts ...Option) error {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}

	settings = settings.Normalize()
	formOpts := append([]uniform.Option{uniform.WithMediaURL(settings.MediaURL)}, o.uniform...)
	forms, err := uniform.New(formOpts...)
	if err != nil {
		return fmt.Errorf("tags: configure form renderer: %w", err)
	}

	current.Store(&runtime{settings: settings, logger: o.logger, forms: forms})

	registerOnce.Do(func() {
		registerErr = register()
		if registerErr == nil {
			o.logger.Debug("registered page tags", zap.Strings("tags", tagNames()))
		}
	})
	return registerErr
}

// Installed reports whether Install has completed successfully.
func Installed() bool {
	return current.Load() != nil && registerErr == nil
}

// CurrentSettings returns the active settings.
func CurrentSettings() config.Settings {
	if rt := current.Load(); rt != nil {
		return rt.settings
	}
	return config.Default()
}

// Cause returns the error a tag failed with, unwrapping the pongo2 error
// envelope so callers can match it with errors.Is or errors.As.
func Cause(err error) error {
	for {
		var perr *pongo2.Error
		if !errors.As(err, &perr) || perr.OrigError == nil {
			return err
		}
		err = perr.OrigError
	}
}

var tagParsers = map[string]pongo2.TagParser{
	"disqus_dev":           parseDisqusDev,
	"disqus_num_replies":   parseDisqusNumReplies,
	"disqus_show_comments": parseDisqusShowComments,
	"anchor":               parseAnchor,
	"autosort":             parseAutoSort,
	"uni_form":             parseUniForm,
	"uni_form_setup":       parseUniFormSetup,
}

var filters = map[string]pongo2.FilterFunction{
	"as_uni_form": filterAsUniForm,
}

func tagNames() []string {
	names := make([]string, 0, len(tagParsers))
	for name := range tagParsers {
		names = append(names, name)
	}
	return names
}

func register() error {
	for name, parser := range tagParsers {
		if err := pongo2.RegisterTag(name, parser); err != nil {
			return fmt.Errorf("tags: register %q: %w", name, err)
		}
	}
	for name, fn := range filters {
		if pongo2.FilterExists(name) {
			continue
		}
		if err := pongo2.RegisterFilter(name, fn); err != nil {
			return fmt.Errorf("tags: register filter %q: %w", name, err)
		}
	}
	return nil
}

func active() *runtime {
	if rt := current.Load(); rt != nil {
		return rt
	}
	return &runtime{settings: config.Default(), logger: zap.NewNop()}
}

func (rt *runtime) sortOptions() []sorting.OptionFn {
	return []sorting.OptionFn{
		sorting.WithParams(rt.settings.SortParam, rt.settings.DirectionParam),
		sorting.WithIcons(rt.settings.SortUp, rt.settings.SortDown),
		sorting.WithInvalidFieldRaises404(rt.settings.InvalidFieldRaises404),
		sorting.WithLogger(rt.logger),
	}
}

func (rt *runtime) commentSettings() comments.Settings {
	return comments.Settings{
		Shortname:           rt.settings.DisqusShortname,
		Debug:               rt.settings.Debug,
		TrustForwardedProto: rt.settings.TrustForwardedProto,
	}
}
