package main

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-pagetags"
	"github.com/goliatone/go-pagetags/pkg/render"
	"github.com/goliatone/go-pagetags/pkg/sorting"
	"github.com/goliatone/go-pagetags/pkg/uniform"
)

//go:embed templates/*.html
var embeddedPages embed.FS

type pageServer struct {
	engine   *pagetags.Engine
	settings pagetags.Settings
	logger   *zap.Logger
}

func newPageServer(settings pagetags.Settings, logger *zap.Logger) (*pageServer, error) {
	pages, err := fs.Sub(embeddedPages, "templates")
	if err != nil {
		return nil, err
	}
	engine, err := pagetags.NewEngine(settings,
		pagetags.WithTemplatesFS(pages),
		pagetags.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return &pageServer{engine: engine, settings: settings, logger: logger}, nil
}

func (s *pageServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(s.settings.MediaURL+"uni_form/",
		http.StripPrefix(s.settings.MediaURL+"uni_form/", http.FileServer(http.FS(pagetags.RuntimeAssetsFS()))))
	mux.HandleFunc("/people", s.handlePeople)
	mux.HandleFunc("/signup", s.handleSignup)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return sorting.Middleware(mux,
		sorting.WithParams(s.settings.SortParam, s.settings.DirectionParam),
	)
}

func (s *pageServer) handlePeople(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "people", http.StatusOK, map[string]any{
		"people":   samplePeople(),
		"comments": s.settings.DisqusShortname != "",
	})
}

func (s *pageServer) handleSignup(w http.ResponseWriter, r *http.Request) {
	form := signupForm()
	helper := uniform.NewFormHelper()
	helper.ID = "signup-form"
	helper.Action = form.Endpoint
	helper.Method = form.Method
	helper.AddInput(uniform.Submit("signup", "Sign up"), uniform.Reset("reset", "Reset"))

	data := map[string]any{"form": form, "helper": helper}
	status := http.StatusOK

	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form payload", http.StatusBadRequest)
			return
		}
		values := make(map[string]any, len(form.Fields))
		for _, field := range form.Fields {
			if value := r.PostForm.Get(field.Name); value != "" {
				values[field.Name] = value
			}
		}
		fieldErrors := validateSignup(values)
		if len(fieldErrors) == 0 {
			data["saved"] = values["email"]
			break
		}
		status = http.StatusUnprocessableEntity
		data["values"] = values
		data["errors"] = fieldErrors
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	s.render(w, r, "signup", status, data)
}

// render writes status only once the page rendered, so a failing template
// still reports its own error status.
func (s *pageServer) render(w http.ResponseWriter, r *http.Request, name string, status int, data map[string]any) {
	html, err := s.engine.RenderPage(name, r, data)
	if err != nil {
		var httpErr sorting.HTTPError
		if !errors.As(err, &httpErr) {
			s.logger.Error("render page", zap.String("page", name), zap.Error(err))
		}
		sorting.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(html))
}

func validateSignup(values map[string]any) map[string][]string {
	errs := make(map[string][]string)
	email, _ := values["email"].(string)
	switch {
	case strings.TrimSpace(email) == "":
		errs["/body/email"] = append(errs["/body/email"], "This field is required.")
	case !strings.Contains(email, "@"):
		errs["/body/email"] = append(errs["/body/email"], "Enter a valid email address.")
	}
	if password, _ := values["password1"].(string); len(password) < 8 {
		errs["/body/password1"] = append(errs["/body/password1"], "Use at least 8 characters.")
	}
	if strings.EqualFold(email, "taken@example.com") {
		errs["__all__"] = render.MergeFormErrors(errs["__all__"], "An account with this email already exists.")
	}
	return errs
}
