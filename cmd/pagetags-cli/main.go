package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-pagetags"
	"github.com/goliatone/go-pagetags/internal/prompt"
	"github.com/goliatone/go-pagetags/pkg/sorting"
	"github.com/goliatone/go-pagetags/pkg/uniform"
)

func main() {
	templatePath := flag.String("template", "", "page template to render")
	rawURL := flag.String("url", "http://localhost/", "URL of the simulated request")
	configPath := flag.String("config", "", "settings YAML file (PAGETAGS_* env vars override it)")
	rowsPath := flag.String("rows", "", "JSON array of objects exposed to the template as rows")
	formPath := flag.String("form", "", "OpenAPI document exposed to the template as form")
	operation := flag.String("operation", "", "operation ID used with -form")
	interactive := flag.Bool("interactive", false, "prompt for the sort field and direction")
	output := flag.String("output", "", "output file (stdout if empty)")
	debug := flag.Bool("debug", false, "enable development logging")
	flag.Parse()

	logger := newLogger(*debug)
	defer func() { _ = logger.Sync() }()

	if strings.TrimSpace(*templatePath) == "" {
		logger.Fatal("missing -template")
	}

	ctx := context.Background()

	settings, err := pagetags.LoadSettings(*configPath)
	if err != nil {
		logger.Fatal("failed to load settings", zap.Error(err))
	}

	target, err := url.Parse(*rawURL)
	if err != nil || !target.IsAbs() {
		logger.Fatal("invalid -url, expected an absolute URL", zap.String("url", *rawURL))
	}

	if *interactive {
		params := sorting.WithParams(settings.SortParam, settings.DirectionParam)
		state, err := prompt.AskSort(ctx, prompt.NewSurveyDriver(), sorting.StateFromValues(target.Query(), params))
		if err != nil {
			logger.Fatal("failed to read sort state", zap.Error(err))
		}
		prompt.Apply(target, state, settings.SortParam, settings.DirectionParam)
	}

	data := map[string]any{}
	if *rowsPath != "" {
		rows, err := loadRows(*rowsPath)
		if err != nil {
			logger.Fatal("failed to load rows", zap.Error(err))
		}
		data["rows"] = sorting.NewMapCollection(rows)
	}
	if *formPath != "" {
		form, err := pagetags.LoadForm(ctx, *formPath, *operation)
		if err != nil {
			logger.Fatal("failed to load form", zap.Error(err))
		}
		helper := uniform.NewFormHelper()
		helper.Action = form.Endpoint
		if form.Method != "" {
			helper.Method = form.Method
		}
		helper.AddInput(uniform.Submit("submit", "Submit"))
		data["form"] = form
		data["helper"] = helper
	}

	dir, file := filepath.Split(*templatePath)
	ext := filepath.Ext(file)
	engine, err := pagetags.NewEngine(settings,
		pagetags.WithTemplatesDir(filepath.Clean(dir)),
		pagetags.WithExtension(ext),
		pagetags.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal("failed to configure engine", zap.Error(err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		logger.Fatal("failed to build request", zap.Error(err))
	}

	html, err := engine.RenderPage(strings.TrimSuffix(file, ext), req, data)
	if err != nil {
		logger.Fatal("failed to render page", zap.String("template", *templatePath), zap.Error(err))
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(html), 0o644); err != nil {
			logger.Fatal("failed to write output", zap.Error(err))
		}
		fmt.Printf("Page written to %s\n", *output)
		return
	}
	fmt.Println(html)
}

func newLogger(debug bool) *zap.Logger {
	build := zap.NewProduction
	if debug {
		build = zap.NewDevelopment
	}
	logger, err := build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func loadRows(path string) ([]map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	return rows, nil
}
