package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_AppliesDefaults(t *testing.T) {
	settings, err := Parse([]byte("disqus_shortname: ' example '\ninvalid_field_raises_404: true\nmedia_url: /media\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := Settings{
		DisqusShortname:       "example",
		SortUp:                DefaultSortUp,
		SortDown:              DefaultSortDown,
		InvalidFieldRaises404: true,
		SortParam:             DefaultSortParam,
		DirectionParam:        DefaultDirectionParam,
		MediaURL:              "/media/",
	}
	if diff := cmp.Diff(want, settings); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	settings, err := Parse(nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(Default(), settings); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("debug: [")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pagetags.yaml")
	if err := os.WriteFile(path, []byte("disqus_shortname: from-file\nsort_up: '^'\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("PAGETAGS_DISQUS_WEBSITE_SHORTNAME", "from-env")
	t.Setenv("PAGETAGS_DEBUG", "true")

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.DisqusShortname != "from-env" {
		t.Fatalf("expected env shortname, got %q", settings.DisqusShortname)
	}
	if !settings.Debug {
		t.Fatalf("expected debug enabled from env")
	}
	if settings.SortUp != "^" {
		t.Fatalf("expected file sort_up, got %q", settings.SortUp)
	}
	if settings.SortDown != DefaultSortDown {
		t.Fatalf("expected default sort_down, got %q", settings.SortDown)
	}
}

func TestParseEnv_TrustForwardedProto(t *testing.T) {
	settings, err := Parse([]byte("debug: false\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if settings.TrustForwardedProto {
		t.Fatalf("forwarded proto must be untrusted by default")
	}

	t.Setenv("PAGETAGS_TRUST_FORWARDED_PROTO", "true")
	if err := ParseEnv(&settings); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if !settings.TrustForwardedProto {
		t.Fatalf("expected forwarded proto trusted from env")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseEnv_NilTarget(t *testing.T) {
	if err := ParseEnv(nil); err == nil {
		t.Fatalf("expected error for nil target")
	}
}
