// Package config loads the site settings shared by the page tags. Values come
// from an optional YAML file and are then overlaid by PAGETAGS_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSortUp         = "&uarr;"
	DefaultSortDown       = "&darr;"
	DefaultSortParam      = "sort"
	DefaultDirectionParam = "direction"
	DefaultMediaURL       = "/static/"
	envPrefix             = "PAGETAGS_"
)

// Settings mirrors the handful of site-wide knobs the tags read.
type Settings struct {
	// Debug enables the comment service developer mode snippet.
	Debug bool `yaml:"debug" env:"DEBUG"`
	// DisqusShortname identifies the site with the comment service.
	DisqusShortname string `yaml:"disqus_shortname" env:"DISQUS_WEBSITE_SHORTNAME"`

	SortUp                string `yaml:"sort_up" env:"DEFAULT_SORT_UP"`
	SortDown              string `yaml:"sort_down" env:"DEFAULT_SORT_DOWN"`
	InvalidFieldRaises404 bool   `yaml:"invalid_field_raises_404" env:"SORTING_INVALID_FIELD_RAISES_404"`
	SortParam             string `yaml:"sort_param" env:"SORT_PARAM"`
	DirectionParam        string `yaml:"direction_param" env:"DIRECTION_PARAM"`

	// MediaURL prefixes the form helper stylesheet and script URLs.
	MediaURL string `yaml:"media_url" env:"MEDIA_URL"`

	// TrustForwardedProto honours X-Forwarded-Proto when building the page
	// URL handed to the comment service.
	TrustForwardedProto bool `yaml:"trust_forwarded_proto" env:"TRUST_FORWARDED_PROTO"`
}

// Default returns settings with every optional value populated.
func Default() Settings {
	return Settings{
		SortUp:         DefaultSortUp,
		SortDown:       DefaultSortDown,
		SortParam:      DefaultSortParam,
		DirectionParam: DefaultDirectionParam,
		MediaURL:       DefaultMediaURL,
	}
}

// Normalize fills blank values with defaults and trims whitespace.
func (s Settings) Normalize() Settings {
	defaults := Default()
	s.DisqusShortname = strings.TrimSpace(s.DisqusShortname)
	if strings.TrimSpace(s.SortUp) == "" {
		s.SortUp = defaults.SortUp
	}
	if strings.TrimSpace(s.SortDown) == "" {
		s.SortDown = defaults.SortDown
	}
	if s.SortParam = strings.TrimSpace(s.SortParam); s.SortParam == "" {
		s.SortParam = defaults.SortParam
	}
	if s.DirectionParam = strings.TrimSpace(s.DirectionParam); s.DirectionParam == "" {
		s.DirectionParam = defaults.DirectionParam
	}
	if s.MediaURL = strings.TrimSpace(s.MediaURL); s.MediaURL == "" {
		s.MediaURL = defaults.MediaURL
	}
	if !strings.HasSuffix(s.MediaURL, "/") {
		s.MediaURL += "/"
	}
	return s
}

// Load reads settings from path (skipped when empty) and applies environment
// overrides.
func Load(path string) (Settings, error) {
	settings := Default()

	path = strings.TrimSpace(path)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("config: read %q: %w", path, err)
		}
		parsed, err := Parse(data)
		if err != nil {
			return Settings{}, err
		}
		settings = parsed
	}

	if err := ParseEnv(&settings); err != nil {
		return Settings{}, err
	}
	return settings.Normalize(), nil
}

// Parse decodes YAML settings on top of the defaults.
func Parse(data []byte) (Settings, error) {
	settings := Default()
	if len(strings.TrimSpace(string(data))) == 0 {
		return settings, nil
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("config: decode yaml: %w", err)
	}
	return settings.Normalize(), nil
}

// ParseEnv overlays PAGETAGS_* environment variables onto target.
func ParseEnv(target *Settings) error {
	if target == nil {
		return errors.New("config: settings target is nil")
	}
	if err := env.ParseWithOptions(target, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}
