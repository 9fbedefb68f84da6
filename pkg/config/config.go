// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/absrewrite/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

// 🎨 Defaults applied by Validate
const (
	DefaultInclude     = "**/*.txt"
	DefaultDebounce    = 120 * time.Millisecond
	DefaultInterval    = 500 * time.Millisecond
	DefaultConcurrency = 4
)

// 🔄 ModesConfig selects the output form of each comparison pattern
type ModesConfig struct {
	Eq string `json:"eq,omitempty" yaml:"eq,omitempty" hcl:"eq,optional"` // abs | square | split
	Le string `json:"le,omitempty" yaml:"le,omitempty" hcl:"le,optional"` // abs | square | range
}

// 📁 FilesConfig selects which files the batch operations visit
type FilesConfig struct {
	Include []string `json:"include,omitempty" yaml:"include,omitempty" hcl:"include,optional"` // doublestar globs relative to the config dir
	Ignore  []string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`    // doublestar globs to skip
}

// 📚 Config represents the complete configuration
type Config struct {
	Modes       *ModesConfig `json:"modes,omitempty" yaml:"modes,omitempty" hcl:"modes,block"`
	Files       *FilesConfig `json:"files,omitempty" yaml:"files,omitempty" hcl:"files,block"`
	Write       bool         `json:"write,omitempty" yaml:"write,omitempty" hcl:"write,optional"`
	Debounce    string       `json:"debounce,omitempty" yaml:"debounce,omitempty" hcl:"debounce,optional"`
	Interval    string       `json:"interval,omitempty" yaml:"interval,omitempty" hcl:"interval,optional"`
	Concurrency int          `json:"concurrency,omitempty" yaml:"concurrency,omitempty" hcl:"concurrency,optional"`

	location string
	modes    rewrite.Modes
	debounce time.Duration
	interval time.Duration
}

// 🏭 Default returns a validated config with every default applied
func Default() *Config {
	cfg := &Config{}
	if err := Validate(context.Background(), cfg); err != nil {
		// defaults are always valid
		panic(err)
	}
	return cfg
}

// 🔍 Validate checks the configuration, fills in defaults and resolves the
// typed views returned by RewriteModes, DebounceDuration and PollInterval
func Validate(ctx context.Context, cfg *Config) error {
	if cfg == nil {
		return errors.Errorf("config is nil")
	}

	if cfg.Modes == nil {
		cfg.Modes = &ModesConfig{}
	}
	eq, err := rewrite.ParseEqMode(cfg.Modes.Eq)
	if err != nil {
		return errors.Errorf("modes.eq: %w", err)
	}
	le, err := rewrite.ParseLeMode(cfg.Modes.Le)
	if err != nil {
		return errors.Errorf("modes.le: %w", err)
	}
	cfg.Modes.Eq, cfg.Modes.Le = string(eq), string(le)
	cfg.modes = rewrite.Modes{Eq: eq, Le: le}

	if cfg.Files == nil {
		cfg.Files = &FilesConfig{}
	}
	if len(cfg.Files.Include) == 0 {
		cfg.Files.Include = []string{DefaultInclude}
	}
	for i, pattern := range cfg.Files.Include {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("files.include[%d]: invalid glob %q", i, pattern)
		}
	}
	for i, pattern := range cfg.Files.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("files.ignore[%d]: invalid glob %q", i, pattern)
		}
	}

	if cfg.debounce, err = parseDuration("debounce", cfg.Debounce, DefaultDebounce); err != nil {
		return err
	}
	if cfg.interval, err = parseDuration("interval", cfg.Interval, DefaultInterval); err != nil {
		return err
	}

	if cfg.Concurrency < 0 {
		return errors.Errorf("concurrency must not be negative, got %d", cfg.Concurrency)
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	zerolog.Ctx(ctx).Debug().
		Str("eq", cfg.Modes.Eq).
		Str("le", cfg.Modes.Le).
		Strs("include", cfg.Files.Include).
		Strs("ignore", cfg.Files.Ignore).
		Dur("debounce", cfg.debounce).
		Msg("validated configuration")

	return nil
}

func parseDuration(field, value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.Errorf("%s: %w", field, err)
	}
	if d <= 0 {
		return 0, errors.Errorf("%s must be positive, got %s", field, value)
	}
	return d, nil
}

// 🔄 OverrideModes replaces the configured modes with any non-empty value
// and re-validates them
func (cfg *Config) OverrideModes(eq, le string) error {
	if cfg.Modes == nil {
		cfg.Modes = &ModesConfig{}
	}
	if eq != "" {
		m, err := rewrite.ParseEqMode(eq)
		if err != nil {
			return errors.Errorf("overriding eq mode: %w", err)
		}
		cfg.Modes.Eq = string(m)
		cfg.modes.Eq = m
	}
	if le != "" {
		m, err := rewrite.ParseLeMode(le)
		if err != nil {
			return errors.Errorf("overriding le mode: %w", err)
		}
		cfg.Modes.Le = string(m)
		cfg.modes.Le = m
	}
	return nil
}

// RewriteModes returns the validated mode pair.
func (cfg *Config) RewriteModes() rewrite.Modes {
	return cfg.modes
}

// DebounceDuration returns the watch coalescing window.
func (cfg *Config) DebounceDuration() time.Duration {
	return cfg.debounce
}

// PollInterval returns how often watch mode checks files for changes.
func (cfg *Config) PollInterval() time.Duration {
	return cfg.interval
}

// 📂 Root returns the directory file globs are resolved against
func (cfg *Config) Root() string {
	if cfg.location == "" {
		return "."
	}
	return filepath.Dir(cfg.location)
}

// Location returns the path the config was loaded from, if any.
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔑 Hash returns a stable hash of the user-facing configuration
func (cfg *Config) Hash() string {
	data, err := json.Marshal(cfg)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	var include []string
	if cfg.Files != nil {
		include = cfg.Files.Include
	}
	return fmt.Sprintf("eq=%s le=%s include=%v write=%t", cfg.modes.Eq, cfg.modes.Le, include, cfg.Write)
}
