package config

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte, filename string) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

// 🗺️ parsers is a list of available parsers
var parsers []Parser

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// LoadConfig loads a configuration file from the given path.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
// - .absrewrite will try both YAML and HCL formats
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var cfg *Config
	if isBareConfigName(path) {
		cfg, err = (&YAMLParser{}).Parse(ctx, data, path)
		if err != nil {
			var hclErr error
			cfg, hclErr = (&HCLParser{}).Parse(ctx, data, path)
			if hclErr != nil {
				return nil, errors.Errorf("failed to parse %s as YAML or HCL: %w", filepath.Base(path), hclErr)
			}
		}
	} else {
		p := GetParser(path)
		if p == nil {
			return nil, errors.Errorf("unsupported file extension %q", filepath.Ext(path))
		}
		cfg, err = p.Parse(ctx, data, path)
		if err != nil {
			return nil, err
		}
	}

	cfg.location = path
	if err := Validate(ctx, cfg); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not
// exist. Globs of the default config still resolve against the directory of
// path.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	cfg, err := LoadConfig(ctx, path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("config file not found, using defaults")
	cfg = Default()
	cfg.location = path
	return cfg, nil
}

func isBareConfigName(path string) bool {
	base := filepath.Base(path)
	return base == ".absrewrite" || strings.EqualFold(filepath.Ext(path), ".absrewrite")
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".yaml" || ext == ".yml"
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte, filename string) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		// an empty document is a valid, all-defaults config
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}
