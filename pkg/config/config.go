// Copyright 2025 ticktools LLC
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
	"os"

	"github.com/rs/zerolog"
	"github.com/ticktools/doctick/pkg/annotate"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

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

// 📚 Config represents the complete configuration
type Config struct {
	Root    string   `json:"root" yaml:"root"`                           // Directory to walk
	Include []string `json:"include" yaml:"include"`                     // Globs for files to process
	Ignore  []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`   // Globs for files to skip
	Marker  string   `json:"marker,omitempty" yaml:"marker,omitempty"`   // Doc comment marker
	DryRun  bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty"` // Count changes without writing
	Async   bool     `json:"async,omitempty" yaml:"async,omitempty"`     // Process files in parallel
}

// 🏭 Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Root:    ".",
		Include: []string{"src/**/*.rs"},
		Marker:  annotate.DefaultMarker,
	}
}

// 🎯 Load loads the configuration from a file. A missing file is not an
// error: the defaults apply.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("no config file, using defaults")
			return Default(), nil
		}
		return nil, errors.Errorf("reading config file: %w", err)
	}
	logger.Debug().Str("path", path).Msg("loading configuration")

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// 🔧 applyDefaults fills in zero-valued fields.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Root == "" {
		c.Root = def.Root
	}
	if len(c.Include) == 0 {
		c.Include = def.Include
	}
	if c.Marker == "" {
		c.Marker = def.Marker
	}
}

// ✅ Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.Errorf("root is required")
	}
	if len(c.Include) == 0 {
		return errors.Errorf("at least one include pattern is required")
	}
	if c.Marker == "" {
		return errors.Errorf("marker is required")
	}
	return nil
}
