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
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/replacerc/pkg/template"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, filename string, data []byte) (*Config, error)

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

// 🔄 Replace describes one reversible template replacement
type Replace struct {
	Before         string            `json:"before" yaml:"before"`
	After          string            `json:"after" yaml:"after"`
	RegexGroups    map[string]string `json:"regex_groups,omitempty" yaml:"regex_groups,omitempty"`
	Paths          []string          `json:"paths,omitempty" yaml:"paths,omitempty"`
	Ignore         []string          `json:"ignore,omitempty" yaml:"ignore,omitempty"`
	FirstOnly      bool              `json:"first_only,omitempty" yaml:"first_only,omitempty"`
	Multiline      bool              `json:"multiline,omitempty" yaml:"multiline,omitempty"`
	RepeatedGroups bool              `json:"repeated_groups,omitempty" yaml:"repeated_groups,omitempty"`

	// Location is where the block was declared, filled in by the parser.
	Location template.Location `json:"-" yaml:"-"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Root         string    `json:"root,omitempty" yaml:"root,omitempty"`
	Replacements []Replace `json:"replace" yaml:"replace"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, path, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if len(cfg.Replacements) == 0 {
		return errors.Errorf("at least one replace block is required")
	}
	for i, r := range cfg.Replacements {
		if r.Before == "" {
			return errors.Errorf("%s: replace %d: before is required", r.Location, i)
		}
	}

	// Set defaults
	if cfg.Root == "" {
		cfg.Root = "."
	}
	cfg.Root = filepath.Clean(cfg.Root)

	return nil
}
