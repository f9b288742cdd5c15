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
	"strings"

	"github.com/walteh/replacerc/pkg/template"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, filename string, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	for i := range cfg.Replacements {
		cfg.Replacements[i].Location.File = filename
	}

	return &cfg, nil
}

// replaceKeys is the set of keys a replace block may carry. Decoding through
// a custom unmarshaler loses the outer decoder's KnownFields strictness, so
// keys are checked by hand before decoding.
var replaceKeys = map[string]bool{
	"before":          true,
	"after":           true,
	"regex_groups":    true,
	"paths":           true,
	"ignore":          true,
	"first_only":      true,
	"multiline":       true,
	"repeated_groups": true,
}

// UnmarshalYAML records the declaring line so template errors can point at
// the offending config block.
func (r *Replace) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if !replaceKeys[key.Value] {
				return errors.Errorf("line %d: field %s not found in replace block", key.Line, key.Value)
			}
		}
	}

	type plain Replace
	var tmp plain
	if err := node.Decode(&tmp); err != nil {
		return err
	}
	*r = Replace(tmp)
	r.Location = template.Location{Line: node.Line}
	return nil
}
