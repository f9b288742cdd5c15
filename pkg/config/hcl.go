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

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/walteh/replacerc/pkg/template"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

type hclReplace struct {
	Before         string            `hcl:"before"`
	After          string            `hcl:"after,optional"`
	RegexGroups    map[string]string `hcl:"regex_groups,optional"`
	Paths          []string          `hcl:"paths,optional"`
	Ignore         []string          `hcl:"ignore,optional"`
	FirstOnly      bool              `hcl:"first_only,optional"`
	Multiline      bool              `hcl:"multiline,optional"`
	RepeatedGroups bool              `hcl:"repeated_groups,optional"`
}

type hclConfig struct {
	Root         string       `hcl:"root,optional"`
	Replacements []hclReplace `hcl:"replace,block"`
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, filename string, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var raw hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &raw)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{Root: raw.Root}
	for _, block := range raw.Replacements {
		cfg.Replacements = append(cfg.Replacements, Replace{
			Before:         block.Before,
			After:          block.After,
			RegexGroups:    block.RegexGroups,
			Paths:          block.Paths,
			Ignore:         block.Ignore,
			FirstOnly:      block.FirstOnly,
			Multiline:      block.Multiline,
			RepeatedGroups: block.RepeatedGroups,
			Location:       template.Location{File: filename},
		})
	}

	// Block declaration lines come from the syntax tree; gohcl keeps block
	// order so the two walks line up.
	if body, ok := hclFile.Body.(*hclsyntax.Body); ok {
		i := 0
		for _, block := range body.Blocks {
			if block.Type != "replace" || i >= len(cfg.Replacements) {
				continue
			}
			cfg.Replacements[i].Location.Line = block.DefRange().Start.Line
			i++
		}
	}

	return cfg, nil
}
