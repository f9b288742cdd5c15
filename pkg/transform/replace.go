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

package transform

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/replacerc/pkg/config"
	"github.com/walteh/replacerc/pkg/template"
	"github.com/walteh/replacerc/pkg/walker"
	"gitlab.com/tozd/go/errors"
)

// 🔄 ReplaceSpec is a reversible template replacement: a before/after
// template pair sharing one registry, plus the mode flags and path filter it
// runs under. Immutable after NewReplace; the compiled replacer is built on
// first use and cached for the rest of the run.
type ReplaceSpec struct {
	before         *template.Tokens
	after          *template.Tokens
	registry       template.Registry
	firstOnly      bool
	multiline      bool
	repeatedGroups bool
	filter         walker.Filter

	compileOnce sync.Once
	replacer    *template.Replacer
	compileErr  error
}

var _ Transformation = (*ReplaceSpec)(nil)

// 🏭 NewReplace builds a ReplaceSpec from a config descriptor. All
// configuration-time validation happens here, before any file is touched:
// the regex groups must compile, the before template must parse, reference
// only declared names, and use every declared name.
func NewReplace(d *config.Replace) (*ReplaceSpec, error) {
	registry, err := template.CompileGroups(d.Location, d.RegexGroups)
	if err != nil {
		return nil, err
	}

	before, err := template.Tokenize(d.Location, d.Before, d.RepeatedGroups)
	if err != nil {
		return nil, err
	}
	after, err := template.Tokenize(d.Location, d.After, d.RepeatedGroups)
	if err != nil {
		return nil, err
	}

	if err := before.ValidateDefined(registry); err != nil {
		return nil, err
	}
	// Declared groups must all be used by the match side. The after
	// template is deliberately not validated here: names it drops or adds
	// only matter when it becomes the match side of a reversed spec.
	if err := before.ValidateUnused(registry); err != nil {
		return nil, err
	}

	filter, err := walker.NewGlobFilter(d.Paths, d.Ignore)
	if err != nil {
		return nil, errors.Errorf("%s: %w", d.Location, err)
	}

	return &ReplaceSpec{
		before:         before,
		after:          after,
		registry:       registry,
		firstOnly:      d.FirstOnly,
		multiline:      d.Multiline,
		repeatedGroups: d.RepeatedGroups,
		filter:         filter,
	}, nil
}

// 🏭 FromConfig builds the ordered transformation sequence a config file
// declares. Any invalid block fails the whole load.
func FromConfig(cfg *config.Config) ([]Transformation, error) {
	transformations := make([]Transformation, 0, len(cfg.Replacements))
	for i := range cfg.Replacements {
		spec, err := NewReplace(&cfg.Replacements[i])
		if err != nil {
			return nil, errors.Errorf("building replacement %d: %w", i, err)
		}
		transformations = append(transformations, spec)
	}
	return transformations, nil
}

// Describe returns the transformation's string identity. The before template
// is almost always unique, so it is good enough to identify the transform.
func (s *ReplaceSpec) Describe() string {
	return "Replace " + s.before.String()
}

// Filter returns the path filter the spec was configured with.
func (s *ReplaceSpec) Filter() walker.Filter {
	return s.filter
}

// Replacer returns the compiled matcher/replacer pair, building it on first
// call. A placeholder in the after template with no capture in the before
// template surfaces here, before any file is read.
func (s *ReplaceSpec) Replacer() (*template.Replacer, error) {
	s.compileOnce.Do(func() {
		s.replacer, s.compileErr = template.NewReplacer(s.before, s.after, s.registry, template.Options{
			FirstOnly: s.firstOnly,
			Multiline: s.multiline,
		})
	})
	return s.replacer, s.compileErr
}

// 🏃 Apply runs the compiled replacer over every file the tree yields.
func (s *ReplaceSpec) Apply(ctx context.Context, tree *walker.Tree, opts walker.Options) (*walker.VisitResult, error) {
	replacer, err := s.Replacer()
	if err != nil {
		return nil, err
	}

	result, err := tree.Apply(ctx, replacer, opts)
	if err != nil {
		return nil, errors.Errorf("applying %s: %w", s.Describe(), err)
	}

	zerolog.Ctx(ctx).Info().
		Str("transformation", s.Describe()).
		Int("files_visited", result.FilesVisited).
		Int("files_changed", result.FilesChanged).
		Msg("applied transformation")

	return result, nil
}

// 🔁 Reverse swaps the before and after templates, after validating that the
// after template can serve as a match side: every name it references must be
// declared and every declared name must be used. Pure function, no I/O.
func (s *ReplaceSpec) Reverse() (Transformation, error) {
	if err := s.after.ValidateDefined(s.registry); err != nil {
		return nil, &NonReversibleError{Location: s.after.Location(), Cause: err}
	}
	if err := s.after.ValidateUnused(s.registry); err != nil {
		return nil, &NonReversibleError{Location: s.after.Location(), Cause: err}
	}
	return &ReplaceSpec{
		before:         s.after,
		after:          s.before,
		registry:       s.registry,
		firstOnly:      s.firstOnly,
		multiline:      s.multiline,
		repeatedGroups: s.repeatedGroups,
		filter:         s.filter,
	}, nil
}
