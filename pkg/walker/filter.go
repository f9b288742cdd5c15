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

package walker

import (
	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🔍 GlobFilter accepts paths matching any include pattern and no ignore
// pattern. Patterns use doublestar syntax against slash-separated relative
// paths. No include patterns means include everything.
type GlobFilter struct {
	include []string
	ignore  []string
}

// 🏭 NewGlobFilter validates the patterns and builds a filter.
func NewGlobFilter(include, ignore []string) (*GlobFilter, error) {
	for _, pattern := range append(append([]string{}, include...), ignore...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid path pattern: %s", pattern)
		}
	}
	return &GlobFilter{include: include, ignore: ignore}, nil
}

// Accepts implements Filter.
func (f *GlobFilter) Accepts(relPath string) bool {
	for _, pattern := range f.ignore {
		if matched, _ := doublestar.Match(pattern, relPath); matched {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, pattern := range f.include {
		if matched, _ := doublestar.Match(pattern, relPath); matched {
			return true
		}
	}
	return false
}
