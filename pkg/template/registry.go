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

package template

import (
	"regexp"
	"sort"
)

// 🗺️ Registry maps interpolation names to their compiled patterns. It is
// shared, read-only, by the before and after templates of one replacement.
type Registry map[string]*regexp.Regexp

// 🏭 CompileGroups builds a Registry from raw regex sources, as declared in
// a 'regex_groups' config mapping. A fragment that does not compile yields an
// *InvalidPatternError naming the offending key.
func CompileGroups(loc Location, groups map[string]string) (Registry, error) {
	reg := make(Registry, len(groups))
	for name, source := range groups {
		re, err := regexp.Compile(source)
		if err != nil {
			return nil, &InvalidPatternError{
				Name:     name,
				Source:   source,
				Location: loc,
				Cause:    err,
			}
		}
		reg[name] = re
	}
	return reg, nil
}

// Names returns the declared interpolation names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
