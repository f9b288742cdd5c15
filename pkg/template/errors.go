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

import "fmt"

// 📍 Location points at the config source that declared a template or
// regex group. The zero value renders as "<unknown>".
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	if l.File == "" && l.Line == 0 {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// ❌ InvalidPatternError reports a regex group whose pattern does not compile.
type InvalidPatternError struct {
	Name     string
	Source   string
	Location Location
	Cause    error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("%s: 'regex_groups' includes invalid regex for key %s: %s: %v",
		e.Location, e.Name, e.Source, e.Cause)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Cause
}

// ❌ ParseError reports malformed interpolation syntax in a template.
type ParseError struct {
	Msg      string
	Location Location
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Msg)
}

// ❌ UnknownPlaceholderError reports a template referencing a name that is
// not declared in the registry it is validated against.
type UnknownPlaceholderError struct {
	Name     string
	Location Location
}

func (e *UnknownPlaceholderError) Error() string {
	return fmt.Sprintf("%s: interpolation '%s' is not defined in 'regex_groups'", e.Location, e.Name)
}

// ❌ DuplicatePlaceholderError reports a name used twice within one template
// while repeated groups are disallowed.
type DuplicatePlaceholderError struct {
	Name     string
	Location Location
}

func (e *DuplicatePlaceholderError) Error() string {
	return fmt.Sprintf("%s: interpolation '%s' is used more than once; set repeated_groups to allow this", e.Location, e.Name)
}

// ❌ UnusedInterpolationError reports a declared regex group that a template
// never references.
type UnusedInterpolationError struct {
	Name     string
	Location Location
}

func (e *UnusedInterpolationError) Error() string {
	return fmt.Sprintf("%s: interpolation '%s' is not used in the template", e.Location, e.Name)
}
