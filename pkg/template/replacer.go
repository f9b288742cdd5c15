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
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔧 Options selects the matching mode of a compiled replacer.
type Options struct {
	// FirstOnly replaces only the first match within scope: the whole
	// content when Multiline is set, otherwise the first matching line.
	FirstOnly bool
	// Multiline matches against the whole content, with '.' crossing line
	// terminators and '^'/'$' anchoring at line boundaries. When unset,
	// matching is performed line by line.
	Multiline bool
}

// ⚙️ Replacer is the executable form of a before/after template pair: a
// composite pattern compiled from the before template and a substitution
// recipe compiled from the after template. Immutable after NewReplacer, safe
// to share across files within a run.
type Replacer struct {
	pattern   *regexp.Regexp
	recipe    []Token
	groups    map[string][]int // name -> 1-based submatch indexes, occurrence order
	firstOnly bool
	multiline bool
}

// 🏭 NewReplacer compiles the before template into a single pattern, with one
// capturing group per interpolation occurrence, and the after template into a
// substitution recipe resolving those captures by name. Every interpolation
// the after side references must be captured by the before side.
func NewReplacer(before, after *Tokens, reg Registry, opts Options) (*Replacer, error) {
	if err := before.ValidateDefined(reg); err != nil {
		return nil, err
	}

	var pattern strings.Builder
	if opts.Multiline {
		pattern.WriteString("(?sm)")
	}
	groups := map[string][]int{}
	next := 1
	for _, tok := range before.list {
		if tok.Kind == KindLiteral {
			pattern.WriteString(regexp.QuoteMeta(tok.Value))
			continue
		}
		// Each occurrence gets its own capturing group, never a
		// backreference. Groups inside the user fragment shift the
		// submatch index of every following occurrence.
		fragment := reg[tok.Value]
		pattern.WriteString("(")
		pattern.WriteString(fragment.String())
		pattern.WriteString(")")
		groups[tok.Value] = append(groups[tok.Value], next)
		next += 1 + fragment.NumSubexp()
	}

	for _, tok := range after.list {
		if tok.Kind != KindPlaceholder {
			continue
		}
		if _, ok := reg[tok.Value]; !ok {
			return nil, &UnknownPlaceholderError{Name: tok.Value, Location: after.location}
		}
		if _, ok := groups[tok.Value]; !ok {
			return nil, errors.Errorf("%s: interpolation '%s' is not captured by the before template", after.location, tok.Value)
		}
	}

	compiled, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, errors.Errorf("compiling composite pattern %q: %w", pattern.String(), err)
	}

	return &Replacer{
		pattern:   compiled,
		recipe:    after.list,
		groups:    groups,
		firstOnly: opts.FirstOnly,
		multiline: opts.Multiline,
	}, nil
}

// Pattern returns the source of the composite matching pattern.
func (r *Replacer) Pattern() string {
	return r.pattern.String()
}

// 🔄 Replace rewrites every match of the before template in content with the
// after template. Scope and match count follow Options: in multiline mode the
// whole content is one scope, otherwise each line is scanned on its own and
// FirstOnly stops after the first matching line.
func (r *Replacer) Replace(content string) string {
	if r.multiline {
		return r.replaceScope(content, r.firstOnly)
	}

	var out strings.Builder
	out.Grow(len(content))
	done := false
	rest := content
	for len(rest) > 0 {
		line := rest
		terminator := ""
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, terminator, rest = rest[:i], "\n", rest[i+1:]
		} else {
			rest = ""
		}
		if terminator != "" && strings.HasSuffix(line, "\r") {
			line, terminator = line[:len(line)-1], "\r\n"
		}

		switch {
		case !r.firstOnly:
			line = r.replaceScope(line, false)
		case !done:
			if loc := r.pattern.FindStringSubmatchIndex(line); loc != nil {
				line = line[:loc[0]] + r.expand(line, loc) + line[loc[1]:]
				done = true
			}
		}
		out.WriteString(line)
		out.WriteString(terminator)
	}
	return out.String()
}

// replaceScope rewrites matches within a single scope (one line, or the
// whole content in multiline mode).
func (r *Replacer) replaceScope(s string, firstOnly bool) string {
	if firstOnly {
		loc := r.pattern.FindStringSubmatchIndex(s)
		if loc == nil {
			return s
		}
		return s[:loc[0]] + r.expand(s, loc) + s[loc[1]:]
	}

	locs := r.pattern.FindAllStringSubmatchIndex(s, -1)
	if locs == nil {
		return s
	}
	var out strings.Builder
	out.Grow(len(s))
	last := 0
	for _, loc := range locs {
		out.WriteString(s[last:loc[0]])
		out.WriteString(r.expand(s, loc))
		last = loc[1]
	}
	out.WriteString(s[last:])
	return out.String()
}

// expand renders the substitution recipe for one match. When a name was
// captured more than once, the first occurrence wins.
func (r *Replacer) expand(s string, loc []int) string {
	var out strings.Builder
	for _, tok := range r.recipe {
		if tok.Kind == KindLiteral {
			out.WriteString(tok.Value)
			continue
		}
		g := r.groups[tok.Value][0]
		if start, end := loc[2*g], loc[2*g+1]; start >= 0 {
			out.WriteString(s[start:end])
		}
	}
	return out.String()
}
