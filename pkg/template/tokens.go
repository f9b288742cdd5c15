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
	"fmt"
	"strings"
)

// 🏷️ TokenKind discriminates literal text from interpolation references.
type TokenKind int

const (
	KindLiteral TokenKind = iota
	KindPlaceholder
)

// 🎫 Token is one segment of a tokenized template: either literal text or a
// reference to a named interpolation.
type Token struct {
	Kind  TokenKind
	Value string // literal text, or the interpolation name
}

// 📜 Tokens is an ordered sequence of template segments plus the config
// location the template was declared at. Immutable after Tokenize.
type Tokens struct {
	location Location
	text     string
	list     []Token
}

// 🏭 Tokenize scans a template left to right, splitting it into literal runs
// and ${name} interpolations. A '$' not followed by '{' is literal text.
// When repeatedGroups is false, a name appearing twice yields a
// *DuplicatePlaceholderError; otherwise each occurrence is tracked
// independently by position.
func Tokenize(loc Location, text string, repeatedGroups bool) (*Tokens, error) {
	t := &Tokens{location: loc, text: text}
	seen := map[string]bool{}

	var literal strings.Builder
	rest := text
	for {
		idx := strings.Index(rest, "${")
		if idx < 0 {
			literal.WriteString(rest)
			break
		}
		literal.WriteString(rest[:idx])
		rest = rest[idx+2:]

		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return nil, &ParseError{Msg: fmt.Sprintf("unterminated '${' in template %q", text), Location: loc}
		}
		name := rest[:end]
		rest = rest[end+1:]

		if !validName(name) {
			return nil, &ParseError{Msg: fmt.Sprintf("invalid interpolation name '%s' in template %q", name, text), Location: loc}
		}
		if seen[name] && !repeatedGroups {
			return nil, &DuplicatePlaceholderError{Name: name, Location: loc}
		}
		seen[name] = true

		if literal.Len() > 0 {
			t.list = append(t.list, Token{Kind: KindLiteral, Value: literal.String()})
			literal.Reset()
		}
		t.list = append(t.list, Token{Kind: KindPlaceholder, Value: name})
	}
	if literal.Len() > 0 {
		t.list = append(t.list, Token{Kind: KindLiteral, Value: literal.String()})
	}
	return t, nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

// Location returns the config location the template was declared at.
func (t *Tokens) Location() Location {
	return t.location
}

// String returns the original template text. The before-template's text is
// used as the string identity of a whole transformation.
func (t *Tokens) String() string {
	return t.text
}

// Has reports whether the template references the given interpolation name.
func (t *Tokens) Has(name string) bool {
	for _, tok := range t.list {
		if tok.Kind == KindPlaceholder && tok.Value == name {
			return true
		}
	}
	return false
}

// ✅ ValidateDefined checks that every interpolation referenced by the
// template is declared in the registry. The before template is checked at
// construction; the after template only when it is about to become the
// before side of a reversed replacement.
func (t *Tokens) ValidateDefined(reg Registry) error {
	for _, tok := range t.list {
		if tok.Kind != KindPlaceholder {
			continue
		}
		if _, ok := reg[tok.Value]; !ok {
			return &UnknownPlaceholderError{Name: tok.Value, Location: t.location}
		}
	}
	return nil
}

// ✅ ValidateUnused checks that every name declared in the registry is
// referenced at least once by the template.
func (t *Tokens) ValidateUnused(reg Registry) error {
	for _, name := range reg.Names() {
		if !t.Has(name) {
			return &UnusedInterpolationError{Name: name, Location: t.location}
		}
	}
	return nil
}
