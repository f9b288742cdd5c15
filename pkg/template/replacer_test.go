package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildReplacer compiles a replacer from raw template and group sources.
func buildReplacer(t *testing.T, before, after string, groups map[string]string, repeated bool, opts Options) *Replacer {
	t.Helper()
	reg, err := CompileGroups(Location{}, groups)
	require.NoError(t, err)
	beforeTokens, err := Tokenize(Location{}, before, repeated)
	require.NoError(t, err)
	afterTokens, err := Tokenize(Location{}, after, repeated)
	require.NoError(t, err)
	r, err := NewReplacer(beforeTokens, afterTokens, reg, opts)
	require.NoError(t, err)
	return r
}

func TestReplacer_Replace(t *testing.T) {
	tests := []struct {
		name     string
		before   string
		after    string
		groups   map[string]string
		repeated bool
		opts     Options
		content  string
		want     string
	}{
		{
			name:    "simple_swap",
			before:  "foo${x}bar",
			after:   "bar${x}foo",
			groups:  map[string]string{"x": "[A-Z]+"},
			content: "fooABCDbar",
			want:    "barABCDfoo",
		},
		{
			name:    "no_match_is_identity",
			before:  "foo${x}bar",
			after:   "bar${x}foo",
			groups:  map[string]string{"x": "[A-Z]+"},
			content: "nothing to see here",
			want:    "nothing to see here",
		},
		{
			name:    "literal_metacharacters_escaped",
			before:  "a.b${x}",
			after:   "c${x}",
			groups:  map[string]string{"x": "[0-9]+"},
			content: "a.b42 axb42",
			want:    "c42 axb42",
		},
		{
			name:    "all_lines_all_matches",
			before:  "foo${x}bar",
			after:   "bar${x}foo",
			groups:  map[string]string{"x": "[A-Z]+"},
			content: "fooABbar fooCDbar\nfooEFbar\n",
			want:    "barABfoo barCDfoo\nbarEFfoo\n",
		},
		{
			name:    "first_only_first_matching_line",
			before:  "foo${x}bar",
			after:   "bar${x}foo",
			groups:  map[string]string{"x": "[A-Z]+"},
			opts:    Options{FirstOnly: true},
			content: "fooABCDbar\nfooABCDbar\n",
			want:    "barABCDfoo\nfooABCDbar\n",
		},
		{
			name:    "first_only_skips_unmatched_lines",
			before:  "foo${x}bar",
			after:   "bar${x}foo",
			groups:  map[string]string{"x": "[A-Z]+"},
			opts:    Options{FirstOnly: true},
			content: "nothing\nfooABbar fooCDbar\nfooEFbar\n",
			want:    "nothing\nbarABfoo fooCDbar\nfooEFbar\n",
		},
		{
			name:    "first_only_multiline_blob",
			before:  "foo${x}bar",
			after:   "bar${x}foo",
			groups:  map[string]string{"x": "[A-Z]+"},
			opts:    Options{FirstOnly: true, Multiline: true},
			content: "start fooABbar\nmore fooCDbar end\n",
			want:    "start barABfoo\nmore fooCDbar end\n",
		},
		{
			name:    "multiline_all_matches",
			before:  "foo${x}bar",
			after:   "bar${x}foo",
			groups:  map[string]string{"x": "[A-Z]+"},
			opts:    Options{Multiline: true},
			content: "fooABbar\nfooCDbar",
			want:    "barABfoo\nbarCDfoo",
		},
		{
			name:    "multiline_dot_crosses_lines",
			before:  "begin${x}end",
			after:   "<${x}>",
			groups:  map[string]string{"x": ".+"},
			opts:    Options{Multiline: true},
			content: "beginA\nBend",
			want:    "<A\nB>",
		},
		{
			name:     "repeated_groups_first_occurrence_wins",
			before:   "${x}-${x}",
			after:    "${x}",
			groups:   map[string]string{"x": "[0-9]+"},
			repeated: true,
			content:  "12-34",
			want:     "12",
		},
		{
			name:     "repeated_groups_each_occurrence_independent",
			before:   "${x}-${x}",
			after:    "[${x}]",
			groups:   map[string]string{"x": "[0-9]+"},
			repeated: true,
			content:  "1-2 3-4",
			want:     "[1] [3]",
		},
		{
			name:    "fragment_with_inner_groups",
			before:  "${x}:${y}",
			after:   "${y}-${x}",
			groups:  map[string]string{"x": "([0-9])([0-9])", "y": "(a|b)+"},
			content: "42:ab",
			want:    "ab-42",
		},
		{
			name:    "after_drops_placeholder",
			before:  "v${major}.${minor}",
			after:   "v${major}",
			groups:  map[string]string{"major": "[0-9]+", "minor": "[0-9]+"},
			content: "v1.7",
			want:    "v1",
		},
		{
			name:    "crlf_terminators_preserved",
			before:  "foo${x}bar",
			after:   "bar${x}foo",
			groups:  map[string]string{"x": "[A-Z]+"},
			opts:    Options{FirstOnly: true},
			content: "fooABbar\r\nfooCDbar\r\n",
			want:    "barABfoo\r\nfooCDbar\r\n",
		},
		{
			name:    "empty_content",
			before:  "foo${x}bar",
			after:   "bar${x}foo",
			groups:  map[string]string{"x": "[A-Z]+"},
			content: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := buildReplacer(t, tt.before, tt.after, tt.groups, tt.repeated, tt.opts)
			assert.Equal(t, tt.want, r.Replace(tt.content))
		})
	}
}

func TestNewReplacer_Validation(t *testing.T) {
	reg, err := CompileGroups(Location{}, map[string]string{"x": "[0-9]+"})
	require.NoError(t, err)

	before, err := Tokenize(Location{}, "a${x}b", false)
	require.NoError(t, err)

	t.Run("after_references_undeclared_name", func(t *testing.T) {
		after, err := Tokenize(Location{File: "t.yaml", Line: 4}, "b${y}a", false)
		require.NoError(t, err)

		_, err = NewReplacer(before, after, reg, Options{})
		var unknownErr *UnknownPlaceholderError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "y", unknownErr.Name)
	})

	t.Run("before_references_undeclared_name", func(t *testing.T) {
		badBefore, err := Tokenize(Location{}, "a${z}b", false)
		require.NoError(t, err)
		after, err := Tokenize(Location{}, "b", false)
		require.NoError(t, err)

		_, err = NewReplacer(badBefore, after, reg, Options{})
		var unknownErr *UnknownPlaceholderError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "z", unknownErr.Name)
	})

	t.Run("after_references_uncaptured_name", func(t *testing.T) {
		twoReg, err := CompileGroups(Location{}, map[string]string{"x": "[0-9]+", "y": "[a-z]+"})
		require.NoError(t, err)
		after, err := Tokenize(Location{}, "b${y}a", false)
		require.NoError(t, err)

		_, err = NewReplacer(before, after, twoReg, Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not captured by the before template")
	})
}

func TestReplacer_Pattern(t *testing.T) {
	r := buildReplacer(t, "foo${x}bar", "bar${x}foo", map[string]string{"x": "[A-Z]+"}, false, Options{})
	assert.Equal(t, "foo([A-Z]+)bar", r.Pattern())
}
