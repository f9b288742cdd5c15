package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "replacerc.yaml", `root: src
replace:
  - before: "foo${x}bar"
    after: "bar${x}foo"
    regex_groups:
      x: "[A-Z]+"
    paths: ["**/*.go"]
    ignore: ["vendor/**"]
    first_only: true
  - before: "v${n}"
    after: "version ${n}"
    regex_groups:
      n: "[0-9]+"
    multiline: true
    repeated_groups: true
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "src", cfg.Root)
	require.Len(t, cfg.Replacements, 2)

	first := cfg.Replacements[0]
	assert.Equal(t, "foo${x}bar", first.Before)
	assert.Equal(t, "bar${x}foo", first.After)
	assert.Equal(t, map[string]string{"x": "[A-Z]+"}, first.RegexGroups)
	assert.Equal(t, []string{"**/*.go"}, first.Paths)
	assert.Equal(t, []string{"vendor/**"}, first.Ignore)
	assert.True(t, first.FirstOnly)
	assert.False(t, first.Multiline)
	assert.Equal(t, path, first.Location.File)
	assert.Equal(t, 3, first.Location.Line)

	second := cfg.Replacements[1]
	assert.True(t, second.Multiline)
	assert.True(t, second.RepeatedGroups)
	assert.Equal(t, 10, second.Location.Line)
}

func TestLoad_YAML_UnknownField(t *testing.T) {
	path := writeConfig(t, "replacerc.yaml", `bogus: true
replace:
  - before: "a"
    after: "b"
`)

	_, err := Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestLoad_YAML_UnknownFieldInReplaceBlock(t *testing.T) {
	// A typo'd mode flag must fail the load, not silently run with the
	// wrong semantics.
	path := writeConfig(t, "replacerc.yaml", `replace:
  - before: "a"
    after: "b"
    frist_only: true
`)

	_, err := Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frist_only")
	assert.Contains(t, err.Error(), "line 4")
}

func TestLoad_HCL(t *testing.T) {
	path := writeConfig(t, "replacerc.hcl", `root = "src"

replace {
  before = "foo${x}bar"
  after  = "bar${x}foo"
  regex_groups = {
    x = "[A-Z]+"
  }
  paths      = ["**/*.go"]
  first_only = true
}

replace {
  before    = "old"
  after     = "new"
  multiline = true
}
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "src", cfg.Root)
	require.Len(t, cfg.Replacements, 2)

	first := cfg.Replacements[0]
	assert.Equal(t, "foo${x}bar", first.Before)
	assert.Equal(t, map[string]string{"x": "[A-Z]+"}, first.RegexGroups)
	assert.True(t, first.FirstOnly)
	assert.Equal(t, path, first.Location.File)
	assert.Equal(t, 3, first.Location.Line)

	second := cfg.Replacements[1]
	assert.Equal(t, "old", second.Before)
	assert.True(t, second.Multiline)
	assert.Equal(t, 13, second.Location.Line)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		content   string
		wantError string
	}{
		{
			name:      "no_parser",
			file:      "replacerc.toml",
			content:   "whatever",
			wantError: "no parser found",
		},
		{
			name:      "no_replace_blocks",
			file:      "replacerc.yaml",
			content:   "root: .\n",
			wantError: "at least one replace block",
		},
		{
			name: "missing_before",
			file: "replacerc.yaml",
			content: `replace:
  - after: "b"
`,
			wantError: "before is required",
		},
		{
			name:      "invalid_hcl",
			file:      "replacerc.hcl",
			content:   "replace {",
			wantError: "parsing HCL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.content)
			_, err := Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}

func TestValidate_Defaults(t *testing.T) {
	cfg := &Config{Replacements: []Replace{{Before: "a", After: "b"}}}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ".", cfg.Root)
}
