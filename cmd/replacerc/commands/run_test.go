package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/replacerc/cmd/replacerc/opts"
)

// setupRun writes a working tree plus a config file rewriting it.
func setupRun(t *testing.T, configBody string, files map[string]string) (*opts.RootOpts, string) {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "tree")
	require.NoError(t, os.MkdirAll(root, 0o755))
	for rel, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, rel), []byte(content), 0o644))
	}
	configFile := filepath.Join(dir, "replacerc.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(configBody), 0o644))
	return &opts.RootOpts{ConfigFile: configFile, RootDir: root}, root
}

func TestRunTransformations_ApplyThenReverse(t *testing.T) {
	o, root := setupRun(t, `replace:
  - before: "foo${x}bar"
    after: "bar${x}foo"
    regex_groups:
      x: "[A-Z]+"
`, map[string]string{
		"a.txt": "fooABCDbar\n",
	})

	var out bytes.Buffer
	require.NoError(t, runTransformations(context.Background(), o, &out, false))

	raw, err := os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "barABCDfoo\n", string(raw))
	assert.Contains(t, out.String(), "Replace foo${x}bar")

	// Reversing restores the original content.
	out.Reset()
	require.NoError(t, runTransformations(context.Background(), o, &out, true))

	raw, err = os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "fooABCDbar\n", string(raw))
}

func TestRunTransformations_NoopReported(t *testing.T) {
	o, _ := setupRun(t, `replace:
  - before: "missing"
    after: "present"
`, map[string]string{
		"a.txt": "no match here\n",
	})

	var out bytes.Buffer
	require.NoError(t, runTransformations(context.Background(), o, &out, false))
	assert.Contains(t, out.String(), "Transformation 'Replace missing' was a no-op.")
}

func TestRunTransformations_NonReversibleFailsBeforeRewriting(t *testing.T) {
	o, root := setupRun(t, `replace:
  - before: "a${x}b"
    after: "stripped"
    regex_groups:
      x: "[0-9]+"
`, map[string]string{
		"a.txt": "a1b keepme\n",
	})

	var out bytes.Buffer
	err := runTransformations(context.Background(), o, &out, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not reversible")

	raw, rerr := os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, rerr)
	assert.Equal(t, "a1b keepme\n", string(raw))
}

func TestRunTransformations_SequenceOrder(t *testing.T) {
	o, root := setupRun(t, `replace:
  - before: "alpha"
    after: "beta"
  - before: "beta"
    after: "gamma"
`, map[string]string{
		"a.txt": "alpha\n",
	})

	var out bytes.Buffer
	require.NoError(t, runTransformations(context.Background(), o, &out, false))

	raw, err := os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "gamma\n", string(raw))

	// The reversed sequence runs back to front, restoring the original.
	out.Reset()
	require.NoError(t, runTransformations(context.Background(), o, &out, true))

	raw, err = os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha\n", string(raw))
}
