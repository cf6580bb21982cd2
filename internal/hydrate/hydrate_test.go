package hydrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStylesheet(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, WriteStylesheet(out))

	data, err := os.ReadFile(filepath.Join(out, "assets", "output.css"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "var(--color-primary)")
}

func TestWriteStylesheet_Deterministic(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	require.NoError(t, WriteStylesheet(a))
	require.NoError(t, WriteStylesheet(b))

	da, _ := os.ReadFile(filepath.Join(a, "assets", "output.css"))
	db, _ := os.ReadFile(filepath.Join(b, "assets", "output.css"))
	assert.Equal(t, da, db)
}

func TestBundleClient(t *testing.T) {
	src := t.TempDir()
	entry := filepath.Join(src, "index.js")
	require.NoError(t, os.WriteFile(entry, []byte(`
const greet = (name) => console.log("hello " + name);
greet("sovrium");
`), 0644))

	out := t.TempDir()
	require.NoError(t, BundleClient(entry, out))

	data, err := os.ReadFile(filepath.Join(out, "assets", "client.js"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "sovrium")
}

func TestBundleClient_MissingEntryIsFatal(t *testing.T) {
	err := BundleClient(filepath.Join(t.TempDir(), "nope.js"), t.TempDir())
	require.Error(t, err)
}

func TestBundleClient_SyntaxErrorReported(t *testing.T) {
	src := t.TempDir()
	entry := filepath.Join(src, "broken.js")
	require.NoError(t, os.WriteFile(entry, []byte("const = ;"), 0644))

	err := BundleClient(entry, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client bundle failed")
}
