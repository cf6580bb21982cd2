package assets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyTree_PreservesBytesAndStructure(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()

	binary := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0xff}
	crlf := []byte("line one\r\nline two\r\n")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "images", "deep"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "images", "deep", "logo.png"), binary, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), crlf, 0644))

	n, err := CopyTree(context.Background(), src, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := os.ReadFile(filepath.Join(dst, "images", "deep", "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, binary, got)

	got, err = os.ReadFile(filepath.Join(dst, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, crlf, got)
}

func TestCopyTree_MissingPublicDirIsNoop(t *testing.T) {
	n, err := CopyTree(context.Background(), filepath.Join(t.TempDir(), "absent"), t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRewrite_PrefixesRootAbsoluteOnly(t *testing.T) {
	rw := NewRewriter("/myapp")
	doc := `<link rel="stylesheet" href="/assets/output.css">` +
		`<img src="/images/logo.png">` +
		`<link rel="icon" href="./favicon.ico">` +
		`<a href="https://example.com/about">ext</a>` +
		`<script src="//cdn.example.com/lib.js"></script>` +
		`<div style="background-image: url(/images/bg.jpg)"></div>`

	got := rw.Rewrite(doc)
	assert.Contains(t, got, `href="/myapp/assets/output.css"`)
	assert.Contains(t, got, `src="/myapp/images/logo.png"`)
	assert.Contains(t, got, `url(/myapp/images/bg.jpg)`)
	assert.Contains(t, got, `href="./favicon.ico"`)
	assert.Contains(t, got, `href="https://example.com/about"`)
	assert.Contains(t, got, `src="//cdn.example.com/lib.js"`)
}

func TestRewrite_QuotedCSSURL(t *testing.T) {
	rw := NewRewriter("/myapp")
	assert.Equal(t, `url("/myapp/a.png")`, rw.Rewrite(`url("/a.png")`))
	assert.Equal(t, `url('/myapp/a.png')`, rw.Rewrite(`url('/a.png')`))
}

func TestRewrite_EmptyBasePathIsIdentity(t *testing.T) {
	doc := `<a href="/about.html">x</a>`
	assert.Equal(t, doc, NewRewriter("").Rewrite(doc))
}

func TestExtractReferences(t *testing.T) {
	doc := `<!DOCTYPE html><html><head>
<link rel="stylesheet" href="/myapp/assets/output.css">
<link rel="icon" href="./favicon.ico">
</head><body>
<img src="/myapp/images/logo.png">
<a href="https://example.com">ext</a>
<script src="/myapp/assets/client.js"></script>
</body></html>`

	refs, err := ExtractReferences(doc, "/myapp")
	require.NoError(t, err)

	var paths []string
	for _, r := range refs {
		paths = append(paths, r.Path)
	}
	assert.ElementsMatch(t, []string{"/assets/output.css", "/images/logo.png", "/assets/client.js"}, paths)
}

func TestMissingReferences(t *testing.T) {
	public := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(public, "images"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(public, "images", "logo.png"), []byte("png"), 0644))

	doc := `<html><body>
<img src="/images/logo.png">
<img src="/images/ghost.png">
<link rel="stylesheet" href="/assets/output.css">
</body></html>`

	missing, err := MissingReferences(doc, "", public, map[string]bool{"assets/output.css": true})
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, "/images/ghost.png", missing[0].Path)
}

func TestMissingReferences_BasePathSegmentBoundary(t *testing.T) {
	public := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(public, "myapparel"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(public, "myapparel", "x.png"), []byte("png"), 0644))

	doc := `<html><body>
<img src="/myapparel/x.png">
<img src="/myapp/images/ghost.png">
</body></html>`

	// "/myapparel/x.png" shares the "/myapp" prefix but is a different
	// segment; it must resolve against the public dir untruncated.
	missing, err := MissingReferences(doc, "/myapp", public, nil)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, "/images/ghost.png", missing[0].Path)
}
