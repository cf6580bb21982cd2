package assets

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Reference is one local asset reference extracted from a rendered document.
type Reference struct {
	Path      string // root-absolute path as emitted, base path stripped
	Tag       string // html tag carrying the reference
	Attribute string // attribute holding it (href, src)
}

// ExtractReferences parses a rendered document and returns its root-absolute
// references. External URLs (scheme or protocol-relative) and page-relative
// paths are not returned; only references the asset pipeline is responsible
// for.
func ExtractReferences(doc, basePath string) ([]Reference, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, err
	}

	var refs []Reference
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if ref, ok := elementReference(n); ok {
				if local, ok := localPath(ref.Path, basePath); ok {
					ref.Path = local
					refs = append(refs, ref)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return refs, nil
}

func elementReference(n *html.Node) (Reference, bool) {
	var attrName string
	switch n.Data {
	case "a", "link":
		attrName = "href"
	case "img", "script", "source", "audio", "video", "iframe":
		attrName = "src"
	default:
		return Reference{}, false
	}
	for _, a := range n.Attr {
		if a.Key == attrName && a.Val != "" {
			return Reference{Path: a.Val, Tag: n.Data, Attribute: attrName}, true
		}
	}
	return Reference{}, false
}

// localPath reduces a reference to its root-absolute form with the base path
// stripped, or reports false for references outside the pipeline's scope.
func localPath(ref, basePath string) (string, bool) {
	if strings.Contains(ref, "://") || strings.HasPrefix(ref, "//") {
		return "", false
	}
	if !strings.HasPrefix(ref, "/") {
		return "", false
	}
	// Strip the base path only on a segment boundary so "/myapp" never
	// truncates "/myapparel/x".
	if basePath != "" && strings.HasPrefix(ref, basePath) {
		rest := ref[len(basePath):]
		switch {
		case rest == "":
			ref = "/"
		case strings.HasPrefix(rest, "/"):
			ref = rest
		}
	}
	// Drop query/fragment before existence checks.
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	return ref, ref != ""
}

// MissingReferences returns the references in doc that resolve neither to a
// copied public asset nor to a generated output file. Missing references are
// recoverable: some are produced by the server at runtime rather than
// existing on disk.
func MissingReferences(doc, basePath, publicDir string, generated map[string]bool) ([]Reference, error) {
	refs, err := ExtractReferences(doc, basePath)
	if err != nil {
		return nil, err
	}
	var missing []Reference
	for _, ref := range refs {
		rel := strings.TrimPrefix(ref.Path, "/")
		if rel == "" || strings.HasSuffix(ref.Path, "/") {
			continue // directory-style page URLs are resolved by routing
		}
		if generated[rel] || generated[path.Join(rel, "index.html")] {
			continue
		}
		if publicDir != "" {
			if _, err := os.Stat(filepath.Join(publicDir, filepath.FromSlash(rel))); err == nil {
				continue
			}
		}
		missing = append(missing, ref)
	}
	return missing, nil
}
