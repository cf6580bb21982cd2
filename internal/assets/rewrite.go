package assets

import (
	"strings"
)

// Rewriter prefixes root-absolute references in rendered documents with the
// configured base path, so the same schema deploys at the domain root or
// under a subdirectory without the renderer knowing about either.
type Rewriter struct {
	basePath string
}

// NewRewriter builds a rewriter. An empty base path makes Rewrite the
// identity function.
func NewRewriter(basePath string) *Rewriter {
	return &Rewriter{basePath: strings.TrimSuffix(basePath, "/")}
}

// Attribute and CSS openers whose value position may hold a reference. The
// leading slash of the value is the sole trigger condition for rewriting:
// page-relative references ("./favicon.ico"), absolute URLs and
// protocol-relative URLs ("//cdn...") pass through untouched.
var refOpeners = []string{
	`href="`,
	`src="`,
	`href='`,
	`src='`,
	`url(`,
	`url("`,
	`url('`,
}

// Rewrite returns doc with every root-absolute reference prefixed by the base
// path. With no base path configured the document is returned unchanged.
func (rw *Rewriter) Rewrite(doc string) string {
	if rw.basePath == "" {
		return doc
	}
	var b strings.Builder
	b.Grow(len(doc) + len(doc)/16)

	for i := 0; i < len(doc); {
		opener := matchOpener(doc[i:])
		if opener == "" {
			b.WriteByte(doc[i])
			i++
			continue
		}
		b.WriteString(opener)
		i += len(opener)
		// Rewrite "/..." but never "//..." (protocol-relative).
		if i < len(doc) && doc[i] == '/' && !(i+1 < len(doc) && doc[i+1] == '/') {
			b.WriteString(rw.basePath)
		}
	}
	return b.String()
}

// matchOpener returns the longest reference opener at the start of s, or "".
// Longest match keeps url(" from being consumed as the shorter url(.
func matchOpener(s string) string {
	best := ""
	for _, op := range refOpeners {
		if len(op) > len(best) && strings.HasPrefix(s, op) {
			best = op
		}
	}
	return best
}
