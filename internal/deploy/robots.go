package deploy

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sovrium/sovrium/internal/routes"
)

// writeRobots emits robots.txt: the universal user-agent with a default
// allow-all, one deduplicated Disallow per noindex route, and a trailing
// Sitemap line when a sitemap is also generated.
func (f *Finalizer) writeRobots(outputDir string, rts []routes.Route) error {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")

	seen := make(map[string]bool)
	for _, r := range rts {
		if !r.Page.Meta.NoindexRequested() {
			continue
		}
		path := f.opts.BasePath + r.URLPath
		if seen[path] {
			continue
		}
		seen[path] = true
		b.WriteString("Disallow: ")
		b.WriteString(path)
		b.WriteByte('\n')
	}

	if f.opts.GenerateSitemap && f.opts.BaseURL != "" {
		b.WriteString("Sitemap: ")
		b.WriteString(strings.TrimSuffix(f.opts.BaseURL, "/"))
		b.WriteString("/sitemap.xml\n")
	}

	return os.WriteFile(filepath.Join(outputDir, "robots.txt"), []byte(b.String()), 0644)
}
