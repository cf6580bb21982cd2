package deploy

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sovrium/sovrium/internal/routes"
)

// Sitemap is the XML document model for sitemap.xml.
type Sitemap struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	Urls    []URL    `xml:"url"`
}

// URL is one sitemap entry.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// writeSitemap emits sitemap.xml with one entry per indexable route. Routes of
// noindex pages are skipped; underscore-excluded pages never reach this stage.
func (f *Finalizer) writeSitemap(outputDir string, rts []routes.Route) error {
	sitemap := Sitemap{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	lastMod := f.now().Format("2006-01-02")

	for _, r := range rts {
		if r.Page.Meta.NoindexRequested() {
			continue
		}
		entry := URL{
			Loc:        r.AbsoluteURL,
			LastMod:    lastMod,
			ChangeFreq: r.Page.Meta.Changefreq,
		}
		if r.Page.Meta.Priority > 0 {
			entry.Priority = fmt.Sprintf("%.1f", r.Page.Meta.Priority)
		}
		sitemap.Urls = append(sitemap.Urls, entry)
	}

	out, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return err
	}
	data := append([]byte(xml.Header), out...)
	data = append(data, '\n')
	return os.WriteFile(filepath.Join(outputDir, "sitemap.xml"), data, 0644)
}

// nowFunc allows tests to pin the lastmod date.
type nowFunc func() time.Time
