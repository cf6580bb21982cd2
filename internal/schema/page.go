package schema

import "strings"

// Page is one declarative page of the application.
type Page struct {
	Name     string    `yaml:"name"`
	Path     string    `yaml:"path"`
	Meta     Meta      `yaml:"meta,omitempty"`
	Sections []Section `yaml:"sections,omitempty"`
	Layout   *Layout   `yaml:"layout,omitempty"`
}

// Meta carries per-page head metadata and sitemap/robots hints.
type Meta struct {
	Lang        string  `yaml:"lang,omitempty"`
	Title       string  `yaml:"title,omitempty"`
	Description string  `yaml:"description,omitempty"`
	Priority    float64 `yaml:"priority,omitempty"`
	Changefreq  string  `yaml:"changefreq,omitempty"`
	Robots      string  `yaml:"robots,omitempty"`
	Noindex     bool    `yaml:"noindex,omitempty"`
	Favicon     string  `yaml:"favicon,omitempty"`
}

// Layout configures optional navigation/sidebar chrome around the sections.
type Layout struct {
	Navigation bool   `yaml:"navigation,omitempty"`
	Sidebar    bool   `yaml:"sidebar,omitempty"`
	Footer     string `yaml:"footer,omitempty"`
}

// Excluded reports whether the page is excluded from generation. A page is
// excluded when its path, or any path segment, starts with an underscore.
// Excluded pages contribute no route, sitemap entry or robots rule.
func (p Page) Excluded() bool {
	for _, seg := range strings.Split(strings.Trim(p.Path, "/"), "/") {
		if strings.HasPrefix(seg, "_") {
			return true
		}
	}
	return false
}

// NoindexRequested reports whether the page asked search engines not to index
// it, either via the noindex flag or a robots directive containing "noindex".
func (m Meta) NoindexRequested() bool {
	return m.Noindex || strings.Contains(m.Robots, "noindex")
}
