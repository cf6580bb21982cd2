// Package routes expands the application's pages into the flat list of
// concrete output routes: one per (non-excluded page, active language), with
// resolved output file paths and absolute URLs. Every later stage (renderer,
// asset rewriting, sitemap, robots) consumes this list and never recomputes
// paths, so the layout rules live here and nowhere else.
package routes

import (
	"net/url"
	"path"
	"strings"

	"github.com/sovrium/sovrium/internal/config"
	"github.com/sovrium/sovrium/internal/errors"
	"github.com/sovrium/sovrium/internal/schema"
)

// Route is one concrete output unit derived from a page and a language.
type Route struct {
	// Page indexes into the schema's page list.
	Page *schema.Page
	// Language is the active language code, empty when the site is not
	// multi-language.
	Language string
	// OutputPath is the file path relative to the output root, always ending
	// in ".html" ("index.html" for directory roots).
	OutputPath string
	// URLPath is the server path of the route, starting with "/". Directory
	// roots end with "/" ("/en/"), leaf pages with ".html".
	URLPath string
	// AbsoluteURL is origin + basePath + URLPath.
	AbsoluteURL string
}

// Resolve expands pages into routes. Pages whose path (or any segment) starts
// with an underscore contribute nothing. Two pages resolving to the same
// output path is a fatal configuration error.
func Resolve(app *schema.App, opts config.Options) ([]Route, error) {
	langs := activeLanguages(app.Languages, opts.Languages)
	origin := originOf(opts.BaseURL)

	var out []Route
	owner := make(map[string]string)
	for i := range app.Pages {
		page := &app.Pages[i]
		if page.Excluded() {
			continue
		}
		for _, lang := range langs {
			prefix := lang
			if opts.DefaultLanguageInRoot && lang == app.Languages.Default {
				prefix = ""
			}
			outputPath := outputPathFor(page.Path, prefix)
			if prev, taken := owner[outputPath]; taken {
				return nil, errors.RouteCollision(outputPath, prev, page.Name)
			}
			owner[outputPath] = page.Name

			urlPath := urlPathFor(outputPath)
			out = append(out, Route{
				Page:        page,
				Language:    lang,
				OutputPath:  outputPath,
				URLPath:     urlPath,
				AbsoluteURL: origin + opts.BasePath + urlPath,
			})
		}
	}
	return out, nil
}

// Alternates returns the routes rendering the same page as r in every other
// active language, for hreflang emission.
func Alternates(all []Route, r Route) []Route {
	var alts []Route
	for _, other := range all {
		if other.Page == r.Page && other.Language != r.Language {
			alts = append(alts, other)
		}
	}
	return alts
}

// activeLanguages returns the language codes this build generates, in schema
// order. An empty filter keeps all supported languages; a site without
// configured languages builds once with the empty code.
func activeLanguages(langs schema.Languages, filter []string) []string {
	if !langs.Configured() {
		return []string{""}
	}
	if len(filter) == 0 {
		return langs.Codes()
	}
	wanted := make(map[string]bool, len(filter))
	for _, code := range filter {
		wanted[code] = true
	}
	var active []string
	for _, code := range langs.Codes() {
		if wanted[code] {
			active = append(active, code)
		}
	}
	return active
}

// outputPathFor maps a page path and language prefix to the relative output
// file: "/" becomes index.html, "/products/detail" becomes
// products/detail.html, directory segments preserved.
func outputPathFor(pagePath, langPrefix string) string {
	trimmed := strings.Trim(pagePath, "/")
	var rel string
	if trimmed == "" {
		rel = "index.html"
	} else {
		rel = trimmed + ".html"
	}
	if langPrefix == "" {
		return rel
	}
	return path.Join(langPrefix, rel)
}

// urlPathFor maps an output file path to its canonical URL path. index.html
// collapses to the enclosing directory with a trailing slash.
func urlPathFor(outputPath string) string {
	if outputPath == "index.html" {
		return "/"
	}
	if strings.HasSuffix(outputPath, "/index.html") {
		return "/" + strings.TrimSuffix(outputPath, "index.html")
	}
	return "/" + outputPath
}

// originOf strips any subpath from the configured base URL; the base path is
// composed separately so the two never double up.
func originOf(baseURL string) string {
	if baseURL == "" {
		return ""
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return strings.TrimSuffix(baseURL, "/")
	}
	return u.Scheme + "://" + u.Host
}
