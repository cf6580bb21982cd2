// Package render converts a resolved route's section tree into a complete
// HTML document. The renderer is basePath-agnostic: every asset and bundle
// reference it emits is root-absolute, and the asset pipeline applies the
// configured base path afterwards.
package render

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/sovrium/sovrium/internal/config"
	"github.com/sovrium/sovrium/internal/errors"
	"github.com/sovrium/sovrium/internal/i18n"
	"github.com/sovrium/sovrium/internal/routes"
	"github.com/sovrium/sovrium/internal/schema"
)

// StylesheetPath is the root-absolute path of the compiled stylesheet linked
// from every document.
const StylesheetPath = "/assets/output.css"

// ClientScriptPath is the root-absolute path of the hydration bundle.
const ClientScriptPath = "/assets/client.js"

// Renderer renders routes for one application build. Safe for concurrent use:
// all fields are read-only after construction.
type Renderer struct {
	app     *schema.App
	opts    config.Options
	catalog *i18n.Catalog
	md      goldmark.Markdown
}

// New constructs a renderer. The catalog's missing-key handler decides how
// unresolved translations are surfaced; rendering itself never fails on them.
func New(app *schema.App, opts config.Options, catalog *i18n.Catalog) *Renderer {
	return &Renderer{
		app:     app,
		opts:    opts,
		catalog: catalog,
		md:      goldmark.New(),
	}
}

// Render produces the full HTML document for route. all is the complete route
// list of the build, used to locate the page's language alternates.
func (r *Renderer) Render(route routes.Route, all []routes.Route) (string, error) {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	fmt.Fprintf(&b, "<html lang=\"%s\">\n", escapeText(r.documentLang(route)))

	r.writeHead(&b, route, all)

	b.WriteString("<body>\n")
	if route.Page.Layout != nil && route.Page.Layout.Navigation {
		r.writeNavigation(&b, route, all)
	}
	b.WriteString("<main>\n")
	if len(route.Page.Sections) == 0 {
		r.writeDefaultHero(&b, route)
	} else {
		for i := range route.Page.Sections {
			if err := r.writeSection(&b, &route.Page.Sections[i], route.Language, 0); err != nil {
				return "", errors.RenderFailed(route.Page.Name, err)
			}
		}
	}
	b.WriteString("</main>\n")
	if route.Page.Layout != nil && route.Page.Layout.Footer != "" {
		fmt.Fprintf(&b, "<footer>%s</footer>\n", escapeText(r.catalog.Expand(route.Page.Layout.Footer, route.Language)))
	}
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

func (r *Renderer) documentLang(route routes.Route) string {
	if route.Page.Meta.Lang != "" {
		return route.Page.Meta.Lang
	}
	if route.Language != "" {
		return route.Language
	}
	return "en"
}

// writeDefaultHero renders the fallback hero for pages without sections. The
// vertical order is a presentation contract: version badge, then title, then
// description.
func (r *Renderer) writeDefaultHero(b *strings.Builder, route routes.Route) {
	b.WriteString("<div class=\"hero\">\n")
	if r.app.Version != "" {
		fmt.Fprintf(b, "<span class=\"badge\">v%s</span>\n", escapeText(r.app.Version))
	}
	title := route.Page.Meta.Title
	if title == "" {
		title = r.app.Name
	}
	fmt.Fprintf(b, "<h1>%s</h1>\n", escapeText(r.catalog.Expand(title, route.Language)))
	desc := route.Page.Meta.Description
	if desc == "" {
		desc = r.app.Description
	}
	if desc != "" {
		fmt.Fprintf(b, "<p class=\"description\">%s</p>\n", escapeText(r.catalog.Expand(desc, route.Language)))
	}
	b.WriteString("</div>\n")
}

func (r *Renderer) writeNavigation(b *strings.Builder, route routes.Route, all []routes.Route) {
	b.WriteString("<nav>\n<ul>\n")
	for _, other := range all {
		if other.Language != route.Language || other.Page.Excluded() {
			continue
		}
		label := other.Page.Meta.Title
		if label == "" {
			label = other.Page.Name
		}
		fmt.Fprintf(b, "<li><a href=\"%s\">%s</a></li>\n",
			escapeText(other.URLPath), escapeText(r.catalog.Expand(label, route.Language)))
	}
	b.WriteString("</ul>\n</nav>\n")
}
