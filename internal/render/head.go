package render

import (
	"fmt"
	"strings"

	"github.com/sovrium/sovrium/internal/i18n"
	"github.com/sovrium/sovrium/internal/routes"
)

func (r *Renderer) writeHead(b *strings.Builder, route routes.Route, all []routes.Route) {
	meta := route.Page.Meta

	b.WriteString("<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")

	title := meta.Title
	if title == "" {
		title = r.app.Name
	}
	fmt.Fprintf(b, "<title>%s</title>\n", escapeText(r.catalog.Expand(title, route.Language)))

	desc := meta.Description
	if desc == "" {
		desc = r.app.Description
	}
	if desc != "" {
		fmt.Fprintf(b, "<meta name=\"description\" content=\"%s\">\n", escapeText(r.catalog.Expand(desc, route.Language)))
	}

	if directive := robotsDirective(meta.Robots, meta.Noindex); directive != "" {
		fmt.Fprintf(b, "<meta name=\"robots\" content=\"%s\">\n", escapeText(directive))
	}

	if route.AbsoluteURL != "" {
		fmt.Fprintf(b, "<link rel=\"canonical\" href=\"%s\">\n", escapeText(route.AbsoluteURL))
		r.writeAlternates(b, route, all)
	}

	if meta.Favicon != "" {
		fmt.Fprintf(b, "<link rel=\"icon\" href=\"%s\">\n", escapeText(meta.Favicon))
	}

	fmt.Fprintf(b, "<link rel=\"stylesheet\" href=\"%s\">\n", StylesheetPath)
	if r.opts.Hydration {
		fmt.Fprintf(b, "<script type=\"module\" src=\"%s\" defer></script>\n", ClientScriptPath)
	}

	r.writeThemeStyle(b)
	b.WriteString("</head>\n")
}

// writeAlternates emits one hreflang link per active language of the page,
// the rendered language included, plus x-default pointing at the default
// language's URL.
func (r *Renderer) writeAlternates(b *strings.Builder, route routes.Route, all []routes.Route) {
	if !r.app.Languages.Configured() {
		return
	}
	locales := make(map[string]string, len(r.app.Languages.Supported))
	for _, lang := range r.app.Languages.Supported {
		locales[lang.Code] = lang.Locale
	}
	var defaultURL string
	for _, other := range all {
		if other.Page != route.Page {
			continue
		}
		fmt.Fprintf(b, "<link rel=\"alternate\" hreflang=\"%s\" href=\"%s\">\n",
			escapeText(i18n.HreflangValue(other.Language, locales[other.Language])), escapeText(other.AbsoluteURL))
		if other.Language == r.app.Languages.Default {
			defaultURL = other.AbsoluteURL
		}
	}
	if defaultURL != "" {
		fmt.Fprintf(b, "<link rel=\"alternate\" hreflang=\"x-default\" href=\"%s\">\n", escapeText(defaultURL))
	}
}

// robotsDirective derives the robots meta content. An explicit robots string
// wins; the noindex flag alone produces the conventional pair.
func robotsDirective(robots string, noindex bool) string {
	if robots != "" {
		return robots
	}
	if noindex {
		return "noindex, nofollow"
	}
	return ""
}
