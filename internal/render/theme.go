package render

import (
	"fmt"
	"sort"
	"strings"
)

// Built-in theme defaults; schema values override per key.
var (
	defaultColors = map[string]string{
		"primary":    "#3b82f6",
		"background": "#ffffff",
		"text":       "#1f2937",
	}
	defaultFonts = map[string]string{
		"body":    "system-ui, -apple-system, sans-serif",
		"heading": "inherit",
	}
)

// writeThemeStyle emits the theme tokens as CSS custom properties on :root so
// the compiled stylesheet and inline styles share one source of truth.
func (r *Renderer) writeThemeStyle(b *strings.Builder) {
	b.WriteString("<style>:root{")
	writeProperties(b, "--color-", defaultColors, r.app.Theme.Colors)
	writeProperties(b, "--font-", defaultFonts, r.app.Theme.Fonts)
	b.WriteString("}</style>\n")
}

func writeProperties(b *strings.Builder, prefix string, defaults, overrides map[string]string) {
	merged := make(map[string]string, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		if v != "" {
			merged[k] = v
		}
	}
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "%s%s:%s;", prefix, k, merged[k])
	}
}
