package render

import (
	"fmt"
	"html"
	"regexp"
	"sort"
	"strings"

	"github.com/sovrium/sovrium/internal/schema"
)

// maxSectionDepth guards against cyclic or absurdly deep trees; exceeding it
// is a fatal render error rather than a stack overflow.
const maxSectionDepth = 64

var tagNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)

// Elements serialized without children or a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// writeSection serializes one section node and its subtree depth-first in
// document order. Block kinds with dedicated handling are dispatched first;
// every other type is treated as a plain HTML tag.
func (r *Renderer) writeSection(b *strings.Builder, s *schema.Section, lang string, depth int) error {
	if depth > maxSectionDepth {
		return fmt.Errorf("section tree exceeds maximum depth %d", maxSectionDepth)
	}
	switch s.Type {
	case "markdown":
		return r.writeMarkdownSection(b, s, lang)
	default:
		return r.writeElement(b, s, lang, depth)
	}
}

func (r *Renderer) writeElement(b *strings.Builder, s *schema.Section, lang string, depth int) error {
	tag := strings.ToLower(s.Type)
	if !tagNamePattern.MatchString(tag) {
		return fmt.Errorf("malformed section type %q", s.Type)
	}

	b.WriteByte('<')
	b.WriteString(tag)
	if err := r.writeProps(b, s.Props, lang); err != nil {
		return fmt.Errorf("section %q: %w", s.Type, err)
	}
	b.WriteByte('>')

	if voidElements[tag] {
		b.WriteByte('\n')
		return nil
	}

	for _, child := range s.Children {
		if child.IsText() {
			b.WriteString(escapeText(r.catalog.Expand(child.Text, lang)))
			continue
		}
		if err := r.writeSection(b, child.Section, lang, depth+1); err != nil {
			return err
		}
	}

	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">\n")
	return nil
}

// writeMarkdownSection joins the node's text children into one markdown
// source, expands i18n placeholders, and renders through goldmark. The result
// is authored content and emitted unescaped.
func (r *Renderer) writeMarkdownSection(b *strings.Builder, s *schema.Section, lang string) error {
	var src strings.Builder
	for i, child := range s.Children {
		if !child.IsText() {
			return fmt.Errorf("markdown section children must be text")
		}
		if i > 0 {
			src.WriteString("\n\n")
		}
		src.WriteString(r.catalog.Expand(child.Text, lang))
	}
	b.WriteString("<div class=\"markdown\">\n")
	if err := r.md.Convert([]byte(src.String()), b); err != nil {
		return fmt.Errorf("markdown conversion: %w", err)
	}
	b.WriteString("</div>\n")
	return nil
}

// writeProps serializes attributes in sorted key order for deterministic
// output. String values pass through i18n expansion; map values become inline
// style declarations; true booleans become bare attributes.
func (r *Renderer) writeProps(b *strings.Builder, props map[string]any, lang string) error {
	if len(props) == 0 {
		return nil
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !tagNamePattern.MatchString(k) {
			return fmt.Errorf("malformed prop name %q", k)
		}
		switch v := props[k].(type) {
		case string:
			fmt.Fprintf(b, " %s=\"%s\"", k, escapeText(r.catalog.Expand(v, lang)))
		case bool:
			if v {
				fmt.Fprintf(b, " %s", k)
			}
		case map[string]any:
			fmt.Fprintf(b, " %s=\"%s\"", k, escapeText(styleString(v)))
		default:
			fmt.Fprintf(b, " %s=\"%v\"", k, v)
		}
	}
	return nil
}

// styleString flattens a style object to CSS declarations in sorted order.
func styleString(style map[string]any) string {
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s:%v;", k, style[k])
	}
	return b.String()
}

// escapeText escapes user-supplied text so HTML-special characters never
// parse as markup.
func escapeText(s string) string { return html.EscapeString(s) }
