// Package i18n resolves $t:<key> placeholders in section text against the
// schema's per-language translation tables. Expansion is a pure string scan;
// missing keys leave the literal placeholder in place so one untranslated
// string never fails a build.
package i18n

import (
	"strings"

	"github.com/sovrium/sovrium/internal/schema"
)

// token introduces a translation placeholder in text children.
const token = "$t:"

// MissingFunc is invoked once per unresolved placeholder occurrence.
type MissingFunc func(key, lang string)

// Catalog wraps the schema translation tables for one build.
type Catalog struct {
	languages schema.Languages
	onMissing MissingFunc
}

// NewCatalog builds a catalog. onMissing may be nil.
func NewCatalog(languages schema.Languages, onMissing MissingFunc) *Catalog {
	return &Catalog{languages: languages, onMissing: onMissing}
}

// Expand replaces every $t:<key> occurrence in text with the key's value in
// lang. Keys run over letters, digits, '.', '_' and '-'. Unresolved keys are
// emitted literally.
func (c *Catalog) Expand(text, lang string) string {
	i := strings.Index(text, token)
	if i < 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i >= 0 {
		b.WriteString(text[:i])
		rest := text[i+len(token):]
		end := keyEnd(rest)
		key := rest[:end]
		// Keys never end in a separator; a trailing '.', '_' or '-' belongs
		// to the surrounding sentence.
		trimmed := strings.TrimRight(key, "._-")
		end -= len(key) - len(trimmed)
		key = trimmed
		if v, ok := c.languages.Lookup(lang, key); ok && key != "" {
			b.WriteString(v)
		} else {
			b.WriteString(token)
			b.WriteString(key)
			if c.onMissing != nil && key != "" {
				c.onMissing(key, lang)
			}
		}
		text = rest[end:]
		i = strings.Index(text, token)
	}
	b.WriteString(text)
	return b.String()
}

func keyEnd(s string) int {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '_', r == '-':
		default:
			return i
		}
	}
	return len(s)
}
