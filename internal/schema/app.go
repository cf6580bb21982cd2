// Package schema defines the validated, in-memory representation of a sovrium
// application: pages, sections, theme, languages and tables. The generation
// pipeline treats an App as immutable input.
package schema

// App is the root of the application schema.
type App struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Version     string    `yaml:"version,omitempty"`
	Theme       Theme     `yaml:"theme,omitempty"`
	Languages   Languages `yaml:"languages,omitempty"`
	Pages       []Page    `yaml:"pages"`
	Tables      []Table   `yaml:"tables,omitempty"`
}

// Theme holds visual design tokens applied as CSS custom properties.
type Theme struct {
	Colors map[string]string `yaml:"colors,omitempty"`
	Fonts  map[string]string `yaml:"fonts,omitempty"`
}

// Languages configures multi-language generation. When Supported is empty the
// site is generated once without language directories.
type Languages struct {
	Default   string     `yaml:"default,omitempty"`
	Supported []Language `yaml:"supported,omitempty"`
	// Translations maps language code -> translation key -> value.
	Translations map[string]map[string]string `yaml:"translations,omitempty"`
}

// Language describes one supported language.
type Language struct {
	Code   string `yaml:"code"`
	Locale string `yaml:"locale,omitempty"`
	Label  string `yaml:"label,omitempty"`
	Flag   string `yaml:"flag,omitempty"`
}

// Configured reports whether any languages are declared.
func (l Languages) Configured() bool { return len(l.Supported) > 0 }

// Codes returns the ordered supported language codes.
func (l Languages) Codes() []string {
	codes := make([]string, 0, len(l.Supported))
	for _, lang := range l.Supported {
		codes = append(codes, lang.Code)
	}
	return codes
}

// Lookup resolves a translation key for a language. The second return is false
// when the key (or the language table) is absent.
func (l Languages) Lookup(lang, key string) (string, bool) {
	table, ok := l.Translations[lang]
	if !ok {
		return "", false
	}
	v, ok := table[key]
	return v, ok
}

// Table declares a persistent table compiled to SQL DDL by the tables package.
type Table struct {
	Name   string  `yaml:"name"`
	Fields []Field `yaml:"fields"`
}

// Field is one typed column of a Table.
type Field struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Required bool   `yaml:"required,omitempty"`
	Unique   bool   `yaml:"unique,omitempty"`
	Default  string `yaml:"default,omitempty"`
}
