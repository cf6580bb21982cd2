package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

// ParseTag parses a configured language code (or locale such as "en-US") into
// a canonical BCP 47 tag. The config loader uses this to reject codes that
// would produce meaningless hreflang attributes.
func ParseTag(code string) (language.Tag, error) {
	tag, err := language.Parse(code)
	if err != nil {
		return language.Und, fmt.Errorf("invalid language code %q: %w", code, err)
	}
	return tag, nil
}

// HreflangValue returns the value emitted in hreflang attributes for a
// language: the canonical form of its locale when declared, otherwise of its
// code. Falls back to the raw code when unparseable.
func HreflangValue(code, locale string) string {
	src := locale
	if src == "" {
		src = code
	}
	tag, err := language.Parse(src)
	if err != nil {
		return code
	}
	return tag.String()
}
