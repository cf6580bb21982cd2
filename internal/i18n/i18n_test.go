package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sovrium/sovrium/internal/schema"
)

func testLanguages() schema.Languages {
	return schema.Languages{
		Default: "en",
		Supported: []schema.Language{
			{Code: "en", Locale: "en-US"},
			{Code: "fr", Locale: "fr-FR"},
		},
		Translations: map[string]map[string]string{
			"en": {"home.title": "Welcome", "home.cta": "Get started"},
			"fr": {"home.title": "Bienvenue"},
		},
	}
}

func TestExpand_ReplacesKnownKeys(t *testing.T) {
	c := NewCatalog(testLanguages(), nil)
	assert.Equal(t, "Welcome", c.Expand("$t:home.title", "en"))
	assert.Equal(t, "Bienvenue", c.Expand("$t:home.title", "fr"))
	assert.Equal(t, "say: Welcome!", c.Expand("say: $t:home.title!", "en"))
}

func TestExpand_MultipleTokens(t *testing.T) {
	c := NewCatalog(testLanguages(), nil)
	got := c.Expand("$t:home.title - $t:home.cta", "en")
	assert.Equal(t, "Welcome - Get started", got)
}

func TestExpand_MissingKeyKeepsLiteralAndWarns(t *testing.T) {
	var missedKey, missedLang string
	c := NewCatalog(testLanguages(), func(key, lang string) {
		missedKey, missedLang = key, lang
	})

	got := c.Expand("$t:home.cta", "fr")
	assert.Equal(t, "$t:home.cta", got)
	assert.Equal(t, "home.cta", missedKey)
	assert.Equal(t, "fr", missedLang)
}

func TestExpand_NoTokenPassthrough(t *testing.T) {
	c := NewCatalog(testLanguages(), nil)
	assert.Equal(t, "plain text", c.Expand("plain text", "en"))
}

func TestExpand_KeyBoundary(t *testing.T) {
	c := NewCatalog(testLanguages(), nil)
	// Punctuation after the key terminates it.
	assert.Equal(t, "Welcome.", c.Expand("$t:home.title.", "en"))
}

func TestParseTag(t *testing.T) {
	_, err := ParseTag("en")
	require.NoError(t, err)
	_, err = ParseTag("no-such-language-code-!!")
	require.Error(t, err)
}

func TestHreflangValue(t *testing.T) {
	assert.Equal(t, "en-US", HreflangValue("en", "en-US"))
	assert.Equal(t, "fr", HreflangValue("fr", ""))
	assert.Equal(t, "weird", HreflangValue("weird", "!!"))
}
