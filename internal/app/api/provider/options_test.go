package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionsFor(t *testing.T) {
	english := Options{SmartFormat: true, Model: "nova-3"}
	korean := Options{
		SmartFormat: true,
		Model:       "general",
		Language:    "ko",
		Tier:        "enhanced",
		Version:     "beta",
	}

	testCases := []struct {
		name     string
		header   string
		expected Options
	}{
		{name: "english", header: "en", expected: english},
		{name: "korean", header: "ko", expected: korean},
		{name: "korean mixed case", header: " KO ", expected: korean},
		{name: "absent hint", header: "", expected: english},
		{name: "unsupported hint", header: "fr", expected: english},
		{name: "garbage hint", header: "ko-KR;q=0.9", expected: english},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, OptionsFor(ParseLanguage(tc.header)))
		})
	}
}

func TestOptionsQuery(t *testing.T) {
	t.Run("default omits unset fields", func(t *testing.T) {
		q := OptionsFor(LanguageEnglish).Query()

		assert.Equal(t, "true", q.Get("smart_format"))
		assert.Equal(t, "nova-3", q.Get("model"))
		assert.NotContains(t, q, "language")
		assert.NotContains(t, q, "tier")
		assert.NotContains(t, q, "version")
	})

	t.Run("korean carries every field", func(t *testing.T) {
		q := OptionsFor(LanguageKorean).Query()

		assert.Equal(t, "language=ko&model=general&smart_format=true&tier=enhanced&version=beta", q.Encode())
	})
}

func TestParseLanguage(t *testing.T) {
	assert.Equal(t, LanguageEnglish, ParseLanguage("en"))
	assert.Equal(t, LanguageKorean, ParseLanguage("ko"))
	assert.Equal(t, DefaultLanguage, ParseLanguage(""))
	assert.Equal(t, DefaultLanguage, ParseLanguage("ja"))
	// hints are matched case-insensitively after trimming
	assert.Equal(t, LanguageKorean, ParseLanguage("KO"))
	assert.Equal(t, LanguageKorean, ParseLanguage(" Ko "))
	assert.Equal(t, LanguageEnglish, ParseLanguage("EN"))
	assert.Equal(t, []Language{LanguageEnglish, LanguageKorean}, SupportedLanguages())
}

func TestSupportedLanguagesIsACopy(t *testing.T) {
	langs := SupportedLanguages()
	langs[0] = "xx"

	assert.Equal(t, LanguageEnglish, SupportedLanguages()[0])
	assert.Equal(t, LanguageEnglish, ParseLanguage("en"))
}
