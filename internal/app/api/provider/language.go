package provider

import (
	"strings"

	"github.com/samber/lo"
)

// Language is the hint a client sends to pick provider options.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageKorean  Language = "ko"

	// DefaultLanguage applies when the hint is absent or unrecognized.
	DefaultLanguage = LanguageEnglish
)

var supportedLanguages = []Language{LanguageEnglish, LanguageKorean}

// SupportedLanguages returns every accepted hint, default first.
func SupportedLanguages() []Language {
	return append([]Language(nil), supportedLanguages...)
}

// ParseLanguage resolves a raw hint. It never fails: anything outside the
// supported set resolves to DefaultLanguage. Case and surrounding space are
// ignored.
func ParseLanguage(raw string) Language {
	lang := Language(strings.ToLower(strings.TrimSpace(raw)))
	if lo.Contains(supportedLanguages, lang) {
		return lang
	}
	return DefaultLanguage
}

// DisplayName is the label shown in the language selector.
func (l Language) DisplayName() string {
	switch l {
	case LanguageKorean:
		return "한국어 (Korean)"
	default:
		return "English"
	}
}
