package domain

import "strings"

// Language is one of the two content locales served by the directory.
type Language string

const (
	LanguageFR Language = "fr"
	LanguageEN Language = "en"
)

// Other returns the fallback locale used when a venue has no content row in
// the requested language.
func (l Language) Other() Language {
	if l == LanguageFR {
		return LanguageEN
	}
	return LanguageFR
}

func (l Language) Valid() bool {
	return l == LanguageFR || l == LanguageEN
}

// ParseLanguage normalizes a raw locale string, defaulting to French.
func ParseLanguage(raw string) Language {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "en":
		return LanguageEN
	default:
		return LanguageFR
	}
}
