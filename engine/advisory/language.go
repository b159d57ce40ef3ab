package advisory

import "strings"

// Language is a content language code.
type Language string

const (
	English Language = "en"
	Hindi   Language = "hi"
	Marathi Language = "mr"
)

// Fallback is the language every published record must carry.
const Fallback = English

// Supported lists the languages advisories are published in.
var Supported = []Language{English, Hindi, Marathi}

// ParseLanguage accepts "hi", "HI" or region-tagged forms such as "hi-IN".
func ParseLanguage(s string) (Language, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i != -1 {
		s = s[:i]
	}
	for _, l := range Supported {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// LanguageOr parses s and falls back to def when it is not supported.
func LanguageOr(s string, def Language) Language {
	if l, ok := ParseLanguage(s); ok {
		return l
	}
	return def
}
