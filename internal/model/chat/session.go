package chat

import "fmt"

// Language is the two-letter response language for the assistant.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSwahili Language = "sw"
)

// ParseLanguage validates a two-letter language code.
func ParseLanguage(code string) (Language, error) {
	switch Language(code) {
	case LanguageEnglish:
		return LanguageEnglish, nil
	case LanguageSwahili:
		return LanguageSwahili, nil
	}
	return "", fmt.Errorf("unsupported language %q", code)
}

// Session captures the single widget conversation: its transcript and
// the preferred response language.
type Session struct {
	Messages []Message `json:"messages"`
	Language Language  `json:"language"`
}
