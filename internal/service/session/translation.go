package session

import "github.com/getactive-kenya/backend/internal/model/chat"

// translation holds the localized assistant strings shown in the widget.
type translation struct {
	WelcomeMessage string
	ErrorMessage   string
}

var translations = map[chat.Language]translation{
	chat.LanguageEnglish: {
		WelcomeMessage: "Hello! I'm your GetActive Kenya assistant. How can I help you with your mental health today?",
		ErrorMessage:   "I'm sorry, I'm having trouble processing your request right now. Please try again later.",
	},
	chat.LanguageSwahili: {
		WelcomeMessage: "Habari! Mimi ni msaidizi wako wa GetActive Kenya. Nawezaje kukusaidia na afya yako ya akili leo?",
		ErrorMessage:   "Samahani, nina shida kuchakata ombi lako kwa sasa. Tafadhali jaribu tena baadaye.",
	},
}

// WelcomeText returns the localized greeting that seeds a fresh session.
func WelcomeText(lang chat.Language) string {
	if t, ok := translations[lang]; ok {
		return t.WelcomeMessage
	}
	return translations[chat.LanguageEnglish].WelcomeMessage
}

// ErrorText returns the localized fallback bubble for a failed generation.
func ErrorText(lang chat.Language) string {
	if t, ok := translations[lang]; ok {
		return t.ErrorMessage
	}
	return translations[chat.LanguageEnglish].ErrorMessage
}
