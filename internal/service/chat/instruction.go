package chat

import "github.com/getactive-kenya/backend/internal/model/chat"

// systemGuidelines establishes the assistant's persona and constraints.
// It is injected exactly once per session, folded into the first user turn,
// because the generation API has no separate system role in this design.
const systemGuidelines = `You are a specialized mental health assistant for GetActive Kenya.

Guidelines:
- Be empathetic and supportive for people with anxiety, depression, and stress.
- Provide culturally appropriate advice for the Kenyan context.
- Suggest physical activities and mental health practices based on GetActive Kenya's programs.
- Never diagnose conditions or replace professional help.
- Always encourage seeking professional support for serious concerns.
- Include relevant GetActive Kenya resources when appropriate.
- Make your responses short and well structured. You may use bullets/ any ordering to order your list.`

// SystemInstruction returns the full guidance text for the given language.
func SystemInstruction(lang chat.Language) string {
	directive := "Respond in English."
	if lang == chat.LanguageSwahili {
		directive = "Respond in Swahili."
	}
	return systemGuidelines + "\n\n" + directive
}
