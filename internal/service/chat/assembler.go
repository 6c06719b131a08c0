package chat

import "github.com/getactive-kenya/backend/internal/model/chat"

// TurnsFromMessages maps the stored transcript onto wire turns. Senders map
// user→user and bot→model; any other sender is dropped, which should be
// unreachable given how messages are created.
func TurnsFromMessages(messages []chat.Message) []chat.Turn {
	turns := make([]chat.Turn, 0, len(messages))
	for _, msg := range messages {
		switch msg.Sender {
		case chat.SenderUser:
			turns = append(turns, chat.NewTurn(chat.RoleUser, msg.Text))
		case chat.SenderBot:
			turns = append(turns, chat.NewTurn(chat.RoleModel, msg.Text))
		}
	}
	return turns
}

// Assemble produces the exact ordered turn sequence submitted to the model.
// On the first exchange of a session (empty history) the system instruction
// is folded into a single user turn together with the new text. Later
// exchanges carry only the raw text; the instruction is assumed to already
// sit in turn one of the stored history. Ordering stays chronological; the
// model is stateless per call and relies entirely on turn order for context.
func Assemble(history []chat.Turn, text string, lang chat.Language) []chat.Turn {
	if len(history) == 0 {
		return []chat.Turn{
			chat.NewTurn(chat.RoleUser, SystemInstruction(lang)+"\n\nUser: "+text),
		}
	}

	turns := make([]chat.Turn, 0, len(history)+1)
	for _, turn := range history {
		if turn.Role != chat.RoleUser && turn.Role != chat.RoleModel {
			continue
		}
		turns = append(turns, turn)
	}
	return append(turns, chat.NewTurn(chat.RoleUser, text))
}
