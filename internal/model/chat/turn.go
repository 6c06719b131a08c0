package chat

import (
	"encoding/json"
	"fmt"
)

// Role tags one side of a conversation turn on the Gemini wire format.
// Only user and model exist; anything else is rejected when decoding.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// UnmarshalJSON enforces the role union at the deserialization boundary.
func (r *Role) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch Role(raw) {
	case RoleUser, RoleModel:
		*r = Role(raw)
		return nil
	}
	return fmt.Errorf("unknown turn role %q", raw)
}

// Part holds one text fragment of a turn.
type Part struct {
	Text string `json:"text"`
}

// Turn is one role-tagged unit of conversational content submitted to the
// generative model. Derived from the session transcript, never stored.
type Turn struct {
	Role  Role   `json:"role"`
	Parts []Part `json:"parts"`
}

// NewTurn builds a single-part turn.
func NewTurn(role Role, text string) Turn {
	return Turn{Role: role, Parts: []Part{{Text: text}}}
}

// Text concatenates the turn's parts.
func (t Turn) Text() string {
	if len(t.Parts) == 1 {
		return t.Parts[0].Text
	}
	var out string
	for _, p := range t.Parts {
		out += p.Text
	}
	return out
}
