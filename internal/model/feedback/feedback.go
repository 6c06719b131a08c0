package feedback

import "time"

// Record captures a single helpfulness rating for a bot message.
// Created at most once per message and never mutated afterwards.
type Record struct {
	MessageID string    `json:"messageId"`
	IsHelpful bool      `json:"isHelpful"`
	Comment   string    `json:"comment,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
