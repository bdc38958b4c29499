// Package tasks defines the structure for tasks that are sent to Kafka.
package tasks

import "time"

// ChatTurnTask is one side of a chat exchange, published for archiving.
type ChatTurnTask struct {
	UserID         uint      `json:"user_id"`
	ConversationID string    `json:"conversation_id"`
	Message        string    `json:"message"`
	IsBot          bool      `json:"is_bot"`
	IsError        bool      `json:"is_error"`
	Timestamp      time.Time `json:"timestamp"`
}
