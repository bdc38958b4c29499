package model

import "time"

// ChatMessage 是对话中的一条消息，存储在 Redis 中。
type ChatMessage struct {
	Text      string    `json:"text"`
	IsBot     bool      `json:"isBot"`
	Timestamp time.Time `json:"timestamp"`
	Error     bool      `json:"error,omitempty"`
}

// ChatRecord 对应 chat_history 表，是经 Kafka 归档的对话记录。
type ChatRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index;not null" json:"userId"`
	ConversationID string    `gorm:"type:varchar(36);index" json:"conversationId"`
	Message        string    `gorm:"type:text;not null" json:"message"`
	IsBot          bool      `gorm:"not null" json:"isBot"`
	IsError        bool      `gorm:"not null;default:false" json:"isError"`
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`
}

func (ChatRecord) TableName() string {
	return "chat_history"
}
