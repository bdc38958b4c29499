// Package pipeline 定义了聊天归档的消费流程。
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"health-dashboard-go/internal/model"
	"health-dashboard-go/internal/repository"
	"health-dashboard-go/pkg/tasks"
)

// ArchiveProcessor 将 Kafka 中的聊天轮次写入 chat_history 表。
type ArchiveProcessor struct {
	records repository.ChatRecordRepository
}

// NewArchiveProcessor 创建一个新的 ArchiveProcessor 实例。
func NewArchiveProcessor(records repository.ChatRecordRepository) *ArchiveProcessor {
	return &ArchiveProcessor{records: records}
}

// Process 校验并持久化一条聊天轮次。
func (p *ArchiveProcessor) Process(ctx context.Context, task tasks.ChatTurnTask) error {
	if task.UserID == 0 {
		return errors.New("chat turn without user id")
	}
	record := &model.ChatRecord{
		UserID:         task.UserID,
		ConversationID: task.ConversationID,
		Message:        task.Message,
		IsBot:          task.IsBot,
		IsError:        task.IsError,
		CreatedAt:      task.Timestamp,
	}
	if err := p.records.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to archive chat turn: %w", err)
	}
	return nil
}
