// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"

	"health-dashboard-go/internal/model"
	"health-dashboard-go/internal/repository"
)

// archiveLimit 是归档接口返回的最大记录数。
const archiveLimit = 50

// ConversationService 定义了对话业务逻辑的接口。
type ConversationService interface {
	GetConversationHistory(ctx context.Context, userID uint) ([]model.ChatMessage, error)
	// AddMessagesToConversation 追加消息并返回当前对话 ID。
	AddMessagesToConversation(ctx context.Context, userID uint, messages ...model.ChatMessage) (string, error)
	GetArchivedHistory(ctx context.Context, userID uint) ([]model.ChatRecord, error)
}

type conversationService struct {
	repo        repository.ConversationRepository
	archiveRepo repository.ChatRecordRepository
}

// NewConversationService 创建一个新的 ConversationService。
func NewConversationService(repo repository.ConversationRepository, archiveRepo repository.ChatRecordRepository) ConversationService {
	return &conversationService{repo: repo, archiveRepo: archiveRepo}
}

// GetConversationHistory 获取用户当前会话的消息历史。
func (s *conversationService) GetConversationHistory(ctx context.Context, userID uint) ([]model.ChatMessage, error) {
	conversationID, err := s.repo.GetConversationID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if conversationID == "" {
		return []model.ChatMessage{}, nil
	}
	return s.repo.GetConversationHistory(ctx, conversationID)
}

func (s *conversationService) AddMessagesToConversation(ctx context.Context, userID uint, messages ...model.ChatMessage) (string, error) {
	conversationID, err := s.repo.GetOrCreateConversationID(ctx, userID)
	if err != nil {
		return "", err
	}
	history, err := s.repo.GetConversationHistory(ctx, conversationID)
	if err != nil {
		return "", err
	}
	history = append(history, messages...)
	if err := s.repo.UpdateConversationHistory(ctx, conversationID, history); err != nil {
		return "", err
	}
	return conversationID, nil
}

// GetArchivedHistory 返回 MySQL 中归档的最近对话，按时间倒序。
func (s *conversationService) GetArchivedHistory(ctx context.Context, userID uint) ([]model.ChatRecord, error) {
	return s.archiveRepo.FindRecentByUser(ctx, userID, archiveLimit)
}
