// Package repository 提供了数据访问层的实现。
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"health-dashboard-go/internal/model"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const conversationTTL = 7 * 24 * time.Hour

// ConversationRepository 定义了对话历史记录的操作接口。
type ConversationRepository interface {
	GetOrCreateConversationID(ctx context.Context, userID uint) (string, error)
	// GetConversationID 只读查询用户当前对话 ID，不存在时返回空字符串。
	GetConversationID(ctx context.Context, userID uint) (string, error)
	GetConversationHistory(ctx context.Context, conversationID string) ([]model.ChatMessage, error)
	UpdateConversationHistory(ctx context.Context, conversationID string, messages []model.ChatMessage) error
	GetAllUserConversationMappings(ctx context.Context) (map[uint]string, error)
}

type redisConversationRepository struct {
	redisClient *redis.Client
	limit       int
}

// NewConversationRepository 创建一个新的 ConversationRepository 实例。
// limit 为每个对话保留的最大消息数，<=0 时不截断。
func NewConversationRepository(redisClient *redis.Client, limit int) ConversationRepository {
	return &redisConversationRepository{redisClient: redisClient, limit: limit}
}

func currentConversationKey(userID uint) string {
	return fmt.Sprintf("user:%d:current_conversation", userID)
}

func conversationKey(conversationID string) string {
	return "conversation:" + conversationID
}

// GetOrCreateConversationID 获取或创建一个新的对话ID。
func (r *redisConversationRepository) GetOrCreateConversationID(ctx context.Context, userID uint) (string, error) {
	userKey := currentConversationKey(userID)
	convID, err := r.redisClient.Get(ctx, userKey).Result()
	if err == redis.Nil {
		convID = uuid.NewString()
		if err := r.redisClient.Set(ctx, userKey, convID, conversationTTL).Err(); err != nil {
			return "", fmt.Errorf("failed to set conversation id: %w", err)
		}
		return convID, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get conversation id: %w", err)
	}
	return convID, nil
}

func (r *redisConversationRepository) GetConversationID(ctx context.Context, userID uint) (string, error) {
	convID, err := r.redisClient.Get(ctx, currentConversationKey(userID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get conversation id: %w", err)
	}
	return convID, nil
}

// GetConversationHistory 从 Redis 获取对话历史记录。
func (r *redisConversationRepository) GetConversationHistory(ctx context.Context, conversationID string) ([]model.ChatMessage, error) {
	jsonData, err := r.redisClient.Get(ctx, conversationKey(conversationID)).Result()
	if err == redis.Nil {
		return []model.ChatMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation history: %w", err)
	}
	var messages []model.ChatMessage
	if err := json.Unmarshal([]byte(jsonData), &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation history: %w", err)
	}
	return messages, nil
}

// UpdateConversationHistory 在 Redis 中更新对话历史记录，只保留最近 limit 条。
func (r *redisConversationRepository) UpdateConversationHistory(ctx context.Context, conversationID string, messages []model.ChatMessage) error {
	messages = TrimHistory(messages, r.limit)
	jsonData, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation history: %w", err)
	}
	if err := r.redisClient.Set(ctx, conversationKey(conversationID), jsonData, conversationTTL).Err(); err != nil {
		return fmt.Errorf("failed to set conversation history: %w", err)
	}
	return nil
}

// GetAllUserConversationMappings returns map[userID]conversationID by scanning user:*:current_conversation
func (r *redisConversationRepository) GetAllUserConversationMappings(ctx context.Context) (map[uint]string, error) {
	result := make(map[uint]string)
	iter := r.redisClient.Scan(ctx, 0, "user:*:current_conversation", 100).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		var uid uint
		if _, scanErr := fmt.Sscanf(k, "user:%d:current_conversation", &uid); scanErr != nil {
			continue
		}
		convID, getErr := r.redisClient.Get(ctx, k).Result()
		if getErr != nil {
			continue
		}
		result[uid] = convID
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan user conversation keys: %w", err)
	}
	return result, nil
}

// TrimHistory 保留最后 limit 条消息。
func TrimHistory(messages []model.ChatMessage, limit int) []model.ChatMessage {
	if limit > 0 && len(messages) > limit {
		return messages[len(messages)-limit:]
	}
	return messages
}
