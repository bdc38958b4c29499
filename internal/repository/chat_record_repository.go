package repository

import (
	"context"

	"health-dashboard-go/internal/model"

	"gorm.io/gorm"
)

// ChatRecordRepository 定义了对话归档表 chat_history 的操作。
type ChatRecordRepository interface {
	Create(ctx context.Context, record *model.ChatRecord) error
	FindRecentByUser(ctx context.Context, userID uint, limit int) ([]model.ChatRecord, error)
}

type chatRecordRepository struct {
	db *gorm.DB
}

// NewChatRecordRepository 创建一个新的 ChatRecordRepository 实例。
func NewChatRecordRepository(db *gorm.DB) ChatRecordRepository {
	return &chatRecordRepository{db: db}
}

func (r *chatRecordRepository) Create(ctx context.Context, record *model.ChatRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindRecentByUser 按时间倒序返回最近的 limit 条记录。
func (r *chatRecordRepository) FindRecentByUser(ctx context.Context, userID uint, limit int) ([]model.ChatRecord, error) {
	var records []model.ChatRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
