// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"health-dashboard-go/internal/model"
	"health-dashboard-go/internal/repository"
)

// UserListResponse 定义了用户列表 API 的响应结构。
type UserListResponse struct {
	Content       []UserDetailResponse `json:"content"`
	TotalElements int64                `json:"totalElements"`
	TotalPages    int                  `json:"totalPages"`
	Size          int                  `json:"size"`
	Number        int                  `json:"number"`
}

// UserDetailResponse 定义了用户列表项的详细结构。
type UserDetailResponse struct {
	UserID    uint            `json:"userId"`
	Email     string          `json:"email"`
	FullName  string          `json:"fullName"`
	Role      string          `json:"role"`
	Status    int             `json:"status"`
	CreatedAt model.LocalTime `json:"createdAt"`
}

// ConversationEntry 是管理员视图中的一条对话消息。
type ConversationEntry struct {
	UserID    uint   `json:"userId"`
	Email     string `json:"email"`
	Role      string `json:"role"` // user 或 assistant
	Content   string `json:"content"`
	Error     bool   `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

// AdminService 接口定义了所有管理员相关的业务操作。
type AdminService interface {
	ListUsers(page, size int) (*UserListResponse, error)
	GetAllConversations(ctx context.Context, userID *uint, startTime, endTime *time.Time) ([]ConversationEntry, error)
}

// adminService 是 AdminService 接口的实现。
type adminService struct {
	userRepo         repository.UserRepository
	conversationRepo repository.ConversationRepository
}

// NewAdminService 创建一个新的 AdminService 实例。
func NewAdminService(userRepo repository.UserRepository, conversationRepo repository.ConversationRepository) AdminService {
	return &adminService{
		userRepo:         userRepo,
		conversationRepo: conversationRepo,
	}
}

// ListUsers 以分页的形式返回用户列表，page 从 1 开始。
func (s *adminService) ListUsers(page, size int) (*UserListResponse, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	offset := (page - 1) * size
	users, total, err := s.userRepo.FindWithPagination(offset, size)
	if err != nil {
		return nil, err
	}

	userResponses := make([]UserDetailResponse, 0, len(users))
	for _, u := range users {
		// 转换角色为状态码
		status := 1
		if u.Role == model.RoleAdmin {
			status = 0
		}
		userResponses = append(userResponses, UserDetailResponse{
			UserID:    u.ID,
			Email:     u.Email,
			FullName:  u.FullName,
			Role:      u.Role,
			Status:    status,
			CreatedAt: model.LocalTime(u.CreatedAt),
		})
	}

	totalPages := 0
	if total > 0 {
		totalPages = (int(total) + size - 1) / size
	}

	return &UserListResponse{
		Content:       userResponses,
		TotalElements: total,
		TotalPages:    totalPages,
		Size:          size,
		Number:        page,
	}, nil
}

// GetAllConversations 返回所有用户（或指定用户）当前对话的消息，可按时间过滤。
func (s *adminService) GetAllConversations(ctx context.Context, userID *uint, startTime, endTime *time.Time) ([]ConversationEntry, error) {
	if userID != nil {
		user, err := s.userRepo.FindByID(*userID)
		if err != nil {
			return nil, ErrUserNotFound
		}
		return s.getConversationsForUser(ctx, user, startTime, endTime)
	}

	mappings, err := s.conversationRepo.GetAllUserConversationMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get user conversation mappings from redis: %w", err)
	}

	uids := make([]uint, 0, len(mappings))
	for uid := range mappings {
		uids = append(uids, uid)
	}
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })

	all := []ConversationEntry{}
	for _, uid := range uids {
		user, err := s.userRepo.FindByID(uid)
		if err != nil {
			continue
		}
		entries, err := s.getConversationsForUser(ctx, user, startTime, endTime)
		if err != nil {
			continue
		}
		all = append(all, entries...)
	}
	return all, nil
}

func (s *adminService) getConversationsForUser(ctx context.Context, user *model.User, startTime, endTime *time.Time) ([]ConversationEntry, error) {
	conversationID, err := s.conversationRepo.GetConversationID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation id: %w", err)
	}
	if conversationID == "" {
		return []ConversationEntry{}, nil
	}

	history, err := s.conversationRepo.GetConversationHistory(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation history: %w", err)
	}

	entries := []ConversationEntry{}
	for _, msg := range history {
		if startTime != nil && msg.Timestamp.Before(*startTime) {
			continue
		}
		if endTime != nil && msg.Timestamp.After(*endTime) {
			continue
		}
		role := "user"
		if msg.IsBot {
			role = "assistant"
		}
		entries = append(entries, ConversationEntry{
			UserID:    user.ID,
			Email:     user.Email,
			Role:      role,
			Content:   msg.Text,
			Error:     msg.Error,
			Timestamp: msg.Timestamp.Format("2006-01-02T15:04:05"),
		})
	}
	return entries, nil
}
