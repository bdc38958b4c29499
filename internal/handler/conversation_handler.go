package handler

import (
	"health-dashboard-go/internal/service"

	"github.com/gin-gonic/gin"
)

// ConversationHandler 处理与对话历史相关的 API 请求。
type ConversationHandler struct {
	service service.ConversationService
}

// NewConversationHandler 创建一个新的 ConversationHandler。
func NewConversationHandler(service service.ConversationService) *ConversationHandler {
	return &ConversationHandler{service: service}
}

// GetConversations 处理获取用户当前对话历史的请求。
func (h *ConversationHandler) GetConversations(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	history, err := h.service.GetConversationHistory(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, "GetConversations", err)
		return
	}
	respondOK(c, "success", history)
}

// GetArchive 返回经 Kafka 归档到 MySQL 的最近对话记录。
func (h *ConversationHandler) GetArchive(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	records, err := h.service.GetArchivedHistory(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, "GetArchive", err)
		return
	}
	respondOK(c, "success", records)
}
