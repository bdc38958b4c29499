package handler

import (
	"strconv"
	"time"

	"health-dashboard-go/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler 负责处理所有管理员相关的 API 请求。
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler 创建一个新的 AdminHandler 实例。
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListUsers 分页列出用户。
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	userList, err := h.adminService.ListUsers(page, size)
	if err != nil {
		respondError(c, "ListUsers", err)
		return
	}
	respondOK(c, "success", userList)
}

// GetAllConversations 查询所有用户的当前对话，支持 userid、start_date、end_date 过滤。
func (h *AdminHandler) GetAllConversations(c *gin.Context) {
	var userID *uint
	if userIDStr := c.Query("userid"); userIDStr != "" {
		id, err := strconv.ParseUint(userIDStr, 10, 32)
		if err != nil {
			badRequest(c, "Invalid user ID format")
			return
		}
		uid := uint(id)
		userID = &uid
	}

	var startTime, endTime *time.Time
	timeLayout := "2006-01-02"
	if startDateStr := c.Query("start_date"); startDateStr != "" {
		t, err := time.Parse(timeLayout, startDateStr)
		if err != nil {
			badRequest(c, "Invalid start_date format, use YYYY-MM-DD")
			return
		}
		startTime = &t
	}
	if endDateStr := c.Query("end_date"); endDateStr != "" {
		t, err := time.Parse(timeLayout, endDateStr)
		if err != nil {
			badRequest(c, "Invalid end_date format, use YYYY-MM-DD")
			return
		}
		// 包含当天
		t = t.Add(24*time.Hour - time.Second)
		endTime = &t
	}

	conversations, err := h.adminService.GetAllConversations(c.Request.Context(), userID, startTime, endTime)
	if err != nil {
		respondError(c, "GetAllConversations", err)
		return
	}
	respondOK(c, "success", conversations)
}
