package handler

import (
	"net/http"
	"strconv"

	"health-dashboard-go/internal/model"
	"health-dashboard-go/internal/service"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler 处理日程相关的请求。
type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

// NewScheduleHandler 创建一个新的 ScheduleHandler 实例。
func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// GetSchedule 返回按时间排序的合并日程。
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	items, err := h.scheduleService.GetSchedule(user.ID)
	if err != nil {
		respondError(c, "GetSchedule", err)
		return
	}
	respondOK(c, "success", items)
}

func (h *ScheduleHandler) AddAppointment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var a model.Appointment
	if err := c.ShouldBindJSON(&a); err != nil {
		badRequest(c, "无效的请求负载")
		return
	}
	if err := h.scheduleService.AddAppointment(user.ID, &a); err != nil {
		respondError(c, "AddAppointment", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": http.StatusCreated, "message": "Appointment added", "data": a})
}

func (h *ScheduleHandler) AddMedication(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var m model.Medication
	if err := c.ShouldBindJSON(&m); err != nil {
		badRequest(c, "无效的请求负载")
		return
	}
	if err := h.scheduleService.AddMedication(user.ID, &m); err != nil {
		respondError(c, "AddMedication", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": http.StatusCreated, "message": "Medication added", "data": m})
}

func (h *ScheduleHandler) AddActivity(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var a model.Activity
	if err := c.ShouldBindJSON(&a); err != nil {
		badRequest(c, "无效的请求负载")
		return
	}
	if err := h.scheduleService.AddActivity(user.ID, &a); err != nil {
		respondError(c, "AddActivity", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": http.StatusCreated, "message": "Activity added", "data": a})
}

// ToggleComplete 处理 PATCH /schedule/:type/:id/complete。
func (h *ScheduleHandler) ToggleComplete(c *gin.Context) {
	user, kind, id, ok := h.itemParams(c)
	if !ok {
		return
	}
	if err := h.scheduleService.ToggleComplete(user.ID, kind, id); err != nil {
		respondError(c, "ToggleComplete", err)
		return
	}
	respondOK(c, "success", nil)
}

func (h *ScheduleHandler) DeleteItem(c *gin.Context) {
	user, kind, id, ok := h.itemParams(c)
	if !ok {
		return
	}
	if err := h.scheduleService.DeleteItem(user.ID, kind, id); err != nil {
		respondError(c, "DeleteItem", err)
		return
	}
	respondOK(c, "Item deleted", nil)
}

func (h *ScheduleHandler) itemParams(c *gin.Context) (*model.User, model.ItemType, uint, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, "", 0, false
	}
	kind, err := service.ParseItemType(c.Param("type"))
	if err != nil {
		respondError(c, "ScheduleItem", err)
		return nil, "", 0, false
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		badRequest(c, "无效的条目 ID")
		return nil, "", 0, false
	}
	return user, kind, uint(id), true
}
