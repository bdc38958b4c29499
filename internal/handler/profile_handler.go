package handler

import (
	"health-dashboard-go/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler 处理健康档案与 BMI 请求。
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler 创建一个新的 ProfileHandler 实例。
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, err := h.profileService.GetProfile(user.ID)
	if err != nil {
		respondError(c, "GetProfile", err)
		return
	}
	respondOK(c, "success", profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req service.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "无效的请求负载")
		return
	}
	profile, err := h.profileService.UpdateProfile(user.ID, req)
	if err != nil {
		respondError(c, "UpdateProfile", err)
		return
	}
	respondOK(c, "Profile updated successfully", profile)
}

// GetBMI 返回根据档案身高体重计算的 BMI。
func (h *ProfileHandler) GetBMI(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	bmi, err := h.profileService.GetBMI(user.ID)
	if err != nil {
		respondError(c, "GetBMI", err)
		return
	}
	respondOK(c, "success", bmi)
}
