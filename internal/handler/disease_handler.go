package handler

import (
	"health-dashboard-go/internal/service"

	"github.com/gin-gonic/gin"
)

// DiseaseHandler 提供疾病目录查询。
type DiseaseHandler struct {
	diseaseService service.DiseaseService
}

// NewDiseaseHandler 创建一个新的 DiseaseHandler。
func NewDiseaseHandler(diseaseService service.DiseaseService) *DiseaseHandler {
	return &DiseaseHandler{diseaseService: diseaseService}
}

func (h *DiseaseHandler) List(c *gin.Context) {
	names, err := h.diseaseService.List()
	if err != nil {
		respondError(c, "ListDiseases", err)
		return
	}
	respondOK(c, "success", names)
}

func (h *DiseaseHandler) Get(c *gin.Context) {
	info, err := h.diseaseService.Get(c.Param("name"))
	if err != nil {
		respondError(c, "GetDisease", err)
		return
	}
	respondOK(c, "success", info)
}
