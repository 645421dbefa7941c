package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/eduportal-service/internal/services"
	"github.com/SAP-F-2025/eduportal-service/internal/utils"
)

type SchoolHandler struct {
	BaseHandler
	schoolService services.SchoolService
}

func NewSchoolHandler(schoolService services.SchoolService, logger utils.Logger) *SchoolHandler {
	return &SchoolHandler{
		BaseHandler:   NewBaseHandler(logger),
		schoolService: schoolService,
	}
}

func (h *SchoolHandler) GetSchool(c *gin.Context) {
	school, err := h.schoolService.Get(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusOK, school)
}

func (h *SchoolHandler) UpdateSchool(c *gin.Context) {
	h.LogRequest(c, "Updating school profile")

	var req services.UpdateSchoolRequest
	if !h.bindJSON(c, &req) {
		return
	}

	school, err := h.schoolService.Update(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusOK, school)
}
