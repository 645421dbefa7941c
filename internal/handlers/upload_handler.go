package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/eduportal-service/internal/services"
	"github.com/SAP-F-2025/eduportal-service/internal/utils"
)

type UploadHandler struct {
	BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(uploadService services.UploadService, logger utils.Logger) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   NewBaseHandler(logger),
		uploadService: uploadService,
	}
}

// UploadImage accepts a multipart "image" field and stores it in object
// storage.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	h.LogRequest(c, "Uploading image")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, CodeBadRequest, "Missing image file", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, CodeBadRequest, "Unreadable file", nil)
		return
	}
	defer file.Close()

	result, err := h.uploadService.UploadImage(
		c.Request.Context(),
		file,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
	)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusCreated, result)
}
