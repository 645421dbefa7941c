package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/eduportal-service/internal/models"
	"github.com/SAP-F-2025/eduportal-service/internal/services"
	"github.com/SAP-F-2025/eduportal-service/internal/utils"
)

// Error codes carried in the response envelope.
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeValidationError = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeTokenExpired    = "TOKEN_EXPIRED"
	CodeInternal        = "INTERNAL_ERROR"

	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// BaseHandler carries the helpers shared by all handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.GetLogger(c).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	utils.GetLogger(c).Error(msg, args...)
}

// ===== RESPONSE HELPERS =====

func (h *BaseHandler) sendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.SuccessResponse{Success: true, Data: data})
}

func (h *BaseHandler) sendSuccessWithMessage(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, models.SuccessResponse{Success: true, Data: data, Message: message})
}

func (h *BaseHandler) sendPaginated(c *gin.Context, data interface{}, meta models.PaginationMeta) {
	c.JSON(http.StatusOK, models.PaginatedResponse{Success: true, Data: data, Meta: meta})
}

func (h *BaseHandler) sendNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func (h *BaseHandler) sendError(c *gin.Context, status int, code, message string, details interface{}) {
	c.JSON(status, models.ErrorResponse{
		Success: false,
		Error: models.ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// handleServiceError maps service errors onto the response envelope.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.sendError(c, http.StatusUnprocessableEntity, CodeValidationError, "Validation failed", validationErrors.FieldMap())
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		h.sendError(c, http.StatusForbidden, CodeForbidden, "Access denied", nil)
		return
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		h.sendError(c, http.StatusUnauthorized, CodeUnauthorized, "Invalid email or password", nil)
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrStudentNotFound),
		errors.Is(err, services.ErrLessonNotFound),
		errors.Is(err, services.ErrFavoriteNotFound),
		errors.Is(err, services.ErrRatingNotFound),
		errors.Is(err, services.ErrSchoolNotFound):
		h.sendError(c, http.StatusNotFound, CodeNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrAlreadyFavorited):
		h.sendError(c, http.StatusConflict, CodeConflict, err.Error(), nil)
	case errors.Is(err, services.ErrStorageUnavailable):
		h.sendError(c, http.StatusServiceUnavailable, CodeServiceUnavailable, "Upload storage unavailable", nil)
	default:
		h.LogError(c, err, "unhandled service error")
		h.sendError(c, http.StatusInternalServerError, CodeInternal, "Internal server error", nil)
	}
}

// bindJSON reads the request body, answering a uniform 400 on malformed
// payloads. Schema validation happens later in the service layer and
// answers 422 instead.
func (h *BaseHandler) bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		h.sendError(c, http.StatusBadRequest, CodeBadRequest, "Invalid request body", nil)
		return false
	}
	return true
}
