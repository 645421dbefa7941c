package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/eduportal-service/internal/services"
	"github.com/SAP-F-2025/eduportal-service/internal/utils"
)

type LessonHandler struct {
	BaseHandler
	lessonService services.LessonService
	ratingService services.RatingService
}

func NewLessonHandler(lessonService services.LessonService, ratingService services.RatingService, logger utils.Logger) *LessonHandler {
	return &LessonHandler{
		BaseHandler:   NewBaseHandler(logger),
		lessonService: lessonService,
		ratingService: ratingService,
	}
}

func (h *LessonHandler) ListLessons(c *gin.Context) {
	principal, ok := GetPrincipal(c)
	if !ok {
		h.sendError(c, http.StatusUnauthorized, CodeUnauthorized, "No token provided", nil)
		return
	}

	params := parseListParams(c)

	lessons, meta, err := h.lessonService.List(c.Request.Context(), principal, params)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendPaginated(c, lessons, meta)
}

func (h *LessonHandler) GetLesson(c *gin.Context) {
	principal, ok := GetPrincipal(c)
	if !ok {
		h.sendError(c, http.StatusUnauthorized, CodeUnauthorized, "No token provided", nil)
		return
	}

	lesson, err := h.lessonService.GetByID(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusOK, lesson)
}

func (h *LessonHandler) CreateLesson(c *gin.Context) {
	h.LogRequest(c, "Creating lesson")

	var req services.CreateLessonRequest
	if !h.bindJSON(c, &req) {
		return
	}

	lesson, err := h.lessonService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusCreated, lesson)
}

func (h *LessonHandler) UpdateLesson(c *gin.Context) {
	h.LogRequest(c, "Updating lesson", "lesson_id", c.Param("id"))

	var req services.UpdateLessonRequest
	if !h.bindJSON(c, &req) {
		return
	}

	lesson, err := h.lessonService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusOK, lesson)
}

func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	h.LogRequest(c, "Deleting lesson", "lesson_id", c.Param("id"))

	if err := h.lessonService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendNoContent(c)
}

// RateLesson records the caller's 1..5 rating and answers the refreshed
// aggregate.
func (h *LessonHandler) RateLesson(c *gin.Context) {
	principal, ok := GetPrincipal(c)
	if !ok {
		h.sendError(c, http.StatusUnauthorized, CodeUnauthorized, "No token provided", nil)
		return
	}

	var req services.RateLessonRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.ratingService.Rate(c.Request.Context(), principal, c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusOK, result)
}

func (h *LessonHandler) GetMyRating(c *gin.Context) {
	principal, ok := GetPrincipal(c)
	if !ok {
		h.sendError(c, http.StatusUnauthorized, CodeUnauthorized, "No token provided", nil)
		return
	}

	rating, err := h.ratingService.GetMyRating(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusOK, rating)
}
