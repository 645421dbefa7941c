package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/eduportal-service/internal/services"
	"github.com/SAP-F-2025/eduportal-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	studentService services.StudentService
}

func NewStudentHandler(studentService services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:    NewBaseHandler(logger),
		studentService: studentService,
	}
}

// ListStudents answers a paginated student roster.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	h.LogRequest(c, "Listing students")

	params := parseListParams(c)

	students, meta, err := h.studentService.List(c.Request.Context(), params)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendPaginated(c, students, meta)
}

func (h *StudentHandler) GetStudent(c *gin.Context) {
	principal, ok := GetPrincipal(c)
	if !ok {
		h.sendError(c, http.StatusUnauthorized, CodeUnauthorized, "No token provided", nil)
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusOK, student)
}

// GetProfile answers the caller's own student profile.
func (h *StudentHandler) GetProfile(c *gin.Context) {
	principal, ok := GetPrincipal(c)
	if !ok {
		h.sendError(c, http.StatusUnauthorized, CodeUnauthorized, "No token provided", nil)
		return
	}

	student, err := h.studentService.GetProfile(c.Request.Context(), principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusOK, student)
}

func (h *StudentHandler) CreateStudent(c *gin.Context) {
	h.LogRequest(c, "Creating student")

	var req services.CreateStudentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusCreated, student)
}

func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	principal, ok := GetPrincipal(c)
	if !ok {
		h.sendError(c, http.StatusUnauthorized, CodeUnauthorized, "No token provided", nil)
		return
	}

	var req services.UpdateStudentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), principal, c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusOK, student)
}

func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	h.LogRequest(c, "Deleting student", "student_id", c.Param("id"))

	if err := h.studentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendNoContent(c)
}

// ExportStudents streams the roster as an XLSX download.
func (h *StudentHandler) ExportStudents(c *gin.Context) {
	h.LogRequest(c, "Exporting students")

	data, err := h.studentService.ExportXLSX(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("students-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// parseListParams reads the common page/limit/search query parameters.
func parseListParams(c *gin.Context) services.ListParams {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return services.ListParams{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	}
}
