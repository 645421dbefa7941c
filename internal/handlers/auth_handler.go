package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/eduportal-service/internal/services"
	"github.com/SAP-F-2025/eduportal-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// Register creates a student account and signs the caller in.
func (h *AuthHandler) Register(c *gin.Context) {
	h.LogRequest(c, "Registering student")

	var req services.RegisterRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Logging in")

	var req services.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusOK, resp)
}

// Me answers the authenticated caller's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := GetPrincipal(c)
	if !ok {
		h.sendError(c, http.StatusUnauthorized, CodeUnauthorized, "No token provided", nil)
		return
	}

	user, err := h.authService.Me(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusOK, user)
}
