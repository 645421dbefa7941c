package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/eduportal-service/internal/services"
	"github.com/SAP-F-2025/eduportal-service/internal/utils"
)

type FavoriteHandler struct {
	BaseHandler
	favoriteService services.FavoriteService
}

func NewFavoriteHandler(favoriteService services.FavoriteService, logger utils.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		BaseHandler:     NewBaseHandler(logger),
		favoriteService: favoriteService,
	}
}

func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	principal, ok := GetPrincipal(c)
	if !ok {
		h.sendError(c, http.StatusUnauthorized, CodeUnauthorized, "No token provided", nil)
		return
	}

	params := parseListParams(c)

	favorites, meta, err := h.favoriteService.List(c.Request.Context(), principal, params)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendPaginated(c, favorites, meta)
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	principal, ok := GetPrincipal(c)
	if !ok {
		h.sendError(c, http.StatusUnauthorized, CodeUnauthorized, "No token provided", nil)
		return
	}

	favorite, err := h.favoriteService.Add(c.Request.Context(), principal, c.Param("lessonId"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendSuccess(c, http.StatusCreated, favorite)
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	principal, ok := GetPrincipal(c)
	if !ok {
		h.sendError(c, http.StatusUnauthorized, CodeUnauthorized, "No token provided", nil)
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), principal, c.Param("lessonId")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.sendNoContent(c)
}
