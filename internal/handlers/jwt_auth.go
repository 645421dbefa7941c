package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/SAP-F-2025/eduportal-service/internal/models"
	"github.com/SAP-F-2025/eduportal-service/internal/services"
	"github.com/SAP-F-2025/eduportal-service/internal/utils"
)

const principalContextKey = "principal"

// JWTAuthMiddleware validates bearer tokens and exposes the caller as a
// Principal on the request context.
type JWTAuthMiddleware struct {
	secret []byte
	logger utils.Logger
}

func NewJWTAuthMiddleware(secret string, logger utils.Logger) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{
		secret: []byte(secret),
		logger: logger,
	}
}

func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, CodeUnauthorized, "No token provided")
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := &services.Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.secret, nil
		})
		if err != nil {
			// expiry gets its own code so clients can refresh instead of
			// forcing a re-login
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortUnauthorized(c, CodeTokenExpired, "Token expired")
				return
			}
			abortUnauthorized(c, CodeUnauthorized, "Invalid token")
			return
		}
		if !token.Valid || claims.UserID == "" || !claims.Role.Valid() {
			abortUnauthorized(c, CodeUnauthorized, "Invalid token")
			return
		}

		c.Set(principalContextKey, models.Principal{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		})

		c.Next()
	}
}

// RequireRoleMiddleware gates a route group to exact role membership.
// There is no implicit passthrough: an admin is not a student.
func (m *JWTAuthMiddleware) RequireRoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			abortUnauthorized(c, CodeUnauthorized, "No token provided")
			return
		}

		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
			Success: false,
			Error: models.ErrorBody{
				Code:    CodeForbidden,
				Message: "Insufficient permissions",
			},
		})
	}
}

// GetPrincipal reads the authenticated caller from the gin context.
func GetPrincipal(c *gin.Context) (models.Principal, bool) {
	value, exists := c.Get(principalContextKey)
	if !exists {
		return models.Principal{}, false
	}
	principal, ok := value.(models.Principal)
	return principal, ok
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Success: false,
		Error: models.ErrorBody{
			Code:    code,
			Message: message,
		},
	})
}
