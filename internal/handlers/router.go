package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/eduportal-service/internal/models"
	"github.com/SAP-F-2025/eduportal-service/internal/services"
	"github.com/SAP-F-2025/eduportal-service/internal/utils"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	studentHandler   *StudentHandler
	lessonHandler    *LessonHandler
	favoriteHandler  *FavoriteHandler
	schoolHandler    *SchoolHandler
	dashboardHandler *DashboardHandler
	uploadHandler    *UploadHandler
	authMiddleware   *JWTAuthMiddleware
	serviceManager   services.ServiceManager
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger, jwtSecret string) *HandlerManager {
	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.Auth(), logger),
		studentHandler:   NewStudentHandler(serviceManager.Student(), logger),
		lessonHandler:    NewLessonHandler(serviceManager.Lesson(), serviceManager.Rating(), logger),
		favoriteHandler:  NewFavoriteHandler(serviceManager.Favorite(), logger),
		schoolHandler:    NewSchoolHandler(serviceManager.School(), logger),
		dashboardHandler: NewDashboardHandler(serviceManager.Dashboard(), logger),
		uploadHandler:    NewUploadHandler(serviceManager.Upload(), logger),
		authMiddleware:   NewJWTAuthMiddleware(jwtSecret, logger),
		serviceManager:   serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", hm.authHandler.Register)
		auth.POST("/login", hm.authHandler.Login)
		auth.GET("/me", hm.authMiddleware.AuthMiddleware(), hm.authHandler.Me)
	}

	authed := v1.Group("")
	authed.Use(hm.authMiddleware.AuthMiddleware())

	adminOnly := hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin)
	studentOnly := hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent)

	students := authed.Group("/students")
	{
		students.GET("", adminOnly, hm.studentHandler.ListStudents)
		students.GET("/export", adminOnly, hm.studentHandler.ExportStudents)
		students.GET("/profile", studentOnly, hm.studentHandler.GetProfile)
		students.POST("", adminOnly, hm.studentHandler.CreateStudent)
		students.GET("/:id", hm.studentHandler.GetStudent)
		students.PUT("/:id", hm.studentHandler.UpdateStudent)
		students.DELETE("/:id", adminOnly, hm.studentHandler.DeleteStudent)
	}

	lessons := authed.Group("/lessons")
	{
		lessons.GET("", hm.lessonHandler.ListLessons)
		lessons.GET("/:id", hm.lessonHandler.GetLesson)
		lessons.POST("", adminOnly, hm.lessonHandler.CreateLesson)
		lessons.PUT("/:id", adminOnly, hm.lessonHandler.UpdateLesson)
		lessons.DELETE("/:id", adminOnly, hm.lessonHandler.DeleteLesson)

		lessons.POST("/:id/rate", studentOnly, hm.lessonHandler.RateLesson)
		lessons.GET("/:id/my-rating", studentOnly, hm.lessonHandler.GetMyRating)
	}

	favorites := authed.Group("/favorites")
	favorites.Use(studentOnly)
	{
		favorites.GET("", hm.favoriteHandler.ListFavorites)
		favorites.POST("/:lessonId", hm.favoriteHandler.AddFavorite)
		favorites.DELETE("/:lessonId", hm.favoriteHandler.RemoveFavorite)
	}

	school := authed.Group("/school", adminOnly)
	{
		school.GET("", hm.schoolHandler.GetSchool)
		school.PUT("", hm.schoolHandler.UpdateSchool)
	}

	dashboard := authed.Group("/dashboard")
	dashboard.Use(adminOnly)
	{
		dashboard.GET("/stats", hm.dashboardHandler.GetStats)
		dashboard.GET("/analytics", hm.dashboardHandler.GetAnalytics)
	}

	authed.POST("/upload", hm.uploadHandler.UploadImage)
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	status := http.StatusOK
	health := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "eduportal-service",
	}

	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		status = http.StatusServiceUnavailable
		health["status"] = "unhealthy"
	}

	c.JSON(status, health)
}
