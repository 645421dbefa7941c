package services

import (
	"context"

	"github.com/SAP-F-2025/eduportal-service/internal/validator"
)

// ===== REQUEST DTOs =====

// Request shapes live next to their validation rules.
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type CreateStudentRequest = validator.CreateStudentRequest
type UpdateStudentRequest = validator.UpdateStudentRequest
type CreateLessonRequest = validator.CreateLessonRequest
type UpdateLessonRequest = validator.UpdateLessonRequest
type RateLessonRequest = validator.RateLessonRequest
type UpdateSchoolRequest = validator.UpdateSchoolRequest

// ServiceManager wires every domain service behind one handle.
type ServiceManager interface {
	Auth() AuthService
	Student() StudentService
	Lesson() LessonService
	Favorite() FavoriteService
	Rating() RatingService
	School() SchoolService
	Dashboard() DashboardService
	Upload() UploadService
	EventRelay() NotificationEventService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
	HealthCheck(ctx context.Context) error
}
