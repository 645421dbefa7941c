package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/eduportal-service/internal/cache"
	"github.com/SAP-F-2025/eduportal-service/internal/events"
	"github.com/SAP-F-2025/eduportal-service/internal/repositories"
	"github.com/SAP-F-2025/eduportal-service/internal/validator"
)

// ServiceManagerConfig holds the settings services need beyond their
// repository access.
type ServiceManagerConfig struct {
	JWT        JWTConfig
	BcryptCost int
	Pagination PaginationConfig
	Upload     UploadConfig
}

// serviceManager implements ServiceManager
type serviceManager struct {
	db           *gorm.DB
	repo         repositories.Repository
	logger       *slog.Logger
	validator    *validator.Validator
	cacheManager *cache.CacheManager
	publisher    events.EventPublisher
	minioClient  *minio.Client
	config       ServiceManagerConfig

	authService      AuthService
	studentService   StudentService
	lessonService    LessonService
	favoriteService  FavoriteService
	ratingService    RatingService
	schoolService    SchoolService
	dashboardService DashboardService
	uploadService    UploadService
	eventRelay       NotificationEventService

	initialized bool
	mu          sync.RWMutex
}

func NewServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, cacheManager *cache.CacheManager, publisher events.EventPublisher, minioClient *minio.Client, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		db:           db,
		repo:         repo,
		logger:       logger,
		validator:    validator,
		cacheManager: cacheManager,
		publisher:    publisher,
		minioClient:  minioClient,
		config:       config,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.authService = NewAuthService(sm.repo, sm.db, sm.logger, sm.validator, sm.config.JWT, sm.config.BcryptCost)
	sm.studentService = NewStudentService(sm.repo, sm.db, sm.logger, sm.validator, sm.cacheManager, sm.config.Pagination, sm.config.BcryptCost)
	sm.lessonService = NewLessonService(sm.repo, sm.db, sm.logger, sm.validator, sm.cacheManager, sm.config.Pagination)
	sm.favoriteService = NewFavoriteService(sm.repo, sm.db, sm.logger, sm.config.Pagination)
	sm.ratingService = NewRatingService(sm.repo, sm.db, sm.logger, sm.validator, sm.cacheManager)
	sm.schoolService = NewSchoolService(sm.repo, sm.db, sm.logger, sm.validator, sm.cacheManager)
	sm.dashboardService = NewDashboardService(sm.repo, sm.db, sm.logger, sm.cacheManager)
	sm.uploadService = NewUploadService(sm.minioClient, sm.logger, sm.config.Upload)
	sm.eventRelay = NewNotificationEventService(sm.repo, sm.publisher, sm.logger)

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if err := sm.publisher.Close(); err != nil {
		return fmt.Errorf("failed to close event publisher: %w", err)
	}

	sm.initialized = false
	return nil
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	return sm.repo.Ping(ctx)
}

func (sm *serviceManager) get(name string) {
	if !sm.initialized {
		panic(fmt.Sprintf("service manager not initialized, cannot serve %s", name))
	}
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("auth")
	return sm.authService
}

func (sm *serviceManager) Student() StudentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("student")
	return sm.studentService
}

func (sm *serviceManager) Lesson() LessonService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("lesson")
	return sm.lessonService
}

func (sm *serviceManager) Favorite() FavoriteService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("favorite")
	return sm.favoriteService
}

func (sm *serviceManager) Rating() RatingService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("rating")
	return sm.ratingService
}

func (sm *serviceManager) School() SchoolService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("school")
	return sm.schoolService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("dashboard")
	return sm.dashboardService
}

func (sm *serviceManager) Upload() UploadService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("upload")
	return sm.uploadService
}

// EventRelay exposes the outbox relay so main can run it alongside the
// HTTP server.
func (sm *serviceManager) EventRelay() NotificationEventService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("event relay")
	return sm.eventRelay
}
