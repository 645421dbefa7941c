package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/eduportal-service/internal/cache"
	"github.com/SAP-F-2025/eduportal-service/internal/models"
	"github.com/SAP-F-2025/eduportal-service/internal/repositories"
	"github.com/SAP-F-2025/eduportal-service/internal/validator"
)

// ===== SERVICE INTERFACE =====

type SchoolService interface {
	Get(ctx context.Context) (*models.School, error)
	Update(ctx context.Context, req *UpdateSchoolRequest) (*models.School, error)
}

// ===== SERVICE IMPLEMENTATION =====

type schoolService struct {
	repo         repositories.Repository
	db           *gorm.DB
	logger       *slog.Logger
	validator    *validator.Validator
	cacheManager *cache.CacheManager
}

func NewSchoolService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, cacheManager *cache.CacheManager) SchoolService {
	return &schoolService{
		repo:         repo,
		db:           db,
		logger:       logger,
		validator:    validator,
		cacheManager: cacheManager,
	}
}

const schoolCacheKey = "profile"

func (s *schoolService) Get(ctx context.Context) (*models.School, error) {
	var cached models.School
	if err := s.cacheManager.School.Get(ctx, schoolCacheKey, &cached); err == nil {
		return &cached, nil
	}

	school, err := s.repo.School().Get(ctx, nil)
	if err != nil {
		return nil, notFoundOr(err, ErrSchoolNotFound)
	}

	if err := s.cacheManager.School.Set(ctx, schoolCacheKey, school, cache.SchoolCacheConfig.TTL); err != nil {
		s.logger.Warn("failed to cache school profile", "error", err)
	}

	return school, nil
}

// Update patches the singleton profile, creating it if the seed row was
// removed.
func (s *schoolService) Update(ctx context.Context, req *UpdateSchoolRequest) (*models.School, error) {
	// empty strings are treated as absent, not as clearing the field
	blankToNil(&req.Name, &req.LogoURL, &req.PhoneNumber)

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	current, err := s.repo.School().Get(ctx, nil)
	if err != nil {
		current = &models.School{}
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.LogoURL != nil {
		current.LogoURL = req.LogoURL
	}
	if req.PhoneNumber != nil {
		current.PhoneNumber = req.PhoneNumber
	}

	school, err := s.repo.School().Upsert(ctx, nil, current)
	if err != nil {
		return nil, fmt.Errorf("failed to update school: %w", err)
	}

	cache.SafeDelete(ctx, s.cacheManager.School, schoolCacheKey)
	s.logger.Info("school profile updated", "school_id", school.ID)

	return school, nil
}
