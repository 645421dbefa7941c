package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/eduportal-service/internal/cache"
	"github.com/SAP-F-2025/eduportal-service/internal/models"
	"github.com/SAP-F-2025/eduportal-service/internal/repositories"
	"github.com/SAP-F-2025/eduportal-service/internal/validator"
)

// ===== SERVICE INTERFACE =====

type LessonService interface {
	List(ctx context.Context, principal models.Principal, params ListParams) ([]*models.LessonWithFavorite, models.PaginationMeta, error)
	GetByID(ctx context.Context, principal models.Principal, id string) (*models.LessonDetail, error)
	Create(ctx context.Context, req *CreateLessonRequest) (*models.Lesson, error)
	Update(ctx context.Context, id string, req *UpdateLessonRequest) (*models.Lesson, error)
	Delete(ctx context.Context, id string) error
}

// ===== SERVICE IMPLEMENTATION =====

type lessonService struct {
	repo         repositories.Repository
	db           *gorm.DB
	logger       *slog.Logger
	validator    *validator.Validator
	cacheManager *cache.CacheManager
	pagination   PaginationConfig
}

func NewLessonService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, cacheManager *cache.CacheManager, pagination PaginationConfig) LessonService {
	return &lessonService{
		repo:         repo,
		db:           db,
		logger:       logger,
		validator:    validator,
		cacheManager: cacheManager,
		pagination:   pagination,
	}
}

// List answers lessons with favorite counts. For student callers each
// lesson is additionally marked with whether they favorited it.
func (s *lessonService) List(ctx context.Context, principal models.Principal, params ListParams) ([]*models.LessonWithFavorite, models.PaginationMeta, error) {
	params = params.Normalize(s.pagination)

	filters := repositories.LessonFilters{
		Limit:  params.Limit,
		Offset: params.Offset(),
	}
	if params.Search != "" {
		filters.Search = &params.Search
	}

	// the raw page is cache-aside; favorite counts and per-student flags
	// stay live because favorite writes never invalidate lesson keys
	pageKey := fmt.Sprintf("list:%d:%d:%s", params.Page, params.Limit, params.Search)
	var page lessonPage
	if err := s.cacheManager.Lesson.Get(ctx, pageKey, &page); err != nil {
		lessons, total, err := s.repo.Lesson().List(ctx, nil, filters)
		if err != nil {
			return nil, models.PaginationMeta{}, fmt.Errorf("failed to list lessons: %w", err)
		}
		page = lessonPage{Lessons: lessons, Total: total}
		if err := s.cacheManager.Lesson.Set(ctx, pageKey, page, cache.LessonCacheConfig.TTL); err != nil {
			s.logger.Warn("failed to cache lesson page", "error", err)
		}
	}
	lessons, total := page.Lessons, page.Total

	lessonIDs := make([]string, len(lessons))
	for i, lesson := range lessons {
		lessonIDs[i] = lesson.ID
	}

	favoriteCounts, err := s.repo.Lesson().CountFavorites(ctx, nil, lessonIDs)
	if err != nil {
		return nil, models.PaginationMeta{}, fmt.Errorf("failed to count favorites: %w", err)
	}

	favorited, err := s.favoritedSet(ctx, principal, lessonIDs)
	if err != nil {
		return nil, models.PaginationMeta{}, err
	}

	out := make([]*models.LessonWithFavorite, 0, len(lessons))
	for _, lesson := range lessons {
		item := &models.LessonWithFavorite{
			Lesson:        *lesson,
			FavoriteCount: favoriteCounts[lesson.ID],
		}
		if favorited != nil {
			isFav := favorited[lesson.ID]
			item.IsFavorited = &isFav
		}
		out = append(out, item)
	}

	return out, params.Meta(total), nil
}

func (s *lessonService) GetByID(ctx context.Context, principal models.Principal, id string) (*models.LessonDetail, error) {
	lesson, err := s.cachedLesson(ctx, id)
	if err != nil {
		return nil, err
	}

	favoriteCounts, err := s.repo.Lesson().CountFavorites(ctx, nil, []string{lesson.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}

	_, totalRatings, err := s.repo.Rating().Aggregate(ctx, nil, lesson.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}

	detail := &models.LessonDetail{
		LessonWithFavorite: models.LessonWithFavorite{
			Lesson:        *lesson,
			FavoriteCount: favoriteCounts[lesson.ID],
		},
		TotalRatings: totalRatings,
	}

	if principal.Role == models.RoleStudent {
		student, err := s.repo.Student().GetByUserID(ctx, nil, principal.UserID)
		if err != nil {
			return nil, notFoundOr(err, ErrStudentNotFound)
		}

		isFav := false
		if _, err := s.repo.Favorite().GetByStudentAndLesson(ctx, nil, student.ID, lesson.ID); err == nil {
			isFav = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check favorite: %w", err)
		}
		detail.IsFavorited = &isFav

		if rating, err := s.repo.Rating().GetByStudentAndLesson(ctx, nil, student.ID, lesson.ID); err == nil {
			detail.UserRating = &rating.Value
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load user rating: %w", err)
		}
	}

	return detail, nil
}

func (s *lessonService) Create(ctx context.Context, req *CreateLessonRequest) (*models.Lesson, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	lesson := &models.Lesson{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}

	if err := s.repo.Lesson().Create(ctx, nil, lesson); err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}

	cache.InvalidateLessonCache(ctx, s.cacheManager, lesson.ID)
	s.logger.Info("lesson created", "lesson_id", lesson.ID, "title", lesson.Title)

	return lesson, nil
}

func (s *lessonService) Update(ctx context.Context, id string, req *UpdateLessonRequest) (*models.Lesson, error) {
	// empty strings are treated as absent, not as clearing the field
	blankToNil(&req.ImageURL)

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	lesson, err := s.repo.Lesson().GetByID(ctx, nil, id)
	if err != nil {
		return nil, notFoundOr(err, ErrLessonNotFound)
	}

	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.Description != nil {
		lesson.Description = *req.Description
	}
	if req.ImageURL != nil {
		lesson.ImageURL = req.ImageURL
	}

	if err := s.repo.Lesson().Update(ctx, nil, lesson); err != nil {
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}

	cache.InvalidateLessonCache(ctx, s.cacheManager, lesson.ID)
	s.logger.Info("lesson updated", "lesson_id", lesson.ID)

	return lesson, nil
}

func (s *lessonService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Lesson().Delete(ctx, nil, id); err != nil {
		return notFoundOr(err, ErrLessonNotFound)
	}

	cache.InvalidateLessonCache(ctx, s.cacheManager, id)
	s.logger.Info("lesson deleted", "lesson_id", id)

	return nil
}

// lessonPage is the cached shape of one listing page.
type lessonPage struct {
	Lessons []*models.Lesson `json:"lessons"`
	Total   int64            `json:"total"`
}

// cachedLesson reads the lesson row through the cache. Per-caller
// favorite and rating fields are never cached.
func (s *lessonService) cachedLesson(ctx context.Context, id string) (*models.Lesson, error) {
	key := "id:" + id
	var cached models.Lesson
	if err := s.cacheManager.Lesson.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	lesson, err := s.repo.Lesson().GetByID(ctx, nil, id)
	if err != nil {
		return nil, notFoundOr(err, ErrLessonNotFound)
	}
	if err := s.cacheManager.Lesson.Set(ctx, key, lesson, cache.LessonCacheConfig.TTL); err != nil {
		s.logger.Warn("failed to cache lesson", "error", err, "lesson_id", id)
	}
	return lesson, nil
}

// favoritedSet resolves which of the given lessons the caller favorited.
// Admins have no student profile, so they get a nil set and listings
// omit the flag.
func (s *lessonService) favoritedSet(ctx context.Context, principal models.Principal, lessonIDs []string) (map[string]bool, error) {
	if principal.Role != models.RoleStudent {
		return nil, nil
	}

	student, err := s.repo.Student().GetByUserID(ctx, nil, principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve student: %w", err)
	}

	ids, err := s.repo.Favorite().ListLessonIDsByStudent(ctx, nil, student.ID, lessonIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}

	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
