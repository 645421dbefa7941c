package services

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/eduportal-service/internal/cache"
	"github.com/SAP-F-2025/eduportal-service/internal/events"
	"github.com/SAP-F-2025/eduportal-service/internal/models"
	"github.com/SAP-F-2025/eduportal-service/internal/repositories"
	"github.com/SAP-F-2025/eduportal-service/internal/validator"
)

// ===== SERVICE INTERFACE =====

type RatingService interface {
	Rate(ctx context.Context, principal models.Principal, lessonID string, req *RateLessonRequest) (*models.RatingResult, error)
	GetMyRating(ctx context.Context, principal models.Principal, lessonID string) (*models.Rating, error)
}

// ===== SERVICE IMPLEMENTATION =====

type ratingService struct {
	repo         repositories.Repository
	db           *gorm.DB
	logger       *slog.Logger
	validator    *validator.Validator
	cacheManager *cache.CacheManager
}

func NewRatingService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, cacheManager *cache.CacheManager) RatingService {
	return &ratingService{
		repo:         repo,
		db:           db,
		logger:       logger,
		validator:    validator,
		cacheManager: cacheManager,
	}
}

// Rate upserts the caller's rating and recomputes the lesson's cached
// average in the same transaction, so the aggregate never drifts.
func (s *ratingService) Rate(ctx context.Context, principal models.Principal, lessonID string, req *RateLessonRequest) (*models.RatingResult, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	student, err := s.repo.Student().GetByUserID(ctx, nil, principal.UserID)
	if err != nil {
		return nil, notFoundOr(err, ErrStudentNotFound)
	}

	var result models.RatingResult

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		lesson, err := txRepo.Lesson().GetByID(ctx, nil, lessonID)
		if err != nil {
			return notFoundOr(err, ErrLessonNotFound)
		}

		rating := &models.Rating{
			StudentID: student.ID,
			LessonID:  lesson.ID,
			Value:     req.Value,
		}
		if err := txRepo.Rating().Upsert(ctx, nil, rating); err != nil {
			return err
		}

		// the upsert may have kept an existing row, read back the stored id
		stored, err := txRepo.Rating().GetByStudentAndLesson(ctx, nil, student.ID, lesson.ID)
		if err != nil {
			return err
		}

		avg, count, err := txRepo.Rating().Aggregate(ctx, nil, lesson.ID)
		if err != nil {
			return err
		}

		rounded := roundFloat(avg, 1)
		if err := txRepo.Lesson().UpdateRating(ctx, nil, lesson.ID, rounded); err != nil {
			return err
		}

		result = models.RatingResult{
			RatingID:      stored.ID,
			LessonID:      lesson.ID,
			UserRating:    stored.Value,
			AverageRating: rounded,
			TotalRatings:  count,
		}

		return recordEvent(ctx, txRepo, events.TopicLessonRated, events.LessonRatedEvent{
			LessonID:      lesson.ID,
			StudentID:     student.ID,
			Value:         stored.Value,
			AverageRating: rounded,
			TotalRatings:  count,
		})
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateLessonCache(ctx, s.cacheManager, lessonID)
	s.logger.Info("lesson rated",
		"lesson_id", lessonID,
		"student_id", student.ID,
		"value", req.Value,
		"average", result.AverageRating)

	return &result, nil
}

func (s *ratingService) GetMyRating(ctx context.Context, principal models.Principal, lessonID string) (*models.Rating, error) {
	student, err := s.repo.Student().GetByUserID(ctx, nil, principal.UserID)
	if err != nil {
		return nil, notFoundOr(err, ErrStudentNotFound)
	}

	if _, err := s.repo.Lesson().GetByID(ctx, nil, lessonID); err != nil {
		return nil, notFoundOr(err, ErrLessonNotFound)
	}

	rating, err := s.repo.Rating().GetByStudentAndLesson(ctx, nil, student.ID, lessonID)
	if err != nil {
		return nil, notFoundOr(err, ErrRatingNotFound)
	}

	return rating, nil
}
