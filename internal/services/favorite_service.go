package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/eduportal-service/internal/events"
	"github.com/SAP-F-2025/eduportal-service/internal/models"
	"github.com/SAP-F-2025/eduportal-service/internal/repositories"
)

// ===== SERVICE INTERFACE =====

type FavoriteService interface {
	List(ctx context.Context, principal models.Principal, params ListParams) ([]*models.FavoriteWithLesson, models.PaginationMeta, error)
	Add(ctx context.Context, principal models.Principal, lessonID string) (*models.FavoriteWithLesson, error)
	Remove(ctx context.Context, principal models.Principal, lessonID string) error
}

// ===== SERVICE IMPLEMENTATION =====

type favoriteService struct {
	repo       repositories.Repository
	db         *gorm.DB
	logger     *slog.Logger
	pagination PaginationConfig
}

func NewFavoriteService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, pagination PaginationConfig) FavoriteService {
	return &favoriteService{
		repo:       repo,
		db:         db,
		logger:     logger,
		pagination: pagination,
	}
}

func (s *favoriteService) List(ctx context.Context, principal models.Principal, params ListParams) ([]*models.FavoriteWithLesson, models.PaginationMeta, error) {
	student, err := s.repo.Student().GetByUserID(ctx, nil, principal.UserID)
	if err != nil {
		return nil, models.PaginationMeta{}, notFoundOr(err, ErrStudentNotFound)
	}

	params = params.Normalize(s.pagination)

	favorites, total, err := s.repo.Favorite().ListByStudent(ctx, nil, student.ID, repositories.FavoriteFilters{
		Limit:  params.Limit,
		Offset: params.Offset(),
	})
	if err != nil {
		return nil, models.PaginationMeta{}, fmt.Errorf("failed to list favorites: %w", err)
	}

	out := make([]*models.FavoriteWithLesson, 0, len(favorites))
	for _, favorite := range favorites {
		out = append(out, toFavoriteWithLesson(favorite))
	}

	return out, params.Meta(total), nil
}

func (s *favoriteService) Add(ctx context.Context, principal models.Principal, lessonID string) (*models.FavoriteWithLesson, error) {
	student, err := s.repo.Student().GetByUserID(ctx, nil, principal.UserID)
	if err != nil {
		return nil, notFoundOr(err, ErrStudentNotFound)
	}

	lesson, err := s.repo.Lesson().GetByID(ctx, nil, lessonID)
	if err != nil {
		return nil, notFoundOr(err, ErrLessonNotFound)
	}

	favorite := &models.Favorite{
		StudentID: student.ID,
		LessonID:  lesson.ID,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Favorite().Create(ctx, nil, favorite); err != nil {
			return err
		}
		return recordEvent(ctx, txRepo, events.TopicFavoriteAdded, events.FavoriteAddedEvent{
			LessonID:  lesson.ID,
			StudentID: student.ID,
		})
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyFavorited
		}
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	s.logger.Info("favorite added", "student_id", student.ID, "lesson_id", lesson.ID)

	favorite.Lesson = lesson
	return toFavoriteWithLesson(favorite), nil
}

func (s *favoriteService) Remove(ctx context.Context, principal models.Principal, lessonID string) error {
	student, err := s.repo.Student().GetByUserID(ctx, nil, principal.UserID)
	if err != nil {
		return notFoundOr(err, ErrStudentNotFound)
	}

	if err := s.repo.Favorite().Delete(ctx, nil, student.ID, lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFavoriteNotFound
		}
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	s.logger.Info("favorite removed", "student_id", student.ID, "lesson_id", lessonID)

	return nil
}

func toFavoriteWithLesson(favorite *models.Favorite) *models.FavoriteWithLesson {
	out := &models.FavoriteWithLesson{
		ID:        favorite.ID,
		StudentID: favorite.StudentID,
		LessonID:  favorite.LessonID,
		CreatedAt: favorite.CreatedAt,
	}
	if favorite.Lesson != nil {
		out.Lesson = *favorite.Lesson
	}
	return out
}
