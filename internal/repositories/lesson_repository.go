package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/eduportal-service/internal/models"
)

type LessonRepository interface {
	Create(ctx context.Context, tx *gorm.DB, lesson *models.Lesson) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Lesson, error)
	List(ctx context.Context, tx *gorm.DB, filters LessonFilters) ([]*models.Lesson, int64, error)
	Update(ctx context.Context, tx *gorm.DB, lesson *models.Lesson) error
	UpdateRating(ctx context.Context, tx *gorm.DB, id string, rating float64) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error

	// CountFavorites returns lesson id -> favorite count for the given
	// lessons. Lessons with no favorites are absent from the map.
	CountFavorites(ctx context.Context, tx *gorm.DB, lessonIDs []string) (map[string]int64, error)
}

type FavoriteRepository interface {
	Create(ctx context.Context, tx *gorm.DB, favorite *models.Favorite) error
	GetByStudentAndLesson(ctx context.Context, tx *gorm.DB, studentID, lessonID string) (*models.Favorite, error)
	ListByStudent(ctx context.Context, tx *gorm.DB, studentID string, filters FavoriteFilters) ([]*models.Favorite, int64, error)
	ListLessonIDsByStudent(ctx context.Context, tx *gorm.DB, studentID string, lessonIDs []string) ([]string, error)
	Delete(ctx context.Context, tx *gorm.DB, studentID, lessonID string) error
}

type RatingRepository interface {
	// Upsert inserts or replaces the student's rating for a lesson.
	Upsert(ctx context.Context, tx *gorm.DB, rating *models.Rating) error
	GetByStudentAndLesson(ctx context.Context, tx *gorm.DB, studentID, lessonID string) (*models.Rating, error)
	// Aggregate returns the average and count over raw ratings for a lesson.
	Aggregate(ctx context.Context, tx *gorm.DB, lessonID string) (avg float64, count int64, err error)
	AggregateAll(ctx context.Context, tx *gorm.DB) (avg float64, count int64, err error)
}
