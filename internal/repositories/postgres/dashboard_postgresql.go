package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/eduportal-service/internal/models"
	"github.com/SAP-F-2025/eduportal-service/internal/repositories"
)

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardPostgreSQL(db *gorm.DB) repositories.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *dashboardRepository) GetTotalStudents(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := r.getDB(tx).WithContext(ctx).Model(&models.Student{}).Count(&count).Error
	return count, handleDBError(err, "count students")
}

func (r *dashboardRepository) GetTotalLessons(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := r.getDB(tx).WithContext(ctx).Model(&models.Lesson{}).Count(&count).Error
	return count, handleDBError(err, "count lessons")
}

func (r *dashboardRepository) GetTotalFavorites(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := r.getDB(tx).WithContext(ctx).Model(&models.Favorite{}).Count(&count).Error
	return count, handleDBError(err, "count favorites")
}

func (r *dashboardRepository) GetStudentRegistrationsByDay(ctx context.Context, tx *gorm.DB, since time.Time) ([]repositories.DailyCountData, error) {
	db := r.getDB(tx)
	var rows []repositories.DailyCountData

	if err := db.WithContext(ctx).
		Model(&models.Student{}).
		Select("DATE_TRUNC('day', created_at) AS day, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error; err != nil {
		return nil, handleDBError(err, "student registrations by day")
	}

	return rows, nil
}

// GetLessonRatingDistribution buckets rated lessons by their rounded
// cached average. Unrated lessons (rating 0) are excluded.
func (r *dashboardRepository) GetLessonRatingDistribution(ctx context.Context, tx *gorm.DB) ([]repositories.RatingCountData, error) {
	db := r.getDB(tx)
	var rows []repositories.RatingCountData

	if err := db.WithContext(ctx).
		Model(&models.Lesson{}).
		Select("ROUND(rating)::int AS rating, COUNT(*) AS count").
		Where("rating > 0").
		Group("ROUND(rating)::int").
		Order("rating ASC").
		Scan(&rows).Error; err != nil {
		return nil, handleDBError(err, "lesson rating distribution")
	}

	return rows, nil
}

func (r *dashboardRepository) GetTopFavoritedLessons(ctx context.Context, tx *gorm.DB, limit int) ([]repositories.TopLessonData, error) {
	db := r.getDB(tx)
	var rows []repositories.TopLessonData

	if err := db.WithContext(ctx).
		Model(&models.Lesson{}).
		Select("lessons.id AS lesson_id, lessons.title, lessons.image_url, lessons.rating, COUNT(favorites.id) AS favorite_count").
		Joins("LEFT JOIN favorites ON favorites.lesson_id = lessons.id").
		Group("lessons.id").
		Order("favorite_count DESC, lessons.created_at ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, handleDBError(err, "top favorited lessons")
	}

	return rows, nil
}
