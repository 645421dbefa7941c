package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/eduportal-service/internal/models"
	"github.com/SAP-F-2025/eduportal-service/internal/repositories"
)

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoritePostgreSQL(db *gorm.DB) repositories.FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *favoriteRepository) Create(ctx context.Context, tx *gorm.DB, favorite *models.Favorite) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(favorite).Error; err != nil {
		return handleDBError(err, "create favorite")
	}
	return nil
}

func (r *favoriteRepository) GetByStudentAndLesson(ctx context.Context, tx *gorm.DB, studentID, lessonID string) (*models.Favorite, error) {
	db := r.getDB(tx)
	var favorite models.Favorite

	if err := db.WithContext(ctx).
		First(&favorite, "student_id = ? AND lesson_id = ?", studentID, lessonID).Error; err != nil {
		return nil, handleDBError(err, "get favorite")
	}

	return &favorite, nil
}

func (r *favoriteRepository) ListByStudent(ctx context.Context, tx *gorm.DB, studentID string, filters repositories.FavoriteFilters) ([]*models.Favorite, int64, error) {
	db := r.getDB(tx)
	var favorites []*models.Favorite
	var total int64

	query := db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("student_id = ?", studentID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count favorites")
	}

	query = query.Preload("Lesson")
	query = applyPagination(query, filters.Limit, filters.Offset)

	if err := query.Find(&favorites).Error; err != nil {
		return nil, 0, handleDBError(err, "list favorites")
	}

	return favorites, total, nil
}

// ListLessonIDsByStudent filters the given lesson ids down to the ones
// the student has favorited. Used to mark listings for the caller.
func (r *favoriteRepository) ListLessonIDsByStudent(ctx context.Context, tx *gorm.DB, studentID string, lessonIDs []string) ([]string, error) {
	db := r.getDB(tx)

	if len(lessonIDs) == 0 {
		return nil, nil
	}

	var ids []string
	if err := db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("student_id = ? AND lesson_id IN ?", studentID, lessonIDs).
		Pluck("lesson_id", &ids).Error; err != nil {
		return nil, handleDBError(err, "list favorited lesson ids")
	}

	return ids, nil
}

func (r *favoriteRepository) Delete(ctx context.Context, tx *gorm.DB, studentID, lessonID string) error {
	db := r.getDB(tx)

	result := db.WithContext(ctx).
		Delete(&models.Favorite{}, "student_id = ? AND lesson_id = ?", studentID, lessonID)
	if result.Error != nil {
		return handleDBError(result.Error, "delete favorite")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete favorite")
	}

	return nil
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingPostgreSQL(db *gorm.DB) repositories.RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Upsert relies on the (student_id, lesson_id) unique index so re-rating
// replaces the previous value instead of conflicting.
func (r *ratingRepository) Upsert(ctx context.Context, tx *gorm.DB, rating *models.Rating) error {
	db := r.getDB(tx)

	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "lesson_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(rating).Error; err != nil {
		return handleDBError(err, "upsert rating")
	}

	return nil
}

func (r *ratingRepository) GetByStudentAndLesson(ctx context.Context, tx *gorm.DB, studentID, lessonID string) (*models.Rating, error) {
	db := r.getDB(tx)
	var rating models.Rating

	if err := db.WithContext(ctx).
		First(&rating, "student_id = ? AND lesson_id = ?", studentID, lessonID).Error; err != nil {
		return nil, handleDBError(err, "get rating")
	}

	return &rating, nil
}

func (r *ratingRepository) Aggregate(ctx context.Context, tx *gorm.DB, lessonID string) (float64, int64, error) {
	db := r.getDB(tx)

	var row struct {
		Avg   float64
		Count int64
	}

	if err := db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("COALESCE(AVG(value), 0) AS avg, COUNT(*) AS count").
		Where("lesson_id = ?", lessonID).
		Scan(&row).Error; err != nil {
		return 0, 0, handleDBError(err, "aggregate lesson ratings")
	}

	return row.Avg, row.Count, nil
}

func (r *ratingRepository) AggregateAll(ctx context.Context, tx *gorm.DB) (float64, int64, error) {
	db := r.getDB(tx)

	var row struct {
		Avg   float64
		Count int64
	}

	if err := db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("COALESCE(AVG(value), 0) AS avg, COUNT(*) AS count").
		Scan(&row).Error; err != nil {
		return 0, 0, handleDBError(err, "aggregate all ratings")
	}

	return row.Avg, row.Count, nil
}
