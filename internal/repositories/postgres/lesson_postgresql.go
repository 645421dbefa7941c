package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/eduportal-service/internal/models"
	"github.com/SAP-F-2025/eduportal-service/internal/repositories"
)

type lessonRepository struct {
	db *gorm.DB
}

func NewLessonPostgreSQL(db *gorm.DB) repositories.LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *lessonRepository) Create(ctx context.Context, tx *gorm.DB, lesson *models.Lesson) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(lesson).Error; err != nil {
		return handleDBError(err, "create lesson")
	}
	return nil
}

func (r *lessonRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Lesson, error) {
	db := r.getDB(tx)
	var lesson models.Lesson

	if err := db.WithContext(ctx).First(&lesson, "id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get lesson by id")
	}

	return &lesson, nil
}

func (r *lessonRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.LessonFilters) ([]*models.Lesson, int64, error) {
	db := r.getDB(tx)
	var lessons []*models.Lesson
	var total int64

	query := db.WithContext(ctx).Model(&models.Lesson{})

	if filters.Search != nil && *filters.Search != "" {
		pattern := searchPattern(*filters.Search)
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count lessons")
	}

	query = applyPagination(query, filters.Limit, filters.Offset)

	if err := query.Find(&lessons).Error; err != nil {
		return nil, 0, handleDBError(err, "list lessons")
	}

	return lessons, total, nil
}

func (r *lessonRepository) Update(ctx context.Context, tx *gorm.DB, lesson *models.Lesson) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(lesson).Error; err != nil {
		return handleDBError(err, "update lesson")
	}
	return nil
}

// UpdateRating refreshes the cached aggregate on the lesson row.
func (r *lessonRepository) UpdateRating(ctx context.Context, tx *gorm.DB, id string, rating float64) error {
	db := r.getDB(tx)

	result := db.WithContext(ctx).
		Model(&models.Lesson{}).
		Where("id = ?", id).
		Update("rating", rating)
	if result.Error != nil {
		return handleDBError(result.Error, "update lesson rating")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "update lesson rating")
	}

	return nil
}

func (r *lessonRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	db := r.getDB(tx)

	result := db.WithContext(ctx).Delete(&models.Lesson{}, "id = ?", id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete lesson")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete lesson")
	}

	return nil
}

func (r *lessonRepository) CountFavorites(ctx context.Context, tx *gorm.DB, lessonIDs []string) (map[string]int64, error) {
	db := r.getDB(tx)

	counts := make(map[string]int64, len(lessonIDs))
	if len(lessonIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		LessonID string
		Count    int64
	}

	if err := db.WithContext(ctx).
		Model(&models.Favorite{}).
		Select("lesson_id, COUNT(*) AS count").
		Where("lesson_id IN ?", lessonIDs).
		Group("lesson_id").
		Scan(&rows).Error; err != nil {
		return nil, handleDBError(err, "count lesson favorites")
	}

	for _, row := range rows {
		counts[row.LessonID] = row.Count
	}

	return counts, nil
}
