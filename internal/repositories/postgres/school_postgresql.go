package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/eduportal-service/internal/models"
	"github.com/SAP-F-2025/eduportal-service/internal/repositories"
)

type schoolRepository struct {
	db *gorm.DB
}

func NewSchoolPostgreSQL(db *gorm.DB) repositories.SchoolRepository {
	return &schoolRepository{db: db}
}

func (r *schoolRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Get returns the single school profile row.
func (r *schoolRepository) Get(ctx context.Context, tx *gorm.DB) (*models.School, error) {
	db := r.getDB(tx)
	var school models.School

	if err := db.WithContext(ctx).
		Order("created_at ASC").
		First(&school).Error; err != nil {
		return nil, handleDBError(err, "get school")
	}

	return &school, nil
}

func (r *schoolRepository) Upsert(ctx context.Context, tx *gorm.DB, school *models.School) (*models.School, error) {
	db := r.getDB(tx)

	var existing models.School
	err := db.WithContext(ctx).Order("created_at ASC").First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"name":         school.Name,
			"logo_url":     school.LogoURL,
			"phone_number": school.PhoneNumber,
		}
		if err := db.WithContext(ctx).
			Model(&existing).
			Updates(updates).Error; err != nil {
			return nil, handleDBError(err, "update school")
		}
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := db.WithContext(ctx).Create(school).Error; err != nil {
			return nil, handleDBError(err, "create school")
		}
		return school, nil
	default:
		return nil, handleDBError(err, "get school for upsert")
	}
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventPostgreSQL(db *gorm.DB) repositories.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *eventRepository) Create(ctx context.Context, tx *gorm.DB, record *models.EventRecord) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(record).Error; err != nil {
		return handleDBError(err, "create event record")
	}
	return nil
}

func (r *eventRepository) ListUnpublished(ctx context.Context, tx *gorm.DB, limit int) ([]*models.EventRecord, error) {
	db := r.getDB(tx)
	var records []*models.EventRecord

	if err := db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, handleDBError(err, "list unpublished events")
	}

	return records, nil
}

func (r *eventRepository) MarkPublished(ctx context.Context, tx *gorm.DB, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	db := r.getDB(tx)
	now := time.Now().UTC()

	if err := db.WithContext(ctx).
		Model(&models.EventRecord{}).
		Where("id IN ?", ids).
		Update("published_at", now).Error; err != nil {
		return handleDBError(err, "mark events published")
	}

	return nil
}
