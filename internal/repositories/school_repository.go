package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/eduportal-service/internal/models"
)

// SchoolRepository manages the singleton school profile row.
type SchoolRepository interface {
	Get(ctx context.Context, tx *gorm.DB) (*models.School, error)
	// Upsert updates the existing profile or creates it when missing.
	Upsert(ctx context.Context, tx *gorm.DB, school *models.School) (*models.School, error)
}

// EventRepository is the transactional outbox for domain events.
type EventRepository interface {
	Create(ctx context.Context, tx *gorm.DB, record *models.EventRecord) error
	ListUnpublished(ctx context.Context, tx *gorm.DB, limit int) ([]*models.EventRecord, error)
	MarkPublished(ctx context.Context, tx *gorm.DB, ids []string) error
}
