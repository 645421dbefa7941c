package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/eduportal-service/internal/models"
)

// UserRepository handles account records. The tx parameter routes the
// query through an open transaction when non-nil.
type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	GetByIDWithStudent(ctx context.Context, tx *gorm.DB, id string) (*models.User, error)
	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

// StudentRepository handles student profiles.
type StudentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, student *models.Student) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Student, error)
	GetByIDWithUser(ctx context.Context, tx *gorm.DB, id string) (*models.Student, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.Student, error)
	List(ctx context.Context, tx *gorm.DB, filters StudentFilters) ([]*models.Student, int64, error)
	ListAllWithUser(ctx context.Context, tx *gorm.DB) ([]*models.Student, error)
	Update(ctx context.Context, tx *gorm.DB, student *models.Student) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	GetRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*models.Student, error)
}
