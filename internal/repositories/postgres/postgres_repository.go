package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/eduportal-service/internal/repositories"
)

// PostgreSQLRepository implements the main Repository interface
type PostgreSQLRepository struct {
	db *gorm.DB

	user      repositories.UserRepository
	student   repositories.StudentRepository
	lesson    repositories.LessonRepository
	favorite  repositories.FavoriteRepository
	rating    repositories.RatingRepository
	school    repositories.SchoolRepository
	dashboard repositories.DashboardRepository
	event     repositories.EventRepository
}

// NewPostgreSQLRepository creates a new repository aggregate with all sub-repositories
func NewPostgreSQLRepository(db *gorm.DB) repositories.Repository {
	return &PostgreSQLRepository{
		db:        db,
		user:      NewUserPostgreSQL(db),
		student:   NewStudentPostgreSQL(db),
		lesson:    NewLessonPostgreSQL(db),
		favorite:  NewFavoritePostgreSQL(db),
		rating:    NewRatingPostgreSQL(db),
		school:    NewSchoolPostgreSQL(db),
		dashboard: NewDashboardPostgreSQL(db),
		event:     NewEventPostgreSQL(db),
	}
}

func (r *PostgreSQLRepository) User() repositories.UserRepository         { return r.user }
func (r *PostgreSQLRepository) Student() repositories.StudentRepository   { return r.student }
func (r *PostgreSQLRepository) Lesson() repositories.LessonRepository     { return r.lesson }
func (r *PostgreSQLRepository) Favorite() repositories.FavoriteRepository { return r.favorite }
func (r *PostgreSQLRepository) Rating() repositories.RatingRepository     { return r.rating }
func (r *PostgreSQLRepository) School() repositories.SchoolRepository     { return r.school }
func (r *PostgreSQLRepository) Dashboard() repositories.DashboardRepository {
	return r.dashboard
}
func (r *PostgreSQLRepository) Event() repositories.EventRepository { return r.event }

// WithTransaction executes a function within a database transaction. The
// repository passed to fn routes every call through the transaction.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewPostgreSQLRepository(tx))
	})
}

// Ping checks database connectivity
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.Close()
}

// RepositoryManagerImpl implements the RepositoryManager interface
type RepositoryManagerImpl struct {
	db         *gorm.DB
	repository repositories.Repository
}

func NewRepositoryManager(db *gorm.DB) repositories.RepositoryManager {
	return &RepositoryManagerImpl{db: db}
}

func (m *RepositoryManagerImpl) Initialize() error {
	if m.db == nil {
		return fmt.Errorf("database connection is required")
	}
	m.repository = NewPostgreSQLRepository(m.db)
	return nil
}

func (m *RepositoryManagerImpl) GetRepository() repositories.Repository {
	return m.repository
}

func (m *RepositoryManagerImpl) HealthCheck(ctx context.Context) error {
	if m.repository == nil {
		return fmt.Errorf("repository not initialized")
	}
	return m.repository.Ping(ctx)
}

func (m *RepositoryManagerImpl) Shutdown(ctx context.Context) error {
	if m.repository == nil {
		return nil
	}
	return m.repository.Close()
}
