package repositories

import "context"

// Repository aggregates all entity repositories behind one handle so
// services depend on a single interface.
type Repository interface {
	// Account domain
	User() UserRepository
	Student() StudentRepository

	// Content domain
	Lesson() LessonRepository
	Favorite() FavoriteRepository
	Rating() RatingRepository

	// School profile
	School() SchoolRepository

	// Dashboard domain
	Dashboard() DashboardRepository

	// Event outbox
	Event() EventRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
