package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DashboardRepository interface for dashboard analytics operations
type DashboardRepository interface {
	// Dashboard stats
	GetTotalStudents(ctx context.Context, tx *gorm.DB) (int64, error)
	GetTotalLessons(ctx context.Context, tx *gorm.DB) (int64, error)
	GetTotalFavorites(ctx context.Context, tx *gorm.DB) (int64, error)

	// Registrations per calendar day since the cutoff. Days without
	// registrations are absent from the result.
	GetStudentRegistrationsByDay(ctx context.Context, tx *gorm.DB, since time.Time) ([]DailyCountData, error)

	// Distribution of rated lessons over their rounded average rating.
	GetLessonRatingDistribution(ctx context.Context, tx *gorm.DB) ([]RatingCountData, error)

	// Most favorited lessons, ties broken by earliest creation.
	GetTopFavoritedLessons(ctx context.Context, tx *gorm.DB, limit int) ([]TopLessonData, error)
}

// Data structures for dashboard responses

type DailyCountData struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

type RatingCountData struct {
	Rating int   `json:"rating"`
	Count  int64 `json:"count"`
}

type TopLessonData struct {
	LessonID      string  `json:"lesson_id"`
	Title         string  `json:"title"`
	ImageURL      *string `json:"image_url"`
	Rating        float64 `json:"rating"`
	FavoriteCount int64   `json:"favorite_count"`
}
