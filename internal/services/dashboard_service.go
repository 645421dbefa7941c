package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/eduportal-service/internal/cache"
	"github.com/SAP-F-2025/eduportal-service/internal/models"
	"github.com/SAP-F-2025/eduportal-service/internal/repositories"
)

// ===== SERVICE INTERFACE =====

type DashboardService interface {
	GetStats(ctx context.Context) (*models.DashboardStats, error)
	GetAnalytics(ctx context.Context) (*models.DashboardAnalytics, error)
}

// ===== SERVICE IMPLEMENTATION =====

type dashboardService struct {
	repo         repositories.Repository
	db           *gorm.DB
	logger       *slog.Logger
	cacheManager *cache.CacheManager
}

func NewDashboardService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, cacheManager *cache.CacheManager) DashboardService {
	return &dashboardService{
		repo:         repo,
		db:           db,
		logger:       logger,
		cacheManager: cacheManager,
	}
}

const (
	statsCacheKey     = "overview"
	analyticsCacheKey = "analytics"

	growthDays    = 7
	topLessonsCap = 5
)

func (s *dashboardService) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	var cached models.DashboardStats
	if err := s.cacheManager.Stats.Get(ctx, statsCacheKey, &cached); err == nil {
		return &cached, nil
	}

	var stats models.DashboardStats

	// independent counts, fetched concurrently
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.TotalStudents, err = s.repo.Dashboard().GetTotalStudents(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalLessons, err = s.repo.Dashboard().GetTotalLessons(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalFavorites, err = s.repo.Dashboard().GetTotalFavorites(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}

	if err := s.cacheManager.Stats.Set(ctx, statsCacheKey, &stats, cache.StatsCacheConfig.TTL); err != nil {
		s.logger.Warn("failed to cache dashboard stats", "error", err)
	}

	return &stats, nil
}

func (s *dashboardService) GetAnalytics(ctx context.Context) (*models.DashboardAnalytics, error) {
	var cached models.DashboardAnalytics
	if err := s.cacheManager.Stats.Get(ctx, analyticsCacheKey, &cached); err == nil {
		return &cached, nil
	}

	analytics := &models.DashboardAnalytics{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		growth, err := s.studentGrowth(gctx)
		if err != nil {
			return err
		}
		analytics.StudentGrowth = growth
		return nil
	})

	g.Go(func() error {
		buckets, err := s.ratingDistribution(gctx)
		if err != nil {
			return err
		}
		analytics.RatingDistribution = buckets
		return nil
	})

	g.Go(func() error {
		rows, err := s.repo.Dashboard().GetTopFavoritedLessons(gctx, nil, topLessonsCap)
		if err != nil {
			return err
		}
		top := make([]models.TopLesson, 0, len(rows))
		for _, row := range rows {
			top = append(top, models.TopLesson{
				ID:            row.LessonID,
				Title:         row.Title,
				ImageURL:      row.ImageURL,
				Rating:        row.Rating,
				FavoriteCount: row.FavoriteCount,
			})
		}
		analytics.TopLessons = top
		return nil
	})

	g.Go(func() error {
		students, err := s.repo.Student().GetRecent(gctx, nil, 5)
		if err != nil {
			return err
		}
		for _, student := range students {
			student.User = nil
		}
		analytics.RecentStudents = students
		return nil
	})

	g.Go(func() error {
		avg, count, err := s.repo.Rating().AggregateAll(gctx, nil)
		if err != nil {
			return err
		}
		analytics.AverageRating = roundFloat(avg, 1)
		analytics.TotalRatings = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard analytics: %w", err)
	}

	if err := s.cacheManager.Stats.Set(ctx, analyticsCacheKey, analytics, cache.StatsCacheConfig.TTL); err != nil {
		s.logger.Warn("failed to cache dashboard analytics", "error", err)
	}

	return analytics, nil
}

// studentGrowth answers exactly growthDays points, today included, with
// zeroes for days without registrations.
func (s *dashboardService) studentGrowth(ctx context.Context) ([]models.GrowthPoint, error) {
	now := time.Now().UTC()
	start := now.AddDate(0, 0, -(growthDays - 1)).Truncate(24 * time.Hour)

	rows, err := s.repo.Dashboard().GetStudentRegistrationsByDay(ctx, nil, start)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]int64, len(rows))
	for _, row := range rows {
		byDay[row.Day.UTC().Format("2006-01-02")] = row.Count
	}

	points := make([]models.GrowthPoint, growthDays)
	for i := 0; i < growthDays; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		points[i] = models.GrowthPoint{Date: day, Count: byDay[day]}
	}

	return points, nil
}

// ratingDistribution always answers the five buckets 1..5, empty ones
// included.
func (s *dashboardService) ratingDistribution(ctx context.Context) ([]models.RatingBucket, error) {
	rows, err := s.repo.Dashboard().GetLessonRatingDistribution(ctx, nil)
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int64, len(rows))
	for _, row := range rows {
		counts[row.Rating] = row.Count
	}

	buckets := make([]models.RatingBucket, 0, 5)
	for rating := 1; rating <= 5; rating++ {
		buckets = append(buckets, models.RatingBucket{Rating: rating, Count: counts[rating]})
	}

	return buckets, nil
}
