package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// CacheManager groups the per-domain cache helpers.
type CacheManager struct {
	Lesson  *CacheHelper
	Student *CacheHelper
	School  *CacheHelper
	Stats   *CacheHelper
}

func NewCacheManager(client *redis.Client) *CacheManager {
	return &CacheManager{
		Lesson:  NewCacheHelper(client, LessonCacheConfig.Prefix),
		Student: NewCacheHelper(client, StudentCacheConfig.Prefix),
		School:  NewCacheHelper(client, SchoolCacheConfig.Prefix),
		Stats:   NewCacheHelper(client, StatsCacheConfig.Prefix),
	}
}

// SafeInvalidatePattern invalidates a cache pattern, logging on failure.
// Callers treat invalidation errors as non-fatal.
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes cache keys, logging on failure.
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateLessonCache drops all lesson-related caches after a write.
// Dashboard stats include lesson counts and ratings, so those go too.
func InvalidateLessonCache(ctx context.Context, cm *CacheManager, lessonID string) {
	SafeDelete(ctx, cm.Lesson, fmt.Sprintf("id:%s", lessonID))
	SafeInvalidatePattern(ctx, cm.Lesson, "list:*")
	SafeInvalidatePattern(ctx, cm.Stats, "*")
}

// InvalidateStudentCache drops student-related caches after a write.
func InvalidateStudentCache(ctx context.Context, cm *CacheManager, studentID string) {
	SafeDelete(ctx, cm.Student, fmt.Sprintf("id:%s", studentID))
	SafeInvalidatePattern(ctx, cm.Student, "list:*")
	SafeInvalidatePattern(ctx, cm.Stats, "*")
}
