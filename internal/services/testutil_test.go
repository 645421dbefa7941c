package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/SAP-F-2025/eduportal-service/internal/cache"
	"github.com/SAP-F-2025/eduportal-service/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPagination() PaginationConfig {
	return PaginationConfig{DefaultLimit: 10, MaxLimit: 100}
}

// testCacheManager backs the cache helpers with an in-process redis.
func testCacheManager(t *testing.T) *cache.CacheManager {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewCacheManager(client)
}

// seedStudent creates a user with its student profile and returns both.
func seedStudent(t *testing.T, repo *memoryRepository, email, fullName string) (*models.User, *models.Student) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := &models.User{Email: email, Password: string(hash), Role: models.RoleStudent}
	if err := repo.User().Create(context.Background(), nil, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	student := &models.Student{UserID: user.ID, FullName: fullName}
	if err := repo.Student().Create(context.Background(), nil, student); err != nil {
		t.Fatalf("create student: %v", err)
	}

	return user, student
}

func seedLesson(t *testing.T, repo *memoryRepository, title string) *models.Lesson {
	t.Helper()

	lesson := &models.Lesson{Title: title, Description: "about " + title}
	if err := repo.Lesson().Create(context.Background(), nil, lesson); err != nil {
		t.Fatalf("create lesson: %v", err)
	}
	return lesson
}

func studentPrincipal(user *models.User) models.Principal {
	return models.Principal{UserID: user.ID, Email: user.Email, Role: models.RoleStudent}
}

func adminPrincipal() models.Principal {
	return models.Principal{UserID: "admin-id", Email: "admin@school.com", Role: models.RoleAdmin}
}
