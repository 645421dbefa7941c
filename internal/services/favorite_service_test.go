package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func newTestFavoriteService(repo *memoryRepository) FavoriteService {
	return NewFavoriteService(repo, nil, testLogger(), testPagination())
}

func TestFavoriteService_Add(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	svc := newTestFavoriteService(repo)

	user, student := seedStudent(t, repo, "alice@school.com", "Alice")
	lesson := seedLesson(t, repo, "Algebra")

	favorite, err := svc.Add(ctx, studentPrincipal(user), lesson.ID)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if favorite.StudentID != student.ID {
		t.Errorf("studentId = %s, want %s", favorite.StudentID, student.ID)
	}
	if favorite.Lesson.Title != "Algebra" {
		t.Errorf("lesson title = %q", favorite.Lesson.Title)
	}

	// second add of the same lesson conflicts
	if _, err := svc.Add(ctx, studentPrincipal(user), lesson.ID); !errors.Is(err, ErrAlreadyFavorited) {
		t.Errorf("duplicate Add() error = %v, want ErrAlreadyFavorited", err)
	}

	records, err := repo.Event().ListUnpublished(ctx, nil, 10)
	if err != nil {
		t.Fatalf("list outbox: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("outbox records = %d, want 1", len(records))
	}
}

func TestFavoriteService_AddUnknownLesson(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	svc := newTestFavoriteService(repo)

	user, _ := seedStudent(t, repo, "alice@school.com", "Alice")

	if _, err := svc.Add(ctx, studentPrincipal(user), "missing"); !errors.Is(err, ErrLessonNotFound) {
		t.Errorf("Add() error = %v, want ErrLessonNotFound", err)
	}
}

func TestFavoriteService_Remove(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	svc := newTestFavoriteService(repo)

	user, _ := seedStudent(t, repo, "alice@school.com", "Alice")
	lesson := seedLesson(t, repo, "Algebra")

	if _, err := svc.Add(ctx, studentPrincipal(user), lesson.ID); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := svc.Remove(ctx, studentPrincipal(user), lesson.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	// already removed
	if err := svc.Remove(ctx, studentPrincipal(user), lesson.ID); !errors.Is(err, ErrFavoriteNotFound) {
		t.Errorf("second Remove() error = %v, want ErrFavoriteNotFound", err)
	}
}

func TestFavoriteService_List(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	svc := newTestFavoriteService(repo)

	user, _ := seedStudent(t, repo, "alice@school.com", "Alice")

	for i := 0; i < 12; i++ {
		lesson := seedLesson(t, repo, fmt.Sprintf("Lesson %02d", i))
		if _, err := svc.Add(ctx, studentPrincipal(user), lesson.ID); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	favorites, meta, err := svc.List(ctx, studentPrincipal(user), ListParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(favorites) != 10 {
		t.Errorf("page 1 size = %d, want 10", len(favorites))
	}
	if meta.Total != 12 {
		t.Errorf("total = %d, want 12", meta.Total)
	}
	if meta.TotalPages != 2 {
		t.Errorf("totalPages = %d, want 2", meta.TotalPages)
	}

	rest, _, err := svc.List(ctx, studentPrincipal(user), ListParams{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("List() page 2 error = %v", err)
	}
	if len(rest) != 2 {
		t.Errorf("page 2 size = %d, want 2", len(rest))
	}
}

func TestFavoriteService_ListWithoutProfile(t *testing.T) {
	ctx := context.Background()
	svc := newTestFavoriteService(newMemoryRepository())

	if _, _, err := svc.List(ctx, adminPrincipal(), ListParams{}); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("List() error = %v, want ErrStudentNotFound", err)
	}
}
