package services

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/eduportal-service/internal/validator"
)

// Sentinel errors mapped to HTTP responses by the handlers.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrStudentNotFound  = errors.New("student not found")
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrRatingNotFound   = errors.New("rating not found")
	ErrSchoolNotFound   = errors.New("school profile not found")

	ErrEmailTaken       = errors.New("email already registered")
	ErrAlreadyFavorited = errors.New("lesson already favorited")

	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrStorageUnavailable = errors.New("object storage not configured")
)

// ValidationErrors re-exported so handlers can errors.As on it without
// importing the validator package.
type ValidationErrors = validator.ValidationErrors

// PermissionError carries what the caller tried to do when access was
// denied.
type PermissionError struct {
	Resource string
	Action   string
	Reason   string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s %s: %s", e.Action, e.Resource, e.Reason)
}

func NewPermissionError(resource, action, reason string) *PermissionError {
	return &PermissionError{Resource: resource, Action: action, Reason: reason}
}

const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a Postgres duplicate-key error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// notFoundOr maps gorm's record-not-found onto a domain sentinel, keeping
// everything else intact.
func notFoundOr(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
