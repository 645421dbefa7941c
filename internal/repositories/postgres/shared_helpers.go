package postgres

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// handleDBError is a package-level helper for handling database errors.
// Wrapping with %w keeps gorm sentinels and pgconn errors matchable
// upstream.
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}

// searchPattern escapes LIKE metacharacters and wraps the term for a
// contains match.
func searchPattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}

// applyPagination adds limit/offset plus a deterministic ordering. The
// id tiebreaker keeps pages stable when rows share a created_at.
func applyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	query = query.Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
