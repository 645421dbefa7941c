package services

import (
	"math"

	"github.com/SAP-F-2025/eduportal-service/internal/models"
)

// ListParams is the normalized pagination envelope for list endpoints.
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

// PaginationConfig bounds page sizes for list endpoints.
type PaginationConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// Normalize clamps page and limit to sane values. Page floors at 1,
// limit is clamped into [1, MaxLimit] with the default when unset.
func (p ListParams) Normalize(cfg PaginationConfig) ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = cfg.DefaultLimit
	}
	if p.Limit > cfg.MaxLimit {
		p.Limit = cfg.MaxLimit
	}
	return p
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p ListParams) Meta(total int64) models.PaginationMeta {
	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return models.PaginationMeta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// blankToNil drops pointers to empty strings so a "" field in a partial
// update behaves exactly like an absent one, including during validation.
func blankToNil(fields ...**string) {
	for _, f := range fields {
		if *f != nil && **f == "" {
			*f = nil
		}
	}
}

func roundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
