package services

import "testing"

func TestListParamsNormalize(t *testing.T) {
	cfg := PaginationConfig{DefaultLimit: 10, MaxLimit: 100}

	tests := []struct {
		name      string
		in        ListParams
		wantPage  int
		wantLimit int
	}{
		{"defaults when unset", ListParams{}, 1, 10},
		{"negative page floors at one", ListParams{Page: -3, Limit: 20}, 1, 20},
		{"limit clamped to max", ListParams{Page: 2, Limit: 500}, 2, 100},
		{"zero limit takes default", ListParams{Page: 4}, 4, 10},
		{"valid values pass through", ListParams{Page: 3, Limit: 25}, 3, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize(cfg)
			if got.Page != tt.wantPage {
				t.Errorf("Normalize() page = %d, want %d", got.Page, tt.wantPage)
			}
			if got.Limit != tt.wantLimit {
				t.Errorf("Normalize() limit = %d, want %d", got.Limit, tt.wantLimit)
			}
		})
	}
}

func TestListParamsOffset(t *testing.T) {
	params := ListParams{Page: 3, Limit: 10}
	if got := params.Offset(); got != 20 {
		t.Errorf("Offset() = %d, want 20", got)
	}
}

func TestListParamsMeta(t *testing.T) {
	tests := []struct {
		name           string
		params         ListParams
		total          int64
		wantTotalPages int
	}{
		{"exact division", ListParams{Page: 1, Limit: 10}, 30, 3},
		{"partial last page rounds up", ListParams{Page: 1, Limit: 10}, 31, 4},
		{"empty result has zero pages", ListParams{Page: 1, Limit: 10}, 0, 0},
		{"single item", ListParams{Page: 1, Limit: 10}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := tt.params.Meta(tt.total)
			if meta.TotalPages != tt.wantTotalPages {
				t.Errorf("Meta(%d) totalPages = %d, want %d", tt.total, meta.TotalPages, tt.wantTotalPages)
			}
			if meta.Total != tt.total {
				t.Errorf("Meta(%d) total = %d", tt.total, meta.Total)
			}
		})
	}
}

func TestBlankToNil(t *testing.T) {
	empty := ""
	kept := "value"
	pEmpty := &empty
	pKept := &kept
	var absent *string

	blankToNil(&pEmpty, &pKept, &absent)

	if pEmpty != nil {
		t.Error("empty-string pointer not dropped")
	}
	if pKept == nil || *pKept != "value" {
		t.Errorf("non-empty pointer changed: %v", pKept)
	}
	if absent != nil {
		t.Error("nil pointer changed")
	}
}

func TestRoundFloat(t *testing.T) {
	tests := []struct {
		val       float64
		precision int
		want      float64
	}{
		{4.0, 1, 4.0},
		{3.5, 1, 3.5},
		{3.333333, 1, 3.3},
		{3.35, 1, 3.4},
		{4.666666, 1, 4.7},
	}

	for _, tt := range tests {
		if got := roundFloat(tt.val, tt.precision); got != tt.want {
			t.Errorf("roundFloat(%v, %d) = %v, want %v", tt.val, tt.precision, got, tt.want)
		}
	}
}
