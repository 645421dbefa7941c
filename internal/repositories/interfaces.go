package repositories

// ===== SHARED FILTER STRUCTS =====

// StudentFilters narrows student listings. Search matches full name or
// account email, case-insensitively.
type StudentFilters struct {
	Search    *string `json:"search"`
	ClassName *string `json:"class_name"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
}

// LessonFilters narrows lesson listings. Search matches title or
// description, case-insensitively.
type LessonFilters struct {
	Search *string `json:"search"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

type FavoriteFilters struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
