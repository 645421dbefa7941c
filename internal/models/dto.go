package models

import "time"

// ===== RESPONSE ENVELOPE =====

// Every endpoint responds with one of these three shapes (deletes answer
// 204 with no body).

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

type PaginatedResponse struct {
	Success bool           `json:"success"`
	Data    interface{}    `json:"data"`
	Meta    PaginationMeta `json:"meta"`
}

type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ===== AUTH DTOs =====

// Principal is the authenticated caller extracted from the JWT.
type Principal struct {
	UserID string   `json:"userId"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
}

type AuthUser struct {
	ID      string          `json:"id"`
	Email   string          `json:"email"`
	Role    UserRole        `json:"role"`
	Student *StudentSummary `json:"student,omitempty"`
}

type StudentSummary struct {
	ID              string  `json:"id"`
	FullName        string  `json:"fullName"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// ===== STUDENT DTOs =====

type StudentWithEmail struct {
	Student
	Email string `json:"email"`
}

// ===== LESSON DTOs =====

type LessonWithFavorite struct {
	Lesson
	// IsFavorited is omitted (null) for admins, who have no student profile.
	IsFavorited   *bool `json:"isFavorited,omitempty"`
	FavoriteCount int64 `json:"favoriteCount"`
}

type LessonDetail struct {
	LessonWithFavorite
	UserRating   *int  `json:"userRating"`
	TotalRatings int64 `json:"totalRatings"`
}

// ===== FAVORITE DTOs =====

type FavoriteWithLesson struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	LessonID  string    `json:"lessonId"`
	Lesson    Lesson    `json:"lesson"`
	CreatedAt time.Time `json:"createdAt"`
}

// ===== RATING DTOs =====

type RatingResult struct {
	RatingID      string  `json:"ratingId"`
	LessonID      string  `json:"lessonId"`
	UserRating    int     `json:"userRating"`
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
}

// ===== DASHBOARD DTOs =====

type DashboardStats struct {
	TotalStudents  int64 `json:"totalStudents"`
	TotalLessons   int64 `json:"totalLessons"`
	TotalFavorites int64 `json:"totalFavorites"`
}

type GrowthPoint struct {
	Date  string `json:"date"` // calendar day, YYYY-MM-DD
	Count int64  `json:"count"`
}

type RatingBucket struct {
	Rating int   `json:"rating"` // 1..5
	Count  int64 `json:"count"`
}

type TopLesson struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	ImageURL      *string `json:"imageUrl"`
	Rating        float64 `json:"rating"`
	FavoriteCount int64   `json:"favoriteCount"`
}

type DashboardAnalytics struct {
	StudentGrowth      []GrowthPoint  `json:"studentGrowth"`
	RatingDistribution []RatingBucket `json:"ratingDistribution"`
	TopLessons         []TopLesson    `json:"topLessons"`
	RecentStudents     []*Student     `json:"recentStudents"`
	AverageRating      float64        `json:"averageRating"`
	TotalRatings       int64          `json:"totalRatings"`
}

// ===== UPLOAD DTOs =====

type UploadResult struct {
	URL         string `json:"url"`
	ObjectName  string `json:"objectName"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}
