package validator

// RegisterRequest creates a user account plus its student profile.
type RegisterRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=8,password_strength"`
	FullName     string  `json:"fullName" validate:"required,min=1,max=255"`
	ClassName    *string `json:"className" validate:"omitempty,max=100"`
	AcademicYear *string `json:"academicYear" validate:"omitempty,max=50"`
	PhoneNumber  *string `json:"phoneNumber" validate:"omitempty,phone"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateStudentRequest is the admin path: it provisions the account and
// the profile in one call.
type CreateStudentRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=8,password_strength"`
	FullName     string  `json:"fullName" validate:"required,min=1,max=255"`
	ClassName    *string `json:"className" validate:"omitempty,max=100"`
	AcademicYear *string `json:"academicYear" validate:"omitempty,max=50"`
	PhoneNumber  *string `json:"phoneNumber" validate:"omitempty,phone"`
}

// UpdateStudentRequest applies partial updates; nil fields are untouched.
type UpdateStudentRequest struct {
	FullName        *string `json:"fullName" validate:"omitempty,min=1,max=255"`
	ClassName       *string `json:"className" validate:"omitempty,max=100"`
	AcademicYear    *string `json:"academicYear" validate:"omitempty,max=50"`
	PhoneNumber     *string `json:"phoneNumber" validate:"omitempty,phone"`
	ProfileImageURL *string `json:"profileImageUrl" validate:"omitempty,url"`
}

type CreateLessonRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description string  `json:"description" validate:"required,min=1"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
}

type UpdateLessonRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
}

type RateLessonRequest struct {
	Value int `json:"value" validate:"required,gte=1,lte=5"`
}

type UpdateSchoolRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	LogoURL     *string `json:"logoUrl" validate:"omitempty,url"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,phone"`
}
