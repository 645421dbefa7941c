package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/eduportal-service/internal/cache"
	"github.com/SAP-F-2025/eduportal-service/internal/models"
	"github.com/SAP-F-2025/eduportal-service/internal/repositories"
	"github.com/SAP-F-2025/eduportal-service/internal/validator"
)

// ===== SERVICE INTERFACE =====

type StudentService interface {
	List(ctx context.Context, params ListParams) ([]*models.StudentWithEmail, models.PaginationMeta, error)
	GetByID(ctx context.Context, principal models.Principal, id string) (*models.StudentWithEmail, error)
	GetProfile(ctx context.Context, principal models.Principal) (*models.StudentWithEmail, error)
	Create(ctx context.Context, req *CreateStudentRequest) (*models.StudentWithEmail, error)
	Update(ctx context.Context, principal models.Principal, id string, req *UpdateStudentRequest) (*models.StudentWithEmail, error)
	Delete(ctx context.Context, id string) error
	ExportXLSX(ctx context.Context) ([]byte, error)
}

// ===== SERVICE IMPLEMENTATION =====

type studentService struct {
	repo         repositories.Repository
	db           *gorm.DB
	logger       *slog.Logger
	validator    *validator.Validator
	cacheManager *cache.CacheManager
	pagination   PaginationConfig
	bcryptCost   int
}

func NewStudentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, cacheManager *cache.CacheManager, pagination PaginationConfig, bcryptCost int) StudentService {
	return &studentService{
		repo:         repo,
		db:           db,
		logger:       logger,
		validator:    validator,
		cacheManager: cacheManager,
		pagination:   pagination,
		bcryptCost:   bcryptCost,
	}
}

func (s *studentService) List(ctx context.Context, params ListParams) ([]*models.StudentWithEmail, models.PaginationMeta, error) {
	params = params.Normalize(s.pagination)

	filters := repositories.StudentFilters{
		Limit:  params.Limit,
		Offset: params.Offset(),
	}
	if params.Search != "" {
		filters.Search = &params.Search
	}

	pageKey := fmt.Sprintf("list:%d:%d:%s", params.Page, params.Limit, params.Search)
	var page studentPage
	if err := s.cacheManager.Student.Get(ctx, pageKey, &page); err == nil {
		return page.Students, params.Meta(page.Total), nil
	}

	students, total, err := s.repo.Student().List(ctx, nil, filters)
	if err != nil {
		return nil, models.PaginationMeta{}, fmt.Errorf("failed to list students: %w", err)
	}

	out := make([]*models.StudentWithEmail, 0, len(students))
	for _, student := range students {
		out = append(out, toStudentWithEmail(student))
	}

	if err := s.cacheManager.Student.Set(ctx, pageKey, studentPage{Students: out, Total: total}, cache.StudentCacheConfig.TTL); err != nil {
		s.logger.Warn("failed to cache student page", "error", err)
	}

	return out, params.Meta(total), nil
}

// studentPage is the cached shape of one listing page.
type studentPage struct {
	Students []*models.StudentWithEmail `json:"students"`
	Total    int64                      `json:"total"`
}

// GetByID answers the student record. Students may only read their own
// profile; admins may read any.
func (s *studentService) GetByID(ctx context.Context, principal models.Principal, id string) (*models.StudentWithEmail, error) {
	student, err := s.cachedStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	// ownership is checked on every read, cache hits included
	if principal.Role != models.RoleAdmin && student.UserID != principal.UserID {
		return nil, NewPermissionError("student", "read", "not the profile owner")
	}

	return student, nil
}

// cachedStudent reads the student record through the cache.
func (s *studentService) cachedStudent(ctx context.Context, id string) (*models.StudentWithEmail, error) {
	key := "id:" + id
	var cached models.StudentWithEmail
	if err := s.cacheManager.Student.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	student, err := s.repo.Student().GetByIDWithUser(ctx, nil, id)
	if err != nil {
		return nil, notFoundOr(err, ErrStudentNotFound)
	}

	out := toStudentWithEmail(student)
	if err := s.cacheManager.Student.Set(ctx, key, out, cache.StudentCacheConfig.TTL); err != nil {
		s.logger.Warn("failed to cache student", "error", err, "student_id", id)
	}
	return out, nil
}

func (s *studentService) GetProfile(ctx context.Context, principal models.Principal) (*models.StudentWithEmail, error) {
	student, err := s.repo.Student().GetByUserID(ctx, nil, principal.UserID)
	if err != nil {
		return nil, notFoundOr(err, ErrStudentNotFound)
	}

	full, err := s.repo.Student().GetByIDWithUser(ctx, nil, student.ID)
	if err != nil {
		return nil, notFoundOr(err, ErrStudentNotFound)
	}

	return toStudentWithEmail(full), nil
}

func (s *studentService) Create(ctx context.Context, req *CreateStudentRequest) (*models.StudentWithEmail, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	taken, err := s.repo.User().ExistsByEmail(ctx, nil, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Password: string(hash),
		Role:     models.RoleStudent,
	}
	student := &models.Student{
		FullName:     req.FullName,
		ClassName:    req.ClassName,
		AcademicYear: req.AcademicYear,
		PhoneNumber:  req.PhoneNumber,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.User().Create(ctx, nil, user); err != nil {
			return err
		}
		student.UserID = user.ID
		return txRepo.Student().Create(ctx, nil, student)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	cache.InvalidateStudentCache(ctx, s.cacheManager, student.ID)
	s.logger.Info("student created", "student_id", student.ID, "user_id", user.ID)

	student.User = user
	return toStudentWithEmail(student), nil
}

func (s *studentService) Update(ctx context.Context, principal models.Principal, id string, req *UpdateStudentRequest) (*models.StudentWithEmail, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	student, err := s.repo.Student().GetByIDWithUser(ctx, nil, id)
	if err != nil {
		return nil, notFoundOr(err, ErrStudentNotFound)
	}

	if principal.Role != models.RoleAdmin && student.UserID != principal.UserID {
		return nil, NewPermissionError("student", "update", "not the profile owner")
	}

	if req.FullName != nil {
		student.FullName = *req.FullName
	}
	if req.ClassName != nil {
		student.ClassName = req.ClassName
	}
	if req.AcademicYear != nil {
		student.AcademicYear = req.AcademicYear
	}
	if req.PhoneNumber != nil {
		student.PhoneNumber = req.PhoneNumber
	}
	if req.ProfileImageURL != nil {
		student.ProfileImageURL = req.ProfileImageURL
	}

	if err := s.repo.Student().Update(ctx, nil, student); err != nil {
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	cache.InvalidateStudentCache(ctx, s.cacheManager, student.ID)
	s.logger.Info("student updated", "student_id", student.ID)

	return toStudentWithEmail(student), nil
}

// Delete removes the student's account. The user row owns the student
// profile, so deleting it cascades to the profile, favorites and ratings.
func (s *studentService) Delete(ctx context.Context, id string) error {
	student, err := s.repo.Student().GetByID(ctx, nil, id)
	if err != nil {
		return notFoundOr(err, ErrStudentNotFound)
	}

	if err := s.repo.User().Delete(ctx, nil, student.UserID); err != nil {
		return notFoundOr(err, ErrStudentNotFound)
	}

	cache.InvalidateStudentCache(ctx, s.cacheManager, student.ID)
	s.logger.Info("student deleted", "student_id", student.ID)

	return nil
}

// ExportXLSX renders the full student roster as a spreadsheet.
func (s *studentService) ExportXLSX(ctx context.Context) ([]byte, error) {
	students, err := s.repo.Student().ListAllWithUser(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load students for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Students"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Full Name", "Email", "Class", "Academic Year", "Phone", "Registered"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for rowIdx, student := range students {
		email := ""
		if student.User != nil {
			email = student.User.Email
		}
		values := []interface{}{
			student.FullName,
			email,
			derefOrEmpty(student.ClassName),
			derefOrEmpty(student.AcademicYear),
			derefOrEmpty(student.PhoneNumber),
			student.CreatedAt.Format("2006-01-02"),
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}

	s.logger.Info("student roster exported", "count", len(students))

	return buf.Bytes(), nil
}

func toStudentWithEmail(student *models.Student) *models.StudentWithEmail {
	out := &models.StudentWithEmail{Student: *student}
	if student.User != nil {
		out.Email = student.User.Email
	}
	// the account carries the password hash, never serialize it outward
	out.User = nil
	return out
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
