package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/eduportal-service/internal/events"
	"github.com/SAP-F-2025/eduportal-service/internal/models"
	"github.com/SAP-F-2025/eduportal-service/internal/repositories"
	"github.com/SAP-F-2025/eduportal-service/internal/validator"
)

// ===== SERVICE INTERFACE =====

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*models.AuthResponse, error)
	Me(ctx context.Context, userID string) (*models.AuthUser, error)
}

// JWTConfig holds token issuance settings.
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// Claims is the JWT payload. Field names are part of the wire contract
// with API clients.
type Claims struct {
	UserID string          `json:"userId"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// ===== SERVICE IMPLEMENTATION =====

type authService struct {
	repo       repositories.Repository
	db         *gorm.DB
	logger     *slog.Logger
	validator  *validator.Validator
	jwtConfig  JWTConfig
	bcryptCost int
}

func NewAuthService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, jwtConfig JWTConfig, bcryptCost int) AuthService {
	return &authService{
		repo:       repo,
		db:         db,
		logger:     logger,
		validator:  validator,
		jwtConfig:  jwtConfig,
		bcryptCost: bcryptCost,
	}
}

// Register creates the account and its student profile atomically, then
// answers a token so the caller is signed in immediately.
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*models.AuthResponse, error) {
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
		if err := txRepo.Student().Create(ctx, nil, student); err != nil {
			return err
		}
		return recordEvent(ctx, txRepo, events.TopicStudentRegistered, events.StudentRegisteredEvent{
			StudentID: student.ID,
			UserID:    user.ID,
			Email:     user.Email,
			FullName:  student.FullName,
		})
	})
	if err != nil {
		// the unique index can still race the pre-check
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	s.logger.Info("student registered", "user_id", user.ID, "student_id", student.ID)

	user.Student = student
	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*models.AuthResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	user, err := s.repo.User().GetByEmail(ctx, nil, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	full, err := s.repo.User().GetByIDWithStudent(ctx, nil, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "role", user.Role)

	return s.buildAuthResponse(full)
}

func (s *authService) Me(ctx context.Context, userID string) (*models.AuthUser, error) {
	user, err := s.repo.User().GetByIDWithStudent(ctx, nil, userID)
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound)
	}
	authUser := toAuthUser(user)
	return &authUser, nil
}

func (s *authService) buildAuthResponse(user *models.User) (*models.AuthResponse, error) {
	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &models.AuthResponse{
		Token: token,
		User:  toAuthUser(user),
	}, nil
}

func (s *authService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.Expiry)),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtConfig.Secret))
}

func toAuthUser(user *models.User) models.AuthUser {
	authUser := models.AuthUser{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	}
	if user.Student != nil {
		authUser.Student = &models.StudentSummary{
			ID:              user.Student.ID,
			FullName:        user.Student.FullName,
			ProfileImageURL: user.Student.ProfileImageURL,
		}
	}
	return authUser
}
