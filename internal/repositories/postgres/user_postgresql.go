package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/eduportal-service/internal/models"
	"github.com/SAP-F-2025/eduportal-service/internal/repositories"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &userRepository{db: db}
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (r *userRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return handleDBError(err, "create user")
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error) {
	db := r.getDB(tx)
	var user models.User

	if err := db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get user by id")
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	db := r.getDB(tx)
	var user models.User

	if err := db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, handleDBError(err, "get user by email")
	}

	return &user, nil
}

func (r *userRepository) GetByIDWithStudent(ctx context.Context, tx *gorm.DB, id string) (*models.User, error) {
	db := r.getDB(tx)
	var user models.User

	if err := db.WithContext(ctx).
		Preload("Student").
		First(&user, "id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get user with student")
	}

	return &user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	db := r.getDB(tx)
	var count int64

	if err := db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check user email")
	}

	return count > 0, nil
}

func (r *userRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	db := r.getDB(tx)

	result := db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete user")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete user")
	}

	return nil
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *studentRepository) Create(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(student).Error; err != nil {
		return handleDBError(err, "create student")
	}
	return nil
}

func (r *studentRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Student, error) {
	db := r.getDB(tx)
	var student models.Student

	if err := db.WithContext(ctx).First(&student, "id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get student by id")
	}

	return &student, nil
}

func (r *studentRepository) GetByIDWithUser(ctx context.Context, tx *gorm.DB, id string) (*models.Student, error) {
	db := r.getDB(tx)
	var student models.Student

	if err := db.WithContext(ctx).
		Preload("User").
		First(&student, "id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get student with user")
	}

	return &student, nil
}

func (r *studentRepository) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.Student, error) {
	db := r.getDB(tx)
	var student models.Student

	if err := db.WithContext(ctx).First(&student, "user_id = ?", userID).Error; err != nil {
		return nil, handleDBError(err, "get student by user id")
	}

	return &student, nil
}

func (r *studentRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	db := r.getDB(tx)
	var students []*models.Student
	var total int64

	query := db.WithContext(ctx).Model(&models.Student{}).Preload("User")
	query = r.applyStudentFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count students")
	}

	// qualified ordering: the email search joins users, which also has
	// created_at and id columns
	query = query.Order("students.created_at DESC, students.id DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&students).Error; err != nil {
		return nil, 0, handleDBError(err, "list students")
	}

	return students, total, nil
}

func (r *studentRepository) ListAllWithUser(ctx context.Context, tx *gorm.DB) ([]*models.Student, error) {
	db := r.getDB(tx)
	var students []*models.Student

	if err := db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC, id DESC").
		Find(&students).Error; err != nil {
		return nil, handleDBError(err, "list all students")
	}

	return students, nil
}

func (r *studentRepository) Update(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(student).Error; err != nil {
		return handleDBError(err, "update student")
	}
	return nil
}

func (r *studentRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	db := r.getDB(tx)

	result := db.WithContext(ctx).Delete(&models.Student{}, "id = ?", id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete student")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete student")
	}

	return nil
}

func (r *studentRepository) GetRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*models.Student, error) {
	db := r.getDB(tx)
	var students []*models.Student

	if err := db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&students).Error; err != nil {
		return nil, handleDBError(err, "get recent students")
	}

	return students, nil
}

func (r *studentRepository) applyStudentFilters(query *gorm.DB, filters repositories.StudentFilters) *gorm.DB {
	if filters.Search != nil && *filters.Search != "" {
		pattern := searchPattern(*filters.Search)
		// search spans the profile name and the joined account email
		query = query.
			Joins("JOIN users ON users.id = students.user_id").
			Where("students.full_name ILIKE ? OR users.email ILIKE ?", pattern, pattern)
	}
	if filters.ClassName != nil && *filters.ClassName != "" {
		query = query.Where("students.class_name = ?", *filters.ClassName)
	}
	return query
}
