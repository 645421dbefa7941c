package pkg

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/SAP-F-2025/eduportal-service/internal/config"
	"github.com/SAP-F-2025/eduportal-service/internal/models"
)

// InitDatabase opens the Postgres connection pool, runs migrations and
// seeds the default admin account and school profile.
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if !cfg.IsProduction() {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seedDefaults(db, cfg); err != nil {
		return nil, fmt.Errorf("failed to seed defaults: %w", err)
	}

	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Lesson{},
		&models.Favorite{},
		&models.Rating{},
		&models.School{},
		&models.EventRecord{},
	)
}

// seedDefaults is idempotent: the admin user and school profile are
// created only when absent.
func seedDefaults(db *gorm.DB, cfg *config.Config) error {
	var adminCount int64
	if err := db.Model(&models.User{}).Where("email = ?", cfg.AdminEmail).Count(&adminCount).Error; err != nil {
		return err
	}
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), cfg.BcryptCost)
		if err != nil {
			return err
		}
		admin := &models.User{
			Email:    cfg.AdminEmail,
			Password: string(hash),
			Role:     models.RoleAdmin,
		}
		if err := db.Create(admin).Error; err != nil {
			return err
		}
	}

	var schoolCount int64
	if err := db.Model(&models.School{}).Count(&schoolCount).Error; err != nil {
		return err
	}
	if schoolCount == 0 {
		school := &models.School{Name: cfg.SchoolName}
		if err := db.Create(school).Error; err != nil {
			return err
		}
	}

	return nil
}
