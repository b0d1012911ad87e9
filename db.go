package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"depenses/models"
)

// OpenDB connects to Postgres and runs schema migration unless
// DB_AUTO_MIGRATE is set to a false value.
func OpenDB(cfg Config, log *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	shouldMigrate := true
	if v := strings.ToLower(os.Getenv("DB_AUTO_MIGRATE")); v == "false" || v == "0" || v == "no" {
		shouldMigrate = false
	}
	if shouldMigrate {
		AutoMigrate(db, log)
	}
	return db, nil
}

// AutoMigrate migrates models individually so a failure on one doesn't block
// the others; failures are logged as warnings the way permission-restricted
// deployments need.
func AutoMigrate(db *gorm.DB, log *slog.Logger) {
	for _, m := range []any{
		&models.User{},
		&models.Expense{},
		&models.MonthlyBudget{},
		&models.Receipt{},
	} {
		if err := db.AutoMigrate(m); err != nil {
			log.Warn("migration warning", "model", fmt.Sprintf("%T", m), "err", err)
		}
	}
}

// SeedDB creates the bootstrap admin account when the users table is empty,
// and makes sure the upload base directory exists.
func SeedDB(db *gorm.DB, cfg Config, log *slog.Logger) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcryptCost)
		if err != nil {
			return err
		}
		admin := models.User{
			Email:        "admin@example.com",
			Username:     "admin",
			FullName:     "Administrator",
			PasswordHash: hash,
			IsAdmin:      true,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Info("seeded admin user", "username", "admin", "password", "admin123")
	}
	if err := os.MkdirAll(cfg.UploadBase, 0755); err != nil {
		log.Warn("failed to create upload base dir", "dir", cfg.UploadBase, "err", err)
	}
	return nil
}

// isUniqueConstraintError spots duplicate-key failures across drivers.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "UNIQUE constraint") || strings.Contains(s, "already exists")
}
