package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/guelo0987/gigante-storefront/models"
)

// DB stores storefront activity. It stays nil when DATABASE_URL is unset.
var DB *gorm.DB

// InitDB opens the activity database and migrates its schema. A missing
// DATABASE_URL is not an error: activity logging is simply disabled.
func InitDB(cfg AppConfig) error {
	if cfg.DatabaseURL == "" {
		zap.L().Warn("DATABASE_URL not set, storefront activity logging disabled")
		return nil
	}

	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return fmt.Errorf("connect activity database: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}

	if err := db.AutoMigrate(&models.StorefrontActivity{}); err != nil {
		return fmt.Errorf("migrate activity database: %w", err)
	}

	DB = db
	zap.L().Info("activity database connected")
	return nil
}

func CloseDB() {
	if DB == nil {
		return
	}
	if sqlDB, _ := DB.DB(); sqlDB != nil {
		_ = sqlDB.Close()
		zap.L().Info("activity database connection closed")
	}
}
