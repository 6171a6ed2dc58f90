package db

import (
	"fmt"

	"storefront/internal/config"
	"storefront/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsProd() {
		level = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	return db, nil
}

// DATABASE_URL があれば最優先で使う
func DSN(cfg config.Config) string {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresSSLMode,
	)
}

// 起動時にテーブルを揃える
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	)
}
