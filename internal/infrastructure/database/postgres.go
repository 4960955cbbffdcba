package database

import (
	"fmt"

	"hospital-management/config"
	"hospital-management/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN renders cfg in the keyword/value form understood by pgx.
func DSN(cfg config.DBConfig) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode, cfg.TimeZone,
	)
}

// GormLogLevel maps the application log level onto gorm's SQL logger.
func GormLogLevel(level logrus.Level) logger.LogLevel {
	switch {
	case level >= logrus.DebugLevel:
		return logger.Info
	case level >= logrus.WarnLevel:
		return logger.Warn
	default:
		return logger.Error
	}
}

func NewPostgresConnection(log *logrus.Logger, cfg config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		Logger: logger.Default.LogMode(GormLogLevel(log.GetLevel())),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.WithFields(logrus.Fields{"host": cfg.Host, "database": cfg.Name}).
		Info("Successfully connected to PostgreSQL database")

	return db, nil
}

// SyncSchema creates or alters the tables backing the entities.
func SyncSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.User{}, &entity.Patient{}, &entity.AuditLog{}); err != nil {
		return fmt.Errorf("failed to sync schema: %w", err)
	}
	return nil
}
