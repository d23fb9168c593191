package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Conectar abre o Postgres com as credenciais do ambiente ou do Secrets Manager.
func Conectar(ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	username, password, err := retrieveCredentials(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("credenciais do banco: %w", err)
	}

	var sslMode string
	if cfg.DBSSLModeDisable {
		sslMode = " sslmode=disable"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s TimeZone=UTC",
		cfg.DBHost, username, password, cfg.DBName, cfg.DBPort, sslMode)

	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(nivelLog(cfg.DBLogLevel)),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB(): %w", err)
	}
	if cfg.DBMaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
	if cfg.DBConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetime) * time.Minute)
	}
	return database, nil
}

func nivelLog(s string) logger.LogLevel {
	switch strings.ToLower(s) {
	case "silent":
		return logger.Silent
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return logger.Error
	}
}
