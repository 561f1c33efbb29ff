package db

import (
	"goalboard/internal/app/board"
	"goalboard/internal/app/bot"
	"goalboard/internal/app/category"
	"goalboard/internal/app/comment"
	"goalboard/internal/app/core"
	"goalboard/internal/app/goal"
	"goalboard/internal/app/session"
	"goalboard/internal/config"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	dsn := cfg.PostgresDSN()
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	logger.Info("Connected to PostgreSQL",
		zap.String("host", cfg.DBHost),
		zap.String("database", cfg.DBName),
	)

	return db, nil
}

func Migrate(db *gorm.DB, logger *zap.Logger) error {
	err := db.AutoMigrate(
		&core.User{},
		&session.Session{},
		&board.Board{},
		&board.Participant{},
		&category.GoalCategory{},
		&goal.Goal{},
		&comment.GoalComment{},
		&bot.TgUser{},
	)
	if err != nil {
		return err
	}
	logger.Info("Database migrated")
	return nil
}
