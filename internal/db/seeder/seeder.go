package seeder

import (
	"goalboard/internal/app/board"
	"goalboard/internal/app/category"
	"goalboard/internal/app/core"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeder creates a demo account with one board so a fresh dev
// environment has something to click through. Never used in prod.
type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSeeder(db *gorm.DB, logger *zap.Logger) *Seeder {
	return &Seeder{
		db:     db,
		logger: logger,
	}
}

func (s *Seeder) Seed() error {
	s.logger.Info("Running database seeders...")

	if err := s.seedDemoBoard(); err != nil {
		return err
	}

	s.logger.Info("Database seeders completed successfully")
	return nil
}

func (s *Seeder) seedDemoBoard() error {
	var count int64
	s.db.Model(&core.User{}).Count(&count)
	if count > 0 {
		s.logger.Info("Users already exist, skipping seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		demo := &core.User{Username: "demo", Email: "demo@example.com", PasswordHash: string(hash)}
		if err := tx.Create(demo).Error; err != nil {
			return err
		}

		demoBoard := &board.Board{Title: "Getting started"}
		if err := tx.Create(demoBoard).Error; err != nil {
			return err
		}
		owner := &board.Participant{BoardID: demoBoard.ID, UserID: demo.ID, Role: board.RoleOwner}
		if err := tx.Create(owner).Error; err != nil {
			return err
		}

		backlog := &category.GoalCategory{Title: "Backlog", BoardID: demoBoard.ID, AuthorID: demo.ID}
		if err := tx.Create(backlog).Error; err != nil {
			return err
		}

		s.logger.Info("Seeded demo user and board", zap.String("username", demo.Username))
		return nil
	})
}
