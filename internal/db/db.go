package db

import (
	"context"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/NailSitePro/salon-platform/internal/config"
	"github.com/NailSitePro/salon-platform/internal/models"
	"github.com/NailSitePro/salon-platform/internal/stats"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// The counters start from live counts; from here on only the
	// maintainer touches them.
	if err := stats.New(db).Bootstrap(context.Background()); err != nil {
		log.Fatalf("failed to bootstrap stats row: %v", err)
	}

	return db
}

// Migrate is shared with the seed command and the test helpers.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Template{},
		&models.User{},
		&models.Salon{},
		&models.Stats{},
		&models.BlogPost{},
		&models.BlogComment{},
		&models.SubscriptionPlan{},
		&models.Visit{},
		&models.ChatConversation{},
		&models.ChatMessage{},
		&models.BusinessKnowledge{},
		&models.AuditLog{},
	)
}
