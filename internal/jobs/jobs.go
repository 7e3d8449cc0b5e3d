package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/NailSitePro/salon-platform/internal/chatbot"
	"github.com/NailSitePro/salon-platform/internal/config"
	"github.com/NailSitePro/salon-platform/internal/tracking"
)

// Start wires the maintenance schedule: a nightly visit-retention sweep
// and an hourly prune of chat conversations that never got a message.
func Start(db *gorm.DB, cfg *config.Config) *cron.Cron {
	c := cron.New()

	reports := tracking.NewReports(db)
	chat := chatbot.NewService(db, nil)

	retention := time.Duration(cfg.VisitRetentionDays) * 24 * time.Hour

	if _, err := c.AddFunc("0 3 * * *", func() {
		cutoff := time.Now().Add(-retention)
		n, err := reports.PurgeOlderThan(context.Background(), cutoff)
		if err != nil {
			log.Printf("jobs: visit purge failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("jobs: purged %d visits older than %s", n, cutoff.Format("2006-01-02"))
		}
	}); err != nil {
		log.Fatalf("jobs: scheduling visit purge failed: %v", err)
	}

	if _, err := c.AddFunc("@hourly", func() {
		cutoff := time.Now().Add(-24 * time.Hour)
		n, err := chat.PruneEmptyOlderThan(context.Background(), cutoff)
		if err != nil {
			log.Printf("jobs: conversation prune failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("jobs: pruned %d empty conversations", n)
		}
	}); err != nil {
		log.Fatalf("jobs: scheduling conversation prune failed: %v", err)
	}

	c.Start()
	return c
}
