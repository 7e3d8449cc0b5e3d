package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NailSitePro/salon-platform/internal/cache"
	"github.com/NailSitePro/salon-platform/internal/config"
	dbpkg "github.com/NailSitePro/salon-platform/internal/db"
	"github.com/NailSitePro/salon-platform/internal/jobs"
	"github.com/NailSitePro/salon-platform/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	ch := cache.New(cfg.RedisURL)

	cron := jobs.Start(db, cfg)
	defer cron.Stop()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, ch)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
