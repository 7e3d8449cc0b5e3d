package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NailSitePro/salon-platform/internal/audit"
	"github.com/NailSitePro/salon-platform/internal/cache"
	"github.com/NailSitePro/salon-platform/internal/chatbot"
	"github.com/NailSitePro/salon-platform/internal/config"
	"github.com/NailSitePro/salon-platform/internal/handlers"
	infraRepo "github.com/NailSitePro/salon-platform/internal/infra/repository"
	"github.com/NailSitePro/salon-platform/internal/middleware"
	"github.com/NailSitePro/salon-platform/internal/payments"
	"github.com/NailSitePro/salon-platform/internal/stats"
	"github.com/NailSitePro/salon-platform/internal/tracking"
	ucSalon "github.com/NailSitePro/salon-platform/internal/usecase/salon"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, ch *cache.Cache) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	recorder := tracking.NewRecorder(db)
	r.Use(middleware.OptionalAuth(cfg))
	r.Use(middleware.TrackVisits(recorder, ch))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	salonRepo := infraRepo.NewSalonGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	statsMaintainer := stats.New(db)

	paymentsService := payments.NewService(db, statsMaintainer, cfg)

	chatClient := chatbot.NewClient(cfg)
	chatService := chatbot.NewService(db, chatClient)

	reports := tracking.NewReports(db)

	// ======================================================
	// USE CASES
	// ======================================================
	createSalonUC := ucSalon.NewCreateSalon(
		salonRepo,
		statsMaintainer,
		auditDispatcher,
	)

	claimSalonUC := ucSalon.NewClaimSalon(
		salonRepo,
		statsMaintainer,
		auditDispatcher,
	)

	deleteSalonUC := ucSalon.NewDeleteSalon(
		salonRepo,
		statsMaintainer,
		auditDispatcher,
	)

	contactLeadsUC := ucSalon.NewContactLeads(
		salonRepo,
		statsMaintainer,
		auditDispatcher,
	)

	lookupSalonUC := ucSalon.NewLookupSalon(
		salonRepo,
		ch,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	salonHandler := handlers.NewSalonHandler(
		db,
		salonRepo,
		ch,
		createSalonUC,
		claimSalonUC,
		deleteSalonUC,
		contactLeadsUC,
		lookupSalonUC,
	)

	templateHandler := handlers.NewTemplateHandler(db)
	blogHandler := handlers.NewBlogHandler(db, auditDispatcher)
	paymentHandler := handlers.NewPaymentHandler(paymentsService)
	statsHandler := handlers.NewStatsHandler(statsMaintainer)
	chatHandler := handlers.NewChatHandler(chatService)
	reportHandler := handlers.NewReportHandler(reports)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/salons", salonHandler.List)
		api.GET("/salons/:id", salonHandler.Get)
		api.GET("/sample/:sample_url", salonHandler.SampleLookup)

		api.GET("/templates", templateHandler.List)
		api.GET("/templates/:id", templateHandler.Get)
		api.GET("/templates/:id/preview", templateHandler.Preview)

		api.GET("/blog/posts", blogHandler.ListPosts)
		api.GET("/blog/posts/:slug", blogHandler.GetPost)
		api.POST("/blog/posts/:id/comments", blogHandler.CreateComment)

		api.GET("/plans", paymentHandler.ListPlans)
		api.GET("/plans/:id", paymentHandler.GetPlan)
		api.POST("/payments/webhook", paymentHandler.Webhook)

		api.POST("/chat", chatHandler.Chat)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)
			secured.POST("/me/password", meHandler.ChangePassword)
			secured.PUT("/me/salon", meHandler.UpdateSalonLink)

			secured.POST("/salons/:id/claim", salonHandler.Claim)
			secured.PATCH("/salons/:id", salonHandler.Update)
			secured.DELETE("/salons/:id", salonHandler.Delete)

			secured.POST("/payments/intent", paymentHandler.CreateIntent)
			secured.POST("/payments/subscription", paymentHandler.CreateSubscription)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/salons", salonHandler.Create)
				admin.POST("/salons/contact-leads", salonHandler.ContactLeads)

				admin.GET("/stats", statsHandler.Get)

				admin.POST("/blog/posts", blogHandler.CreatePost)
				admin.PATCH("/blog/posts/:id", blogHandler.UpdatePost)
				admin.DELETE("/blog/posts/:id", blogHandler.DeletePost)
				admin.POST("/blog/comments/:id/approve", blogHandler.ApproveComment)
				admin.DELETE("/blog/comments/:id", blogHandler.DeleteComment)

				admin.GET("/chat/conversations", chatHandler.ListConversations)

				admin.GET("/reports/overview", reportHandler.Overview)
				admin.GET("/reports/visits-by-day", reportHandler.VisitsByDay)
				admin.GET("/reports/popular-pages", reportHandler.PopularPages)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
