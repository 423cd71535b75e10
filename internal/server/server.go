package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rakhadenny/scangate/config"
	"github.com/rakhadenny/scangate/internal/handlers"
	"github.com/rakhadenny/scangate/internal/middleware"
	"github.com/rakhadenny/scangate/internal/repository"
	"github.com/rakhadenny/scangate/internal/verification"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	cache, err := config.InitRedis(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %v", err)
	}

	svc := verification.NewService(
		repository.NewBookingStore(db),
		repository.NewScannerStore(db),
		repository.NewScanStore(db),
		cache,
	)

	r := gin.Default()

	setupRoutes(r, db, svc, cfg)

	return r.Run(":" + cfg.Port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, svc *verification.Service, cfg *config.Config) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.VerificationMiddleware(svc))

	public := r.Group("/v1")
	{
		public.POST("/auth/login", handlers.Login(cfg.JWTSecret))
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		protected.POST("/scans", handlers.VerifyScan)
		protected.POST("/scans/:scanId/override", handlers.OverrideScan)
		protected.GET("/events/:id/scans", handlers.ListScanHistory)

		bookings := protected.Group("/bookings")
		{
			bookings.POST("/:id/payload", handlers.IssueBookingPayload)
			bookings.GET("/:id/qr", handlers.BookingQRImage)
		}
	}
}
