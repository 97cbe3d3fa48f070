package router

import (
	"time"

	"prodtrack/internal/config"
	"prodtrack/internal/handler"
	"prodtrack/internal/middleware"
	"prodtrack/internal/model"
	"prodtrack/internal/repository"
	"prodtrack/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB
func New(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	variantRepo := repository.NewVariantRepository(db)
	accessRepo := repository.NewAccessRepository(db)
	targetRepo := repository.NewTargetRepository(db)
	productionRepo := repository.NewProductionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	userSvc := service.NewUserService(userRepo, accessRepo)
	accessSvc := service.NewAccessService(accessRepo, variantRepo, userRepo)
	variantSvc := service.NewVariantService(variantRepo, accessRepo)
	trackingSvc := service.NewTrackingService(targetRepo, productionRepo, accessSvc)
	reportingSvc := service.NewReportingService(targetRepo, productionRepo)
	exportSvc := service.NewExportService(targetRepo, productionRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(userSvc)
	variantsH := handler.NewVariantsHandler(variantSvc, accessSvc)
	trackingH := handler.NewTrackingHandler(trackingSvc)
	reportsH := handler.NewReportsHandler(reportingSvc)
	exportH := handler.NewExportHandler(exportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/me", authH.Me)
		v1.GET("/variants", variantsH.ListResolved)

		// Recording and self-service reporting — production managers only.
		// Admins read manager data through /v1/admin and ?user_id instead.
		manager := middleware.RequireRole(model.RoleProductionManager)
		v1.POST("/weekly-targets", manager, trackingH.CreateTarget)
		v1.GET("/weekly-targets", trackingH.ListTargets)
		v1.DELETE("/weekly-targets/most-recent", manager, trackingH.DeleteMostRecentTarget)
		v1.POST("/daily-production", manager, trackingH.CreateProduction)
		v1.GET("/daily-production", trackingH.ListProduction)
		v1.DELETE("/daily-production/most-recent", manager, trackingH.DeleteMostRecentProduction)
		v1.GET("/target-vs-production", manager, reportsH.TargetVsProduction)

		// Admin-only surface
		admin := middleware.RequireRole(model.RoleAdmin)

		users := v1.Group("/users", admin)
		{
			users.GET("", usersH.List)
			users.POST("", usersH.Create)
			users.GET("/:id", usersH.Get)
			users.PATCH("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Delete)
		}

		adminGrp := v1.Group("/admin", admin)
		{
			adminGrp.GET("/variants", variantsH.List)
			adminGrp.POST("/variants", variantsH.Create)
			adminGrp.PATCH("/variants/:id", variantsH.Update)
			adminGrp.DELETE("/variants/:id", variantsH.Delete)

			adminGrp.GET("/managers/:id/variant-access", variantsH.GetAccess)
			adminGrp.PUT("/managers/:id/variant-access", variantsH.PutAccess)

			adminGrp.GET("/summary/:id", reportsH.AdminSummary)
		}

		exports := v1.Group("/export", admin)
		{
			exports.GET("/targets", exportH.Targets)
			exports.GET("/daily", exportH.Daily)
		}
	}

	return r
}
