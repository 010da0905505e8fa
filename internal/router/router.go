package router

import (
	"time"

	"liquorpos/internal/auth"
	"liquorpos/internal/config"
	"liquorpos/internal/handler"
	"liquorpos/internal/middleware"
	"liquorpos/internal/repository"
	"liquorpos/internal/service"
	"liquorpos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
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
	brandRepo := repository.NewBrandRepository(db)
	entryRepo := repository.NewStockEntryRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	migrationRepo := repository.NewMigrationRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	guard := auth.NewSharedSecretGuard(cfg.OwnerPassword)
	ledgerSvc := service.NewLedgerService(brandRepo, entryRepo, txRepo, guard, dispatcher)
	reportSvc := service.NewReportService(brandRepo, entryRepo, txRepo,
		cfg.LowStockThreshold, cfg.TopSellersLimit)
	migrationSvc := service.NewMigrationService(brandRepo, entryRepo, migrationRepo, guard)

	// ── Handlers ─────────────────────────────────────────────────────────────
	stockH := handler.NewStockHandler(ledgerSvc, reportSvc)
	salesH := handler.NewSalesHandler(ledgerSvc, reportSvc)
	reportsH := handler.NewReportsHandler(reportSvc, rdb)
	adminH := handler.NewAdminHandler(migrationSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		stock := v1.Group("/stock")
		{
			stock.POST("", stockH.AddStock)
			stock.DELETE("/:brandId", stockH.RemoveStock)
			stock.GET("/levels", stockH.StockLevels)
			stock.GET("/history", stockH.WeeklyHistory)
		}

		brands := v1.Group("/brands")
		{
			brands.GET("", reportsH.ListBrands)
			brands.GET("/search", reportsH.SearchBrands)
		}

		txs := v1.Group("/transactions")
		{
			txs.POST("", salesH.CreateSingle)
			txs.POST("/cart", salesH.CreateCart)
			txs.GET("", salesH.List)
			txs.DELETE("/:id", salesH.Delete)
		}

		v1.GET("/analytics", reportsH.Analytics)
		v1.POST("/admin/migrate", adminH.Migrate)
	}

	return r
}
