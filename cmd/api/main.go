package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	appcosting "github.com/jhoicas/Costeo-api/internal/application/costing"
	appinventory "github.com/jhoicas/Costeo-api/internal/application/inventory"
	appprocurement "github.com/jhoicas/Costeo-api/internal/application/procurement"
	"github.com/jhoicas/Costeo-api/internal/domain/planning"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/Costeo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Costeo-api/internal/interfaces/http"
	"github.com/jhoicas/Costeo-api/pkg/config"
	"github.com/jhoicas/Costeo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	lotRepo := postgres.NewCostLotRepository(pool)
	snapRepo := postgres.NewStockSnapshotRepository(pool)
	velocityRepo := postgres.NewSalesVelocityRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	batchRepo := postgres.NewWorkflowBatchRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché COGS opcional: sin REDIS_ADDR cada consulta va directo al ledger.
	var cogsCache appcosting.COGSCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, caché COGS desactivado")
		} else {
			cogsCache = cache.NewRedisCOGSCache(rdb, time.Duration(cfg.Redis.COGSTTLSecs)*time.Second)
		}
	}

	tiers := planning.Tiers{
		UrgentBelowDays: cfg.Planner.UrgentBelowDays,
		OKBelowDays:     cfg.Planner.OKBelowDays,
	}

	costingUC := appcosting.NewUseCase(lotRepo, cogsCache)
	snapshotUC := appinventory.NewSnapshotUseCase(snapRepo, velocityRepo)
	replenishmentUC := appinventory.NewReplenishmentUseCase(snapRepo, velocityRepo, tiers)
	procurementUC := appprocurement.NewUseCase(txRunner, poRepo)
	workflowUC := appprocurement.NewWorkflowUseCase(txRunner, batchRepo)

	pdfGenerator := infrapdf.NewMarotoPOGenerator()
	poPDFUC := appprocurement.NewPDFUseCase(poRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Costeo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CostingUC:                costingUC,
		SnapshotUC:               snapshotUC,
		ReplenishmentUC:          replenishmentUC,
		ProcurementUC:            procurementUC,
		WorkflowUC:               workflowUC,
		POPDFUC:                  poPDFUC,
		DefaultLeadTimeDays:      cfg.Planner.DefaultLeadTimeDays,
		DefaultTargetDaysOfCover: cfg.Planner.DefaultTargetDaysOfCover,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
