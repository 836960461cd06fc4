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

	"github.com/dvergaras/fieldops-api/internal/application/auth"
	"github.com/dvergaras/fieldops-api/internal/application/inventory"
	"github.com/dvergaras/fieldops-api/internal/application/usecase"
	"github.com/dvergaras/fieldops-api/internal/infrastructure/export"
	"github.com/dvergaras/fieldops-api/internal/infrastructure/postgres"
	httpRouter "github.com/dvergaras/fieldops-api/internal/interfaces/http"
	"github.com/dvergaras/fieldops-api/migrations"
	"github.com/dvergaras/fieldops-api/pkg/config"
	"github.com/dvergaras/fieldops-api/pkg/logger"
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

	if err := postgres.Migrate(cfg.DB.ConnectionString(), migrations.FS); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	equipRepo := postgres.NewEquipmentRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	crewRepo := postgres.NewCrewRepository(pool)
	crewStockRepo := postgres.NewCrewStockRepository(pool)
	orderRepo := postgres.NewWorkOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, crewRepo, orderRepo)
	catalogUC := inventory.NewCatalogUseCase(txRunner, itemRepo)
	batchUC := inventory.NewBatchUseCase(txRunner, batchRepo)
	equipmentUC := inventory.NewEquipmentUseCase(txRunner, equipRepo)
	historyUC := inventory.NewHistoryUseCase(movementRepo)
	crewUC := usecase.NewCrewUseCase(crewRepo, crewStockRepo, itemRepo, batchRepo)
	orderUC := usecase.NewWorkOrderUseCase(orderRepo, movementRepo)
	reportUC := usecase.NewReportUseCase(
		itemRepo, movementRepo,
		export.NewExcelStockExporter(), export.NewMarotoMovementExporter(),
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "FieldOps API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:        catalogUC,
		RegisterMovement: registerMovementUC,
		BatchUC:          batchUC,
		EquipmentUC:      equipmentUC,
		HistoryUC:        historyUC,
		CrewUC:           crewUC,
		OrderUC:          orderUC,
		ReportUC:         reportUC,
		AuthUC:           authUC,
		JWTSecret:        cfg.JWT.Secret,
		MetricsEnabled:   cfg.Metrics.Enabled,
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
