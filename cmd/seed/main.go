// seed crea el usuario administrador inicial y un catálogo mínimo de ejemplo.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que la API (env / .env). Idempotente: si el
// admin ya existe no hace nada.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dvergaras/fieldops-api/internal/application/auth"
	"github.com/dvergaras/fieldops-api/internal/application/dto"
	"github.com/dvergaras/fieldops-api/internal/application/inventory"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
	"github.com/dvergaras/fieldops-api/internal/infrastructure/postgres"
	"github.com/dvergaras/fieldops-api/migrations"
	"github.com/dvergaras/fieldops-api/pkg/config"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}
	if err := postgres.Migrate(cfg.DB.ConnectionString(), migrations.FS); err != nil {
		fail("migraciones: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	adminEmail := envOr("SEED_ADMIN_EMAIL", "admin@fieldops.local")
	existing, err := userRepo.FindByEmail(adminEmail)
	if err != nil {
		fail("consultar admin: %v", err)
	}
	if existing != nil {
		fmt.Println("admin ya existe, nada que hacer")
		return
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	admin, err := authUC.RegisterUser(dto.RegisterRequest{
		Email:    adminEmail,
		Password: envOr("SEED_ADMIN_PASSWORD", "cambiame-ya"),
		Name:     "Administrador",
		Role:     entity.RoleAdmin,
	})
	if err != nil {
		fail("crear admin: %v", err)
	}
	fmt.Printf("admin creado: %s\n", admin.Email)

	catalogUC := inventory.NewCatalogUseCase(txRunner, itemRepo)
	actor := inventory.Actor{UserID: admin.ID, Role: entity.RoleAdmin}
	samples := []dto.CreateItemRequest{
		{Code: "CAB-DROP-001", Type: entity.ItemTypeMaterial, Description: "Cable drop 2 hilos", Unit: "metros", MinStock: decimal.NewFromInt(200)},
		{Code: "CON-SC-APC", Type: entity.ItemTypeMaterial, Description: "Conector SC/APC", Unit: "unidades", MinStock: decimal.NewFromInt(50)},
		{Code: "ONT-HW-8145", Type: entity.ItemTypeEquipment, Description: "ONT HG8145V5", Unit: "unidades", MinStock: decimal.NewFromInt(10)},
	}
	for _, in := range samples {
		if _, err := catalogUC.CreateItem(ctx, actor, in); err != nil {
			fail("crear ítem %s: %v", in.Code, err)
		}
		fmt.Printf("ítem creado: %s\n", in.Code)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
