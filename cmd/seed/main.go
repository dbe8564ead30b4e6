// seed puebla la base de datos con datos de demostración: un usuario admin,
// tiendas, proveedores, productos y movimientos iniciales de inventario.
// Los movimientos pasan por el caso de uso real para que el libro y la
// proyección cacheada queden consistentes.
//
// Uso: go run ./cmd/seed
// Es idempotente a nivel de movimientos (usa idempotency_key fija por producto).
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bazaartech/inventory-ledger/internal/application/audit"
	"github.com/bazaartech/inventory-ledger/internal/application/dto"
	"github.com/bazaartech/inventory-ledger/internal/application/inventory"
	"github.com/bazaartech/inventory-ledger/internal/domain/entity"
	"github.com/bazaartech/inventory-ledger/internal/infrastructure/postgres"
	"github.com/bazaartech/inventory-ledger/pkg/config"
	"github.com/bazaartech/inventory-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	activityUC := audit.NewActivityLogUseCase(activityRepo, log)
	submitUC := inventory.NewSubmitMovementUseCase(
		txRunner, movementRepo, productRepo, storeRepo, supplierRepo, activityUC, log,
	)

	now := time.Now()

	// Usuario admin de demo.
	admin, err := userRepo.GetByEmail("admin@bazaartech.com")
	if err != nil {
		log.Fatal().Err(err).Msg("buscar admin")
	}
	if admin == nil {
		hash, _ := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
		admin = &entity.User{
			ID:           uuid.New().String(),
			Email:        "admin@bazaartech.com",
			PasswordHash: string(hash),
			FirstName:    "Admin",
			LastName:     "Demo",
			Role:         entity.RoleAdmin,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(admin); err != nil {
			log.Fatal().Err(err).Msg("crear admin")
		}
		log.Info().Str("email", admin.Email).Msg("usuario admin creado")
	}

	stores := make([]*entity.Store, 0, 5)
	for i := 1; i <= 5; i++ {
		s := &entity.Store{
			ID:        uuid.New().String(),
			Name:      fmt.Sprintf("Tienda %d", i),
			Location:  fmt.Sprintf("Ciudad %d, Zona Centro", i),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := storeRepo.Create(s); err != nil {
			log.Fatal().Err(err).Msg("crear tienda")
		}
		stores = append(stores, s)
	}

	suppliers := make([]*entity.Supplier, 0, 3)
	for i := 1; i <= 3; i++ {
		sup := &entity.Supplier{
			ID:          uuid.New().String(),
			Name:        fmt.Sprintf("Proveedor %d", i),
			ContactInfo: fmt.Sprintf("contacto%d@bazaartech.com", i),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := supplierRepo.Create(sup); err != nil {
			log.Fatal().Err(err).Msg("crear proveedor")
		}
		suppliers = append(suppliers, sup)
	}

	for i := 1; i <= 10; i++ {
		p := &entity.Product{
			ID:        uuid.New().String(),
			Name:      fmt.Sprintf("Producto %d", i),
			SKU:       fmt.Sprintf("SKU%03d", i),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := productRepo.Create(p); err != nil {
			log.Fatal().Err(err).Msg("crear producto")
		}

		store := stores[i%len(stores)]
		supplier := suppliers[i%len(suppliers)]

		// Entrada inicial por el camino real del libro.
		_, err := submitUC.Submit(ctx, admin.ID, dto.SubmitMovementRequest{
			ProductID:      p.ID,
			StoreID:        store.ID,
			SupplierID:     supplier.ID,
			MovementType:   entity.MovementTypeIN,
			Quantity:       int64(10 * i),
			IdempotencyKey: "seed-in-" + p.SKU,
		})
		if err != nil {
			log.Fatal().Err(err).Str("sku", p.SKU).Msg("movimiento inicial")
		}

		// Algunas salidas para que el dashboard muestre variedad de estados.
		if i%2 == 0 {
			_, err := submitUC.Submit(ctx, admin.ID, dto.SubmitMovementRequest{
				ProductID:      p.ID,
				StoreID:        store.ID,
				MovementType:   entity.MovementTypeOUT,
				Quantity:       int64(9 * i),
				IdempotencyKey: "seed-out-" + p.SKU,
			})
			if err != nil {
				log.Fatal().Err(err).Str("sku", p.SKU).Msg("salida de demo")
			}
		}
	}

	log.Info().Msg("datos de demostración cargados")
}
