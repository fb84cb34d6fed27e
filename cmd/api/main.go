package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	_ "github.com/jhoicas/cafe-pos-api/docs"
	"github.com/jhoicas/cafe-pos-api/internal/application/auth"
	"github.com/jhoicas/cafe-pos-api/internal/application/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/application/purchasing"
	"github.com/jhoicas/cafe-pos-api/internal/application/sales"
	"github.com/jhoicas/cafe-pos-api/internal/application/usecase"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/memory"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/cafe-pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/cafe-pos-api/internal/infrastructure/redis"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/cafe-pos-api/internal/interfaces/http"
	"github.com/jhoicas/cafe-pos-api/pkg/config"
	"github.com/jhoicas/cafe-pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Backend).
		Str("sequences", cfg.Store.SequenceBackend).
		Msg("iniciando aplicación")

	loc, _ := cfg.App.Location() // validado en config.Load
	ctx := context.Background()

	// Persistencia: Postgres (con migraciones embebidas) o memoria para desarrollo.
	var (
		txRunner repository.TxRunner
		repos    repository.Repos
	)
	switch cfg.Store.Backend {
	case "memory":
		if cfg.Store.SequenceBackend == "redis" {
			log.Warn().Msg("SEQUENCE_BACKEND=redis se ignora con STORE_BACKEND=memory")
		}
		store := memory.New()
		txRunner, repos = store, store.Repos()
	default:
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(cfg.DB.DSN()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		var opts []postgres.TxOption
		if cfg.Store.SequenceBackend == "redis" {
			rdb, err := infraredis.NewClient(ctx, cfg.Redis)
			if err != nil {
				log.Fatal().Err(err).Msg("conexión a Redis")
			}
			defer rdb.Close()
			opts = append(opts, postgres.WithSequences(infraredis.NewSequenceRepository(rdb)))
		}
		runner := postgres.NewTxRunner(pool, opts...)
		txRunner, repos = runner, runner.Repos()
	}

	productUC := usecase.NewProductUseCase(repos.Products)
	userUC := usecase.NewUserUseCase(repos.Users)
	supplierUC := usecase.NewSupplierUseCase(repos.Suppliers)
	stockUC := inventory.NewStockUseCase(txRunner, repos,
		inventory.WithLowStockGauge(inventory.GaugeFunc(metrics.SetLowStock)))

	salesOpts := []sales.Option{
		sales.WithLocation(loc),
		sales.WithRecorder(sales.RecorderFunc(metrics.RecordOrder)),
	}
	checkoutUC := sales.NewCheckoutUseCase(txRunner, salesOpts...)
	orderUC := sales.NewOrderUseCase(txRunner, repos.Orders, salesOpts...)
	receiptUC := sales.NewReceiptUseCase(repos.Orders, infrapdf.NewReceiptGenerator(cfg.App.Name, loc))
	invoiceUC := purchasing.NewPurchaseInvoiceUseCase(txRunner, repos.Invoices, purchasing.WithLocation(loc))

	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Admin inicial: en memoria no hay otra forma de tener usuarios.
	if cfg.Seed.AdminPassword != "" {
		created, err := userUC.EnsureAdmin(ctx, cfg.Seed.AdminUsername, cfg.Seed.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("sembrar admin")
		}
		if created {
			log.Info().Str("username", cfg.Seed.AdminUsername).Msg("admin inicial creado")
		}
	}

	jobs := scheduler.New(log, loc)
	if cfg.Jobs.LowStockCron != "" {
		if err := jobs.AddLowStockSweep(cfg.Jobs.LowStockCron, stockUC); err != nil {
			log.Fatal().Err(err).Str("spec", cfg.Jobs.LowStockCron).Msg("programar barrido de bajo stock")
		}
	}
	jobs.Start()

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	}, log)

	// Swagger UI en /docs solo si el archivo existe
	if cfg.App.SwaggerFile != "" {
		if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.App.SwaggerFile,
				Path:     "docs",
				Title:    "Café POS API",
			}))
		} else {
			log.Warn().Str("file", cfg.App.SwaggerFile).Msg("archivo swagger no encontrado, /docs deshabilitado")
		}
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName:  cfg.App.Name,
		JWTSecret:    cfg.JWT.Secret,
		AuthUC:       authUC,
		ProductUC:    productUC,
		UserUC:       userUC,
		SupplierUC:   supplierUC,
		StockUC:      stockUC,
		CheckoutUC:   checkoutUC,
		OrderUC:      orderUC,
		ReceiptUC:    receiptUC,
		InvoiceUC:    invoiceUC,
		LoginLimiter: httpRouter.NewLoginLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst, log),
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
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

	jobs.Stop(shutdownCtx)
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
