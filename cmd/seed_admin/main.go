// seed_admin crea el usuario administrador inicial en Postgres.
//
// Uso: SEED_ADMIN_PASSWORD=... go run ./cmd/seed_admin [-username admin]
// Si el usuario ya existe no lo modifica.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/jhoicas/cafe-pos-api/internal/application/usecase"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/cafe-pos-api/pkg/config"
	"github.com/jhoicas/cafe-pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_admin"})

	username := flag.String("username", cfg.Seed.AdminUsername, "username del admin")
	password := flag.String("password", cfg.Seed.AdminPassword, "contraseña del admin (o SEED_ADMIN_PASSWORD)")
	flag.Parse()

	if *password == "" {
		log.Fatal().Msg("falta la contraseña: use -password o SEED_ADMIN_PASSWORD")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.DSN()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	users := usecase.NewUserUseCase(postgres.NewUserRepository(pool))
	created, err := users.EnsureAdmin(ctx, *username, *password)
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar admin")
	}
	if !created {
		log.Info().Str("username", *username).Msg("el admin ya existe")
		return
	}
	log.Info().Str("username", *username).Msg("admin creado; cambie la contraseña después del primer login")
}
