package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/specimen-catalog/config"
	"github.com/oksasatya/specimen-catalog/internal/application"
	pginfra "github.com/oksasatya/specimen-catalog/internal/infrastructure/postgres"
	"github.com/oksasatya/specimen-catalog/pkg/helpers"
	mailtpl "github.com/oksasatya/specimen-catalog/pkg/mailer/templates"
)

// seed creates the first account. Every later account is provisioned through
// the gated signup endpoint by an existing one.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	if cfg.SeedEmail == "" || cfg.SeedPassword == "" {
		log.Fatal("SEED_EMAIL and SEED_PASSWORD are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{
		DSN:      cfg.PostgresDSN(),
		AppName:  cfg.AppName + "-seed",
		MaxConns: 2,
	})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	svc := application.NewAccountService(
		pginfra.NewAccountRepository(pool),
		helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL),
		nil,
		mailtpl.Branding{},
		logger,
		cfg.StoreTimeout,
	)
	a, created, err := svc.Bootstrap(ctx, cfg.SeedEmail, cfg.SeedPassword, cfg.SeedName)
	if err != nil {
		log.Fatalf("failed to seed account: %v", err)
	}
	if created {
		logger.WithField("id", a.ID).WithField("email", a.Email).Info("seeded account")
		return
	}
	logger.WithField("id", a.ID).WithField("email", a.Email).Info("account already exists; left unchanged")
}
