package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/specimen-catalog/config"
	"github.com/oksasatya/specimen-catalog/internal/application"
	"github.com/oksasatya/specimen-catalog/internal/container"
	"github.com/oksasatya/specimen-catalog/internal/infrastructure/memory"
	"github.com/oksasatya/specimen-catalog/internal/infrastructure/mongodb"
	pginfra "github.com/oksasatya/specimen-catalog/internal/infrastructure/postgres"
	"github.com/oksasatya/specimen-catalog/internal/infrastructure/search"
	"github.com/oksasatya/specimen-catalog/internal/infrastructure/storage"
	"github.com/oksasatya/specimen-catalog/pkg/helpers"
	mailtpl "github.com/oksasatya/specimen-catalog/pkg/mailer/templates"
)

// buildContainer connects every backing service named by cfg. On error the
// clients opened so far are closed.
func buildContainer(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*container.Container, error) {
	c := container.New(cfg, logger)
	ok := false
	defer func() {
		if !ok {
			if err := c.Close(); err != nil {
				logger.WithError(err).Warn("closing clients after failed startup")
			}
		}
	}()

	if err := wireStores(ctx, c); err != nil {
		return nil, err
	}

	uploader, closeUploader, err := storage.NewUploaderFromConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("image store: %w", err)
	}
	c.Uploader = uploader
	c.OnClose(closeUploader)
	logger.WithField("image_store", cfg.ImageStore).Info("image store ready")

	// Redis backs rate limiting only; it fails open when unreachable.
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	c.Redis = rdb
	c.OnClose(rdb.Close)

	c.Index = search.NoopIndex{}
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(helpers.ESConfig{
			Addrs:    addrs,
			Username: cfg.ElasticsearchUser,
			Password: cfg.ElasticsearchPass,
			Timeout:  cfg.StoreTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("elasticsearch: %w", err)
		}
		c.Index = search.NewSpecimenIndex(es, cfg.ESSpecimensIndex)
		logger.WithField("index", cfg.ESSpecimensIndex).Info("search index enabled")
	}

	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, cfg.AppName)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq: %w", err)
		}
		c.Mail = pub
		c.OnClose(pub.Close)
	}

	ok = true
	return c, nil
}

// wireStores picks the specimen and account stores. The memory mode keeps
// both in process and creates the seed account at startup.
func wireStores(ctx context.Context, c *container.Container) error {
	cfg := c.Config
	switch cfg.SpecimenStore {
	case "memory":
		c.Specimens = memory.NewSpecimenRepository()
		c.Accounts = memory.NewAccountRepository()
		c.Logger.Warn("using in-memory stores; data is lost on restart")
		return seedMemoryAccount(ctx, c)

	case "mongo", "mongodb":
		client, err := mongodb.NewClient(ctx, cfg.MongoURI)
		if err != nil {
			return err
		}
		c.OnClose(func() error { return client.Disconnect(context.Background()) })
		specimens := mongodb.NewSpecimenRepository(client.Database(cfg.MongoDB), cfg.MongoCollection)
		if err := specimens.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("mongo indexes: %w", err)
		}
		c.Specimens = specimens

		pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{
			DSN:         cfg.PostgresDSN(),
			AppName:     cfg.AppName,
			MaxConns:    cfg.DBMaxConns,
			MinConns:    cfg.DBMinConns,
			MaxConnLife: cfg.DBMaxConnLife,
		})
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		c.OnClose(func() error { pool.Close(); return nil })
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, c.Logger); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		c.Accounts = pginfra.NewAccountRepository(pool)
		return nil

	default:
		return fmt.Errorf("unknown specimen store: %s", cfg.SpecimenStore)
	}
}

func seedMemoryAccount(ctx context.Context, c *container.Container) error {
	cfg := c.Config
	if cfg.SeedEmail == "" || cfg.SeedPassword == "" {
		c.Logger.Warn("SEED_EMAIL/SEED_PASSWORD not set; no account can log in")
		return nil
	}
	svc := application.NewAccountService(c.Accounts, c.JWT, nil, mailtpl.Branding{}, c.Logger, cfg.StoreTimeout)
	a, _, err := svc.Bootstrap(ctx, cfg.SeedEmail, cfg.SeedPassword, cfg.SeedName)
	if err != nil {
		return fmt.Errorf("seed account: %w", err)
	}
	c.Logger.WithField("email", a.Email).Info("seed account ready")
	return nil
}
