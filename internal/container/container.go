package container

import (
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/specimen-catalog/config"
	"github.com/oksasatya/specimen-catalog/internal/application"
	"github.com/oksasatya/specimen-catalog/internal/domain/repository"
	"github.com/oksasatya/specimen-catalog/pkg/helpers"
)

// Container carries the long-lived clients built at startup. cmd/main.go
// fills it and hands it to the router; nothing reads it globally.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Redis  *redis.Client // nil disables rate limiting
	JWT    *helpers.JWTManager

	Specimens repository.SpecimenRepository
	Accounts  repository.AccountRepository
	Uploader  repository.ImageUploader
	Index     repository.SpecimenIndex
	Mail      application.EmailPublisher // nil when MAIL_SEND_ENABLED is off

	closers []func() error
}

func New(cfg *config.Config, logger *logrus.Logger) *Container {
	return &Container{
		Config: cfg,
		Logger: logger,
		JWT:    helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL),
	}
}

// OnClose registers fn to run at shutdown. Closers run in reverse order.
func (c *Container) OnClose(fn func() error) {
	if fn != nil {
		c.closers = append(c.closers, fn)
	}
}

// Close releases every registered client and joins their errors.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
