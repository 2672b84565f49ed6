package router

import (
	"github.com/oksasatya/specimen-catalog/internal/application"
	"github.com/oksasatya/specimen-catalog/internal/container"
	handlers "github.com/oksasatya/specimen-catalog/internal/interface/http"
	"github.com/oksasatya/specimen-catalog/internal/router/modules"
	mailtpl "github.com/oksasatya/specimen-catalog/pkg/mailer/templates"
)

// InitModules builds services and handlers from c and adds their modules to r.
// Call once at startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config

	specimenSvc := application.NewSpecimenService(
		c.Specimens,
		c.Uploader,
		c.Index,
		c.Logger,
		cfg.StoreTimeout,
		cfg.UploadTimeout,
	)
	accountSvc := application.NewAccountService(
		c.Accounts,
		c.JWT,
		c.Mail,
		mailtpl.Branding{
			AppName:     cfg.AppName,
			CompanyName: cfg.CompanyName,
			SupportURL:  cfg.SupportURL,
			LoginURL:    cfg.LoginURL,
		},
		c.Logger,
		cfg.StoreTimeout,
	)

	r.Add(modules.NewHealthModule())
	r.Add(modules.NewAuthModule(
		handlers.NewAuthHandler(accountSvc, c.Logger, cfg.CookieDomain, cfg.CookieSecure),
		c.JWT,
		c.Redis,
	))
	r.Add(modules.NewSpecimenModule(
		handlers.NewSpecimenHandler(specimenSvc, c.Logger, cfg.MaxUploadBytes),
		c.JWT,
		c.Redis,
	))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
