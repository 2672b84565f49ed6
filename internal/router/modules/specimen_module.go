package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/specimen-catalog/internal/interface/http"
	"github.com/oksasatya/specimen-catalog/internal/interface/middleware"
	"github.com/oksasatya/specimen-catalog/pkg/helpers"
)

// SpecimenModule serves /specimens. Every route is behind the auth gate.
type SpecimenModule struct {
	Handler *handlers.SpecimenHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewSpecimenModule(h *handlers.SpecimenHandler, jwt *helpers.JWTManager, rdb *redis.Client) *SpecimenModule {
	return &SpecimenModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *SpecimenModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/specimens")
	g.Use(
		middleware.Auth(m.JWT),
		middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByAccount(), nil),
	)

	// aggregates are registered before /:id so the static segments win
	g.GET("/count", m.Handler.Count)
	g.GET("/count/:category", m.Handler.CountByCategory)
	g.GET("/total-cost", m.Handler.TotalCost)
	g.GET("/current-value", m.Handler.CurrentValue)
	g.GET("/recent", m.Handler.Recent)
	g.GET("/search", m.Handler.Search)

	g.GET("", m.Handler.List)
	g.POST("", m.Handler.Create)
	g.GET("/:id", m.Handler.Get)
	g.PUT("/:id", m.Handler.Update)
	g.PATCH("/:id", m.Handler.Update)
	g.DELETE("/:id", m.Handler.Delete)
}
