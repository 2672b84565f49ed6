package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/specimen-catalog/internal/interface/http"
	"github.com/oksasatya/specimen-catalog/internal/interface/middleware"
	"github.com/oksasatya/specimen-catalog/pkg/helpers"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public, limited per IP and route
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/logout", m.Handler.Logout)

	// Signup is only open to holders of a valid token
	auth := rg.Group("/auth")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/signup", middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByAccount(), nil), m.Handler.Signup)
		auth.GET("/me", m.Handler.Me)
	}
}
