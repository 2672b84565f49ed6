package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/specimen-catalog/internal/application"
	"github.com/oksasatya/specimen-catalog/internal/interface/middleware"
	"github.com/oksasatya/specimen-catalog/pkg/helpers"
	"github.com/oksasatya/specimen-catalog/pkg/response"
	"github.com/oksasatya/specimen-catalog/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AccountService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AccountService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name" binding:"omitempty,label"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, h.Logger, "invalid credentials", err)
		return
	}
	h.Cookies.SetAccess(c, sess.Token, sess.ExpiresAt)
	response.Success(c, http.StatusOK, sess, "login successful", nil)
}

// Signup POST /api/auth/signup (auth required)
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.Signup(c.Request.Context(), middleware.AccountID(c), req.Email, req.Password, req.Name)
	if err != nil {
		fail(c, h.Logger, "signup failed", err)
		return
	}
	response.Success(c, http.StatusCreated, a, "account created", nil)
}

// Logout POST /api/auth/logout. Issued tokens stay valid until they expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// Me GET /api/auth/me (auth required)
func (h *AuthHandler) Me(c *gin.Context) {
	a, err := h.Svc.Me(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		fail(c, h.Logger, "account not found", err)
		return
	}
	response.Success(c, http.StatusOK, a, "account", nil)
}
