package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/specimen-catalog/pkg/helpers"
	"github.com/oksasatya/specimen-catalog/pkg/response"
)

// CtxAccountIDKey holds the authenticated account id in the gin context.
const CtxAccountIDKey = "accountID"

// Auth verifies the access token from the Authorization header, falling back
// to the access_token cookie, and stores the account id on success. Any
// failure aborts with 401.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}
		c.Set(CtxAccountIDKey, claims.AccountID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if h := strings.TrimSpace(c.GetHeader("Authorization")); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if token, err := c.Cookie(helpers.AccessCookie); err == nil {
		return token
	}
	return ""
}

// AccountID returns the id set by Auth.
func AccountID(c *gin.Context) string {
	return c.GetString(CtxAccountIDKey)
}
