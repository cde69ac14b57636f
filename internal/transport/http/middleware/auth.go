package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clicksoft-api/internal/core/auth"
	"clicksoft-api/internal/domain"
	resp "clicksoft-api/internal/transport/http/response"
)

const keyPrincipal = "principal"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Principal, error)
}

// Auth requires a valid bearer token and stores the caller's principal on
// the context.
func Auth(a Authenticator, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(ah, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Message(resp.MsgNotAuthenticated))
			return
		}
		p, err := a.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		switch {
		case errors.Is(err, auth.ErrInvalidToken):
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Message(resp.MsgInvalidToken))
			return
		case err != nil:
			l.Error("authenticate", zap.String("rid", c.GetString(KeyRequestID)), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, resp.Message(resp.MsgInternal))
			return
		}
		p.RequestID = c.GetString(KeyRequestID)
		c.Set(keyPrincipal, p)
		c.Next()
	}
}

// PrincipalFrom returns the authenticated caller, or nil on public routes.
func PrincipalFrom(c *gin.Context) *domain.Principal {
	v, ok := c.Get(keyPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*domain.Principal)
	return p
}
