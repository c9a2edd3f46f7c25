package middleware

import (
	"context"
	"strings"

	"signature-builder/internal/auth"
	"signature-builder/internal/domain"
	"signature-builder/internal/errors"

	"github.com/gin-gonic/gin"
)

type UserProvider interface {
	GetUserByID(ctx context.Context, id uint64) (*domain.User, error)
}

type Auth struct {
	UserService UserProvider
	Signer      *auth.Signer
}

// AuthMiddleWare rejects requests without a valid access token.
func (m *Auth) AuthMiddleWare() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			ctx.Error(errors.Unauthorized("Authorization is not found!", nil))
			ctx.Abort()
			return
		}
		if !m.authenticate(ctx, token) {
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// OptionalAuth lets anonymous requests through but still rejects a token
// that is present and invalid.
func (m *Auth) OptionalAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token != "" && !m.authenticate(ctx, token) {
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func (m *Auth) authenticate(ctx *gin.Context, token string) bool {
	claims, err := m.Signer.VerifyAccessToken(token)
	if err != nil {
		ctx.Error(errors.Unauthorized("Invalid token!", err))
		return false
	}

	user, err := m.UserService.GetUserByID(ctx.Request.Context(), claims.UserID)
	if err != nil {
		ctx.Error(errors.Unauthorized("Invalid User ID!", err))
		return false
	}
	if !user.IsActive {
		ctx.Error(errors.Unauthorized("User is not active", nil))
		return false
	}

	// Check token version
	if user.TokenVersion != claims.TokenVersion {
		ctx.Error(errors.Unauthorized("Invalid token version!", nil))
		return false
	}

	ctx.Set("user_id", claims.UserID)
	ctx.Set("jwt_token", token)
	return true
}

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
