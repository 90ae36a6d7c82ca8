package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openscribe/blogapi/models"
	"github.com/openscribe/blogapi/utils"
)

const (
	// TokenCookie is the name of the session cookie.
	TokenCookie = "token"
	// ContextIdentityKey is the key used to store the authenticated identity
	// in the gin context.
	ContextIdentityKey = "identity"
	// ContextTokenKey stores the raw session token for logout revocation.
	ContextTokenKey = "session_token"
)

// AuthRequired ensures the request carries a valid session cookie and attaches
// the embedded identity to the context. Missing, malformed, expired, revoked
// and mis-signed tokens all produce the same 401.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(TokenCookie)
		if err != nil || token == "" {
			utils.Error(ctx, http.StatusUnauthorized, "Unauthorized")
			ctx.Abort()
			return
		}

		if utils.IsTokenBlacklisted(token) {
			utils.Error(ctx, http.StatusUnauthorized, "Unauthorized")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, "Unauthorized")
			ctx.Abort()
			return
		}

		ctx.Set(ContextIdentityKey, claims.Identity())
		ctx.Set(ContextTokenKey, token)
		ctx.Next()
	}
}

// GuestOnly rejects register/login attempts from callers that already hold a
// valid session, preventing duplicate session churn. Invalid or expired
// cookies pass through as anonymous.
func GuestOnly() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(TokenCookie)
		if err != nil || token == "" {
			ctx.Next()
			return
		}
		if utils.IsTokenBlacklisted(token) {
			ctx.Next()
			return
		}
		if _, err := utils.ParseToken(token); err != nil {
			ctx.Next()
			return
		}

		utils.Error(ctx, http.StatusBadRequest, "Already logged in")
		ctx.Abort()
	}
}

// CurrentIdentity returns the identity attached by AuthRequired.
func CurrentIdentity(ctx *gin.Context) (models.Identity, bool) {
	value, exists := ctx.Get(ContextIdentityKey)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := value.(models.Identity)
	return identity, ok
}
