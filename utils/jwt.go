package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/openscribe/blogapi/config"
	"github.com/openscribe/blogapi/models"
)

// TokenTTL is the session token lifetime.
const TokenTTL = time.Hour

// Claims defines the JWT claims embedded in a session token: the public
// identity plus standard expiry metadata.
type Claims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
	jwt.RegisteredClaims
}

// Identity rebuilds the embedded identity from the claims.
func (c *Claims) Identity() models.Identity {
	return models.Identity{
		ID:       c.UserID,
		Username: c.Username,
		Avatar:   c.Avatar,
	}
}

// GenerateToken issues a signed token for the given identity.
func GenerateToken(identity models.Identity, duration time.Duration) (string, error) {
	cfg := config.Get()

	claims := Claims{
		UserID:   identity.ID,
		Username: identity.Username,
		Avatar:   identity.Avatar,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseToken validates a token's signature and expiry and returns its claims.
// Malformed, expired and mis-signed tokens all fail the same way.
func ParseToken(tokenStr string) (*Claims, error) {
	cfg := config.Get()
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
