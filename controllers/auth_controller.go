package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openscribe/blogapi/config"
	"github.com/openscribe/blogapi/middleware"
	"github.com/openscribe/blogapi/models"
	"github.com/openscribe/blogapi/stores"
	"github.com/openscribe/blogapi/utils"
)

// AuthController handles registration, login and logout.
type AuthController struct {
	users stores.UserStore
}

// NewAuthController creates an AuthController backed by the given store.
func NewAuthController(users stores.UserStore) *AuthController {
	return &AuthController{users: users}
}

// Register creates a new account. Registration does not log the user in.
func (a *AuthController) Register(ctx *gin.Context) {
	var req models.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BindingError(ctx, err)
		return
	}

	rc := ctx.Request.Context()

	// Fast-path duplicate check; the unique index remains the source of truth.
	if _, err := a.users.FindByEmail(rc, req.Email); err == nil {
		utils.Error(ctx, http.StatusBadRequest, "User already exists")
		return
	} else if !errors.Is(err, models.ErrNotFound) {
		internalError(ctx, "register: lookup email", err)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		internalError(ctx, "register: hash password", err)
		return
	}

	if _, err := a.users.Create(rc, req.Username, req.Email, hash, ""); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			utils.Error(ctx, http.StatusBadRequest, "User already exists")
			return
		}
		internalError(ctx, "register: create user", err)
		return
	}

	utils.Message(ctx, http.StatusCreated, "User created successfully")
}

// Login verifies credentials and issues the session cookie. Unknown email and
// wrong password answer identically so neither factor leaks.
func (a *AuthController) Login(ctx *gin.Context) {
	var req models.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BindingError(ctx, err)
		return
	}

	user, err := a.users.FindByEmail(ctx.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.Error(ctx, http.StatusUnauthorized, "Invalid Credentials")
			return
		}
		internalError(ctx, "login: lookup email", err)
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, "Invalid Credentials")
		return
	}

	identity := user.Identity()
	token, err := utils.GenerateToken(identity, utils.TokenTTL)
	if err != nil {
		internalError(ctx, "login: generate token", err)
		return
	}

	setSessionCookie(ctx, token, int(utils.TokenTTL.Seconds()))
	ctx.JSON(http.StatusOK, identity)
}

// Logout clears the session cookie and revokes the presented token until its
// natural expiry. Calling it repeatedly is harmless.
func (a *AuthController) Logout(ctx *gin.Context) {
	if value, exists := ctx.Get(middleware.ContextTokenKey); exists {
		if token, ok := value.(string); ok && token != "" {
			expiresAt := time.Now().Add(utils.TokenTTL)
			if claims, err := utils.ParseToken(token); err == nil && claims.ExpiresAt != nil {
				expiresAt = claims.ExpiresAt.Time
			}
			utils.BlacklistToken(token, expiresAt)
		}
	}

	setSessionCookie(ctx, "", -1)
	utils.Message(ctx, http.StatusOK, "Logged out successfully")
}

// setSessionCookie writes the HttpOnly, strict-same-site session cookie.
func setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	cfg := config.Get()
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(middleware.TokenCookie, token, maxAge, "/", "", cfg.CookieSecure, true)
}
