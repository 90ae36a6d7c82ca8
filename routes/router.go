package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/openscribe/blogapi/config"
	"github.com/openscribe/blogapi/controllers"
	"github.com/openscribe/blogapi/middleware"
	"github.com/openscribe/blogapi/stores"
	"github.com/openscribe/blogapi/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(users stores.UserStore, posts stores.PostStore) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	utils.RegisterValidators()

	r := gin.New()
	r.Use(middleware.RequestLogger(utils.Logger))
	r.Use(middleware.Recovery(utils.Logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "Server is running"})
	})

	authController := controllers.NewAuthController(users)
	postController := controllers.NewPostController(posts)

	usersGroup := r.Group("/users")
	usersGroup.POST("/register", middleware.GuestOnly(), authController.Register)
	usersGroup.POST("/login", middleware.GuestOnly(), authController.Login)
	usersGroup.GET("/logout", middleware.AuthRequired(), authController.Logout)

	postsGroup := r.Group("/posts")
	postsGroup.GET("", postController.List)
	postsGroup.GET("/:id", postController.Get)
	postsGroup.POST("", middleware.AuthRequired(), postController.Create)
	postsGroup.PUT("/:id", middleware.AuthRequired(), postController.Update)
	postsGroup.DELETE("/:id", middleware.AuthRequired(), postController.Delete)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, "Route not found")
	})

	return r
}
