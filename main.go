package main

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openscribe/blogapi/config"
	"github.com/openscribe/blogapi/routes"
	"github.com/openscribe/blogapi/stores"
	"github.com/openscribe/blogapi/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	// Connect to the document store before accepting traffic.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := config.InitDatabase(ctx)
	cancel()
	if err != nil {
		utils.Sugar.Fatalf("database init failed: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		utils.InitBlacklist(redisClient)
	}

	r := routes.SetupRouter(stores.NewUserStore(db), stores.NewPostStore(db))

	srv := utils.NewServer(":"+cfg.AppPort, r)
	srv.OnShutdown(func(ctx context.Context) {
		if err := config.CloseDatabase(ctx); err != nil {
			utils.Sugar.Errorf("database close failed: %v", err)
		}
		if redisClient != nil {
			_ = redisClient.Close()
		}
	})

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := srv.ListenAndServe(); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
