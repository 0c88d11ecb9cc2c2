// Command devapi is a local stand-in for the remote users API the app signs up against.
package main

import (
	"context"
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"gobarber/internal/app/router"
	usersadapters "gobarber/internal/feature/users/adapters"
	usershandler "gobarber/internal/feature/users/transport/handler"
	usersusecase "gobarber/internal/feature/users/usecase"
	"gobarber/internal/platform/config"
	infradb "gobarber/internal/platform/db"
	"gobarber/internal/platform/http/handler"
	"gobarber/internal/platform/logging"
	"gobarber/internal/platform/ratelimit"
	infraredis "gobarber/internal/platform/redis"
)

func main() {
	config.LoadDotEnv()
	cfg := config.LoadDevAPI()
	logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	// db
	db, err := infradb.Open(infradb.Config{
		DatabaseURL:  cfg.DatabaseURL,
		SQLitePath:   cfg.SQLitePath,
		ConnDeadline: 60 * time.Second,
	})
	if err != nil {
		log.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	// Redis
	var limiter ratelimit.Limiter
	var rdb *redisv9.Client
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	rdb, err = infraredis.NewRedisClient(ctx, cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
	cancel()
	if err != nil {
		log.Println("[WARN] Redis unavailable. Limiting signup attempts in memory.")
		limiter = ratelimit.NewMemory(cfg.SignupLimit, cfg.SignupWindow)
	} else {
		limiter = ratelimit.NewRedis(rdb, "signup_attempts", cfg.SignupLimit, cfg.SignupWindow)
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := usersadapters.NewUserGorm(db)

	// Usecase
	usersUC := usersusecase.NewUsersUsecase(userRepo, 0)

	// Handler
	usersH := usershandler.NewUsersHandler(usersUC)

	// ルータ生成
	r := router.NewRouter(usersH, limiter, handler.Check{Name: "db", Run: sqlDB.PingContext})

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
