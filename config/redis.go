// igp-generator/config/redis.go
package config

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RDB кэширует профили пользователей для auth-мидлвари. nil - валидное
// состояние: без Redis каждый запрос просто ходит в Postgres.
var RDB *redis.Client
var Ctx = context.Background()

func ConnectRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		slog.Warn("REDIS_ADDR не задан, кэш профилей отключен")
		return
	}

	db := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			db = n
		} else {
			slog.Warn("REDIS_DB не число, используем 0", "value", raw)
		}
	}

	RDB = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		slog.Error("Redis недоступен, кэш профилей отключен", "addr", addr, "error", err)
		RDB = nil
		return
	}

	slog.Info("Redis подключен", "addr", addr)
}
