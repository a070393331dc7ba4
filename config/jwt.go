// igp-generator/config/jwt.go
package config

import (
	"log/slog"
	"os"
)

// JwtKey - секретный ключ для подписи JWT токенов.
var JwtKey []byte

func InitJWT() {
	key := os.Getenv("JWT_KEY")
	if key == "" {
		slog.Error("Критическая ошибка: переменная окружения JWT_KEY не установлена.")
		os.Exit(1)
	}
	JwtKey = []byte(key)
}
