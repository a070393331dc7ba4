// igp-generator/main.go
package main

import (
	"log/slog"
	"os"

	"github.com/SinSayWu/igp-generator-sub000/config"
	"github.com/SinSayWu/igp-generator-sub000/internal/handlers"
	"github.com/SinSayWu/igp-generator-sub000/internal/routes"
	"github.com/SinSayWu/igp-generator-sub000/models"

	"github.com/gin-gonic/gin"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	config.ConnectDB()
	config.ConnectRedis()
	config.InitJWT()
	// Без ключа Gemini сервер поднимается, но эндпоинты планирования
	// отвечают 503 - CRUD и аутентификация работают и без ИИ.
	if err := config.InitGoogleServices(); err != nil {
		slog.Warn("Gemini недоступен, ИИ-функции отключены", "error", err)
	}

	// Автомиграция схемы. Порядок важен: сначала таблицы без внешних ссылок.
	err := config.DB.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Course{},
		&models.GraduationRequirement{},
		&models.StudentCourse{},
		&models.Club{},
		&models.TargetCollege{},
		&models.AdvisingChat{},
		&models.AdvisingMessage{},
	)
	if err != nil {
		slog.Error("Ошибка автомиграции схемы", "error", err)
		os.Exit(1)
	}

	go handlers.GlobalHub.Run()

	r := gin.Default()
	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	slog.Info("Сервер запускается", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("Сервер остановился с ошибкой", "error", err)
		os.Exit(1)
	}
}
