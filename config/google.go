// igp-generator/config/google.go
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var (
	GeminiClient *genai.Client

	// PlannerModelName - основная модель для генерации и ревизии учебных планов.
	// ChatModelName - облегченная модель для обычного чата (режим [CHAT MODE]).
	PlannerModelName = "gemini-1.5-pro"
	ChatModelName    = "gemini-1.5-flash"
)

// InitGoogleServices инициализирует клиент Gemini API.
// Имена моделей можно переопределить через переменные окружения.
func InitGoogleServices() error {
	ctx := context.Background()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return fmt.Errorf("unable to create Gemini client: %v", err)
	}
	GeminiClient = client

	if name := os.Getenv("PLANNER_MODEL"); name != "" {
		PlannerModelName = name
	}
	if name := os.Getenv("CHAT_MODEL"); name != "" {
		ChatModelName = name
	}

	slog.Info("Gemini API client initialized successfully.", "planner_model", PlannerModelName, "chat_model", ChatModelName)
	return nil
}
