// igp-generator/internal/ai/gemini.go

// Пакет ai реализует способность planner.Completer поверх Gemini API.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/SinSayWu/igp-generator-sub000/internal/planner"
	"github.com/google/generative-ai-go/genai"
)

// GeminiCompleter - реализация planner.Completer на клиенте Gemini.
type GeminiCompleter struct {
	Client *genai.Client
}

// Complete выполняет один блокирующий вызов модели и возвращает полный текст
// ответа. Системные сообщения уходят в SystemInstruction, остальной диалог
// склеивается в один промпт с префиксами ролей.
func (g *GeminiCompleter) Complete(ctx context.Context, model string, messages []planner.Message, temperature float32) (string, error) {
	if g.Client == nil {
		return "", fmt.Errorf("gemini client is not initialized")
	}

	m := g.Client.GenerativeModel(model)
	m.SetTemperature(temperature)

	var system []genai.Part
	var transcript strings.Builder
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			system = append(system, genai.Text(msg.Content))
		case "assistant":
			transcript.WriteString("Assistant: " + msg.Content + "\n\n")
		default:
			transcript.WriteString("User: " + msg.Content + "\n\n")
		}
	}
	if len(system) > 0 {
		m.SystemInstruction = &genai.Content{Parts: system}
	}

	prompt := strings.TrimSpace(transcript.String())
	if prompt == "" {
		// Бывают запросы из одного системного промпта (ревизия, ремонт).
		prompt = "Proceed."
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				out.WriteString(string(txt))
			}
		}
		break // достаточно первого кандидата
	}

	return out.String(), nil
}
