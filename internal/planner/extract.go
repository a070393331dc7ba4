// igp-generator/internal/planner/extract.go
package planner

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
)

// Модель оборачивает расписание в markdown-блок ```json ... ```.
var jsonFenceRe = regexp.MustCompile("```json\\s*([\\s\\S]*?)\\s*```")

// Extraction - результат разбора ответа модели.
type Extraction struct {
	// Schedule - извлеченное расписание.
	Schedule ScheduleDraft
	// RawJSON - исходное содержимое блока (для промпта ремонта).
	RawJSON string
	// Remainder - текст ответа без JSON-блока (то, что видит студент).
	Remainder string
}

// scheduleEnvelope поддерживает оба варианта верхнего ключа: новый
// "schedule_summary" и легаси "schedule".
type scheduleEnvelope struct {
	ScheduleSummary map[string][]string `json:"schedule_summary"`
	Schedule        map[string][]string `json:"schedule"`
}

// ExtractSchedule ищет в тексте модели встроенное расписание.
// Отсутствие блока или битый JSON - не ошибка: возвращается ok=false,
// и вызывающая сторона решает, что делать с голым текстом.
func ExtractSchedule(text string) (Extraction, bool) {
	match := jsonFenceRe.FindStringSubmatchIndex(text)
	if match == nil {
		return Extraction{Remainder: strings.TrimSpace(text)}, false
	}

	raw := text[match[2]:match[3]]
	remainder := strings.TrimSpace(text[:match[0]] + text[match[1]:])

	var envelope scheduleEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		slog.Warn("Schedule block found but JSON is malformed", "error", err)
		return Extraction{Remainder: strings.TrimSpace(text)}, false
	}

	data := envelope.ScheduleSummary
	if data == nil {
		data = envelope.Schedule
	}
	if data == nil {
		return Extraction{Remainder: strings.TrimSpace(text)}, false
	}

	return Extraction{
		Schedule:  ScheduleDraft(data),
		RawJSON:   raw,
		Remainder: remainder,
	}, true
}

// RenderScheduleBlock сериализует итоговое расписание обратно в канонический
// markdown-блок для ответа пользователю.
func RenderScheduleBlock(draft ScheduleDraft) string {
	payload := map[string]ScheduleDraft{"schedule_summary": draft}
	data, err := json.MarshalIndent(payload, "", "    ")
	if err != nil {
		// map[string][]string всегда сериализуем; сюда попасть нельзя.
		slog.Error("Failed to marshal schedule block", "error", err)
		return ""
	}
	return "```json\n" + string(data) + "\n```"
}
