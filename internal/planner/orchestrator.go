// igp-generator/internal/planner/orchestrator.go
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SinSayWu/igp-generator-sub000/models"
)

// Message - одна реплика входящего диалога.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// Completer - внешняя способность "дополни текст". Транспорт (Gemini, мок в
// тестах) конвейер не интересует.
type Completer interface {
	Complete(ctx context.Context, model string, messages []Message, temperature float32) (string, error)
}

// PlanMode - явный режим запроса планирования.
type PlanMode string

const (
	// ModePlan - полный конвейер: черновик, ревизия, валидация, ремонт.
	ModePlan PlanMode = "PLAN"
	// ModeUpdate - правка существующего плана (тот же полный конвейер).
	ModeUpdate PlanMode = "UPDATE"
	// ModeChat - легкий одиночный вызов без ревизии и валидации.
	ModeChat PlanMode = "CHAT"
)

// Легаси-маркеры режима, которые старые клиенты вшивают прямо в сообщения.
// Новые клиенты передают типизированное поле mode; маркеры оставлены только
// для совместимости по проводу.
const (
	markerSystemInjection = "[SYSTEM INJECTION]"
	markerChatMode        = "[CHAT MODE]"
)

// Температуры стадий: черновику - креативность, ревизии и ремонту - строгость.
const (
	draftTemperature  = 0.5
	auditTemperature  = 0.3
	repairTemperature = 0.2
)

// maxRepairAttempts ограничивает стадию ремонта. Ровно одна попытка:
// каждый лишний заход - это еще один полный вызов модели в латентности ответа.
const maxRepairAttempts = 1

// ErrNoCompleter возвращается, если способность дополнения не сконфигурирована.
var ErrNoCompleter = errors.New("planner: no completion capability configured")

// ErrDraftFailed - фатальный отказ стадии черновика; у нее нет фолбэка.
var ErrDraftFailed = errors.New("planner: draft stage produced no text")

// Orchestrator прогоняет протокол черновик -> ревизия -> валидация ->
// ремонт -> фиксация истории.
type Orchestrator struct {
	Completer    Completer
	PlannerModel string
	ChatModel    string
}

// Result - итог одного прогона конвейера.
type Result struct {
	// Reply - финальный текст для пользователя (со встроенным JSON-блоком,
	// когда расписание получилось).
	Reply string
	// Schedule - извлеченное и зафиксированное расписание; nil, если модель
	// расписание не вернула.
	Schedule ScheduleDraft
	// Violations - нарушения итогового расписания (после ремонта, если он был).
	Violations []string
	// DraftText и AuditText - сырые выводы стадий для отладки.
	DraftText string
	AuditText string
}

// DetectMode выбирает режим: типизированное поле запроса, если оно задано,
// иначе легаси-сканирование сообщений на маркеры.
func DetectMode(explicit string, messages []Message) PlanMode {
	switch PlanMode(strings.ToUpper(explicit)) {
	case ModePlan, ModeUpdate, ModeChat:
		return PlanMode(strings.ToUpper(explicit))
	}

	for _, m := range messages {
		if strings.Contains(m.Content, markerChatMode) {
			return ModeChat
		}
	}
	for _, m := range messages {
		if strings.Contains(m.Content, markerSystemInjection) {
			return ModeUpdate
		}
	}
	return ModePlan
}

// Run выполняет конвейер для одного запроса. Стадии строго последовательны:
// промпт каждой следующей собирается из текста предыдущей.
func (o *Orchestrator) Run(ctx context.Context, mode PlanMode, messages []Message, snap *Snapshot, catalog CatalogIndex, reqs []models.GraduationRequirement) (*Result, error) {
	if o.Completer == nil {
		return nil, ErrNoCompleter
	}

	if mode == ModeChat {
		return o.runChat(ctx, messages, snap)
	}

	// --- DRAFTING ---
	draftMessages := append([]Message{
		{Role: "system", Content: BuildDraftPrompt(snap, catalog, reqs)},
	}, messages...)

	draftText, err := o.Completer.Complete(ctx, o.PlannerModel, draftMessages, draftTemperature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDraftFailed, err)
	}
	if strings.TrimSpace(draftText) == "" {
		return nil, ErrDraftFailed
	}

	// --- AUDITING ---
	// Ревизор получает свежий контекст: только правила, данные и черновик.
	// Отказ ревизии не фатален - остаемся с черновиком.
	currentText := draftText
	auditText := ""
	auditMessages := []Message{
		{Role: "system", Content: BuildAuditPrompt(draftText, snap, catalog, reqs)},
	}
	if text, err := o.Completer.Complete(ctx, o.PlannerModel, auditMessages, auditTemperature); err != nil {
		slog.Warn("Audit stage failed, falling back to draft", "error", err)
	} else if strings.TrimSpace(text) == "" {
		slog.Warn("Audit stage returned empty text, falling back to draft")
	} else {
		auditText = text
		currentText = text
	}

	result := &Result{DraftText: draftText, AuditText: auditText}

	extraction, found := ExtractSchedule(currentText)
	if !found {
		// Расписания в тексте нет - валидировать и сохранять нечего,
		// отдаем текст как есть.
		slog.Warn("No schedule block found in model output, passing text through")
		result.Reply = strings.TrimSpace(currentText)
		return result, nil
	}

	// Первая фиксация истории: черновик и ревизия - недоверенный текст.
	schedule, _ := EnforceHistory(extraction.Schedule, snap)

	// --- VALIDATING / REPAIRING ---
	violations := Validate(schedule, snap, catalog, reqs)
	for attempt := 0; attempt < maxRepairAttempts && len(violations) > 0; attempt++ {
		slog.Info("Schedule failed validation, attempting repair", "violations", len(violations))

		repairMessages := []Message{
			{Role: "system", Content: BuildRepairPrompt(extraction.RawJSON, violations, snap, catalog, reqs)},
		}
		repairText, err := o.Completer.Complete(ctx, o.PlannerModel, repairMessages, repairTemperature)
		if err != nil {
			slog.Warn("Repair stage failed, keeping pre-repair schedule", "error", err)
			break
		}

		repaired, ok := ExtractSchedule(repairText)
		if !ok {
			slog.Warn("Repair stage returned no schedule, keeping pre-repair schedule")
			break
		}

		extraction = repaired
		schedule = repaired.Schedule
	}

	// --- RE-ENFORCING ---
	// Гарантия неизменности прошлого держится даже если ремонт его переписал.
	schedule, _ = EnforceHistory(schedule, snap)
	result.Schedule = schedule
	result.Violations = Validate(schedule, snap, catalog, reqs)

	// Собираем ответ: текст без старого блока + канонический блок
	// итогового (уже зафиксированного) расписания.
	result.Reply = strings.TrimSpace(extraction.Remainder + "\n\n" + RenderScheduleBlock(schedule))
	return result, nil
}

// runChat - облегченный одиночный проход для разговорных запросов: только
// вызов легкой модели, без ревизии, валидации, ремонта и фиксации истории.
func (o *Orchestrator) runChat(ctx context.Context, messages []Message, snap *Snapshot) (*Result, error) {
	chatMessages := append([]Message{
		{Role: "system", Content: BuildAdvisorChatPrompt(snap)},
	}, messages...)

	text, err := o.Completer.Complete(ctx, o.ChatModel, chatMessages, auditTemperature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDraftFailed, err)
	}

	result := &Result{Reply: strings.TrimSpace(text)}
	if extraction, found := ExtractSchedule(text); found {
		result.Schedule = extraction.Schedule
	}
	return result, nil
}
