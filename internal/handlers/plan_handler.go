// igp-generator/internal/handlers/plan_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SinSayWu/igp-generator-sub000/config"
	"github.com/SinSayWu/igp-generator-sub000/internal/ai"
	"github.com/SinSayWu/igp-generator-sub000/internal/planner"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PlanChatInput - запрос генерации/обновления плана или режима консультации.
type PlanChatInput struct {
	// Mode - типизированный режим (PLAN/UPDATE/CHAT); пустая строка означает
	// автоопределение по легаси-маркерам в сообщениях.
	Mode     string            `json:"mode"`
	Messages []planner.Message `json:"messages" binding:"required,min=1"`
}

// planDebug - сырые выводы стадий, отдаются фронтенду для панели отладки.
type planDebug struct {
	DraftContent string `json:"draftContent"`
	AuditContent string `json:"auditContent"`
}

// PlanChatHandler - главная точка входа конвейера планирования: снимок
// студента -> черновик -> ревизия -> валидация -> ремонт -> сверка с базой.
func PlanChatHandler(c *gin.Context) {
	userIDVal, _ := c.Get("user_id")
	userID, _ := userIDVal.(uint)

	var input PlanChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	runID := uuid.NewString()
	log := slog.With("run_id", runID, "user_id", userID)

	snap, err := planner.LoadSnapshot(config.DB, userID)
	if err != nil {
		if errors.Is(err, planner.ErrStudentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student profile not found"})
			return
		}
		log.Error("Не удалось собрать снимок студента", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load student data"})
		return
	}

	catalog, err := planner.LoadCatalogIndex(config.DB)
	if err != nil {
		log.Error("Не удалось загрузить каталог курсов", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load course catalog"})
		return
	}
	reqs, err := planner.LoadGraduationRequirements(config.DB)
	if err != nil {
		log.Error("Не удалось загрузить требования к выпуску", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load graduation requirements"})
		return
	}

	orch := &planner.Orchestrator{
		PlannerModel: config.PlannerModelName,
		ChatModel:    config.ChatModelName,
	}
	if config.GeminiClient != nil {
		orch.Completer = &ai.GeminiCompleter{Client: config.GeminiClient}
	}

	mode := planner.DetectMode(input.Mode, input.Messages)
	log.Info("Запуск конвейера планирования", "mode", mode)

	result, err := orch.Run(c.Request.Context(), mode, input.Messages, snap, catalog, reqs)
	if err != nil {
		log.Error("Конвейер планирования завершился с ошибкой", "error", err)
		switch {
		case errors.Is(err, planner.ErrNoCompleter):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI planning is not configured"})
		case errors.Is(err, planner.ErrDraftFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": "The planning model returned no draft"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Plan generation failed"})
		}
		return
	}

	response := gin.H{
		"reply": result.Reply,
		"debug": planDebug{DraftContent: result.DraftText, AuditContent: result.AuditText},
	}

	// Сверку с базой делаем только когда конвейер реально вернул расписание;
	// ошибки сверки план не отменяют - ответ модели уже сформирован.
	if mode != planner.ModeChat && result.Schedule != nil {
		rec, recErr := planner.ReconcilePlanned(config.DB, snap.StudentID, result.Schedule, snap)
		if recErr != nil {
			log.Error("Сверка плана с базой не удалась", "error", recErr)
		} else {
			log.Info("План сверен с базой", "created", rec.Created, "unmatched", len(rec.Unmatched))
			response["unmatchedCourses"] = rec.Unmatched
		}
	}

	if result.Schedule != nil {
		response["schedule"] = result.Schedule
	}
	if len(result.Violations) > 0 {
		response["violations"] = result.Violations
	}

	c.JSON(http.StatusOK, response)
}
