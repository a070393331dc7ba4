// igp-generator/internal/handlers/recommendations_handler.go
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SinSayWu/igp-generator-sub000/config"
	"github.com/SinSayWu/igp-generator-sub000/internal/ai"
	"github.com/SinSayWu/igp-generator-sub000/internal/planner"
	"github.com/SinSayWu/igp-generator-sub000/models"

	"github.com/gin-gonic/gin"
)

// рекомендации - короткий одношаговый вызов модели, температура чуть выше
// планировочной, чтобы списки не выходили однообразными.
const recommendationTemperature = 0.7

// GetRecommendationsHandler просит чат-модель подобрать студенту
// внеклассные активности под его интересы и планы после школы.
func GetRecommendationsHandler(c *gin.Context) {
	userIDVal, _ := c.Get("user_id")
	userID, _ := userIDVal.(uint)

	if config.GeminiClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI recommendations are not configured"})
		return
	}

	snap, err := planner.LoadSnapshot(config.DB, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student profile not found"})
		return
	}

	var clubs []models.Club
	if err := config.DB.Where("student_id = ?", snap.StudentID).Find(&clubs).Error; err != nil {
		// Список кружков не критичен для рекомендаций: логируем и идем дальше.
		slog.Error("Не удалось загрузить кружки студента", "student_id", snap.StudentID, "error", err)
	}

	clubNames := make([]string, 0, len(clubs))
	for _, club := range clubs {
		clubNames = append(clubNames, club.Name)
	}

	prompt := fmt.Sprintf(
		"You are a high school counselor. Suggest 5 extracurricular activities or clubs for this student.\n"+
			"Interests: %s.\nCurrent clubs: %s.\n"+
			"For each suggestion give a name and one sentence explaining the fit. Respond as a numbered list.",
		strings.Join(snap.Interests, ", "), strings.Join(clubNames, ", "))

	completer := &ai.GeminiCompleter{Client: config.GeminiClient}
	reply, err := completer.Complete(c.Request.Context(), config.ChatModelName,
		[]planner.Message{{Role: "user", Content: prompt}}, recommendationTemperature)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not generate recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": reply})
}

// ClubInput - кружок, добавляемый в профиль студента.
type ClubInput struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
}

// AddClubHandler добавляет кружок в профиль студента.
func AddClubHandler(c *gin.Context) {
	student, ok := currentStudent(c)
	if !ok {
		return
	}

	var input ClubInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	club := models.Club{StudentID: student.ID, Name: input.Name, Category: input.Category}
	if err := config.DB.Create(&club).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not add club"})
		return
	}
	c.JSON(http.StatusCreated, club)
}

// DeleteClubHandler удаляет кружок из профиля студента.
func DeleteClubHandler(c *gin.Context) {
	student, ok := currentStudent(c)
	if !ok {
		return
	}

	result := config.DB.Where("student_id = ?", student.ID).
		Delete(&models.Club{}, c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete club"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Club not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Club deleted"})
}
