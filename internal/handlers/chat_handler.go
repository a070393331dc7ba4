// igp-generator/internal/handlers/chat_handler.go
package handlers

import (
	"net/http"

	"github.com/SinSayWu/igp-generator-sub000/config"
	"github.com/SinSayWu/igp-generator-sub000/models"

	"github.com/gin-gonic/gin"
)

// GetAdvisingMessagesHandler возвращает историю переписки студента с
// советником (новые сообщения первыми, с пагинацией).
func GetAdvisingMessagesHandler(c *gin.Context) {
	student, ok := currentStudent(c)
	if !ok {
		return
	}

	var chat models.AdvisingChat
	if err := config.DB.Where("student_id = ?", student.ID).First(&chat).Error; err != nil {
		// Чат создается лениво; до первого сообщения истории просто нет.
		c.JSON(http.StatusOK, []models.AdvisingMessage{})
		return
	}

	var messages []models.AdvisingMessage
	if err := config.DB.Where("chat_id = ?", chat.ID).
		Order("created_at DESC").
		Scopes(Paginate(c)).
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}
