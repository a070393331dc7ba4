// igp-generator/internal/handlers/college_plan_handler.go
package handlers

import (
	"net/http"

	"github.com/SinSayWu/igp-generator-sub000/config"
	"github.com/SinSayWu/igp-generator-sub000/models"

	"github.com/gin-gonic/gin"
)

// GetCollegePlanHandler возвращает план поступления студента: сохраненное
// резюме, целевые вузы и клубы.
func GetCollegePlanHandler(c *gin.Context) {
	student, ok := currentStudent(c)
	if !ok {
		return
	}

	var full models.Student
	if err := config.DB.Preload("TargetColleges").Preload("Clubs").
		First(&full, student.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load college plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":        full.CollegePlanSummary,
		"targetColleges": full.TargetColleges,
		"clubs":          full.Clubs,
	})
}

// CollegePlanInput - сохраняемое резюме плана поступления.
type CollegePlanInput struct {
	Summary string `json:"summary" binding:"required"`
}

// SaveCollegePlanHandler сохраняет резюме плана поступления студента.
func SaveCollegePlanHandler(c *gin.Context) {
	student, ok := currentStudent(c)
	if !ok {
		return
	}

	var input CollegePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := config.DB.Model(&models.Student{}).Where("id = ?", student.ID).
		Update("college_plan_summary", input.Summary).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save college plan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "College plan saved"})
}

// TargetCollegeInput - один целевой вуз студента.
type TargetCollegeInput struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
}

// AddTargetCollegeHandler добавляет целевой вуз в план студента.
func AddTargetCollegeHandler(c *gin.Context) {
	student, ok := currentStudent(c)
	if !ok {
		return
	}

	var input TargetCollegeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	college := models.TargetCollege{
		StudentID: student.ID,
		Name:      input.Name,
		Category:  input.Category,
	}
	if err := config.DB.Create(&college).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not add college"})
		return
	}
	c.JSON(http.StatusCreated, college)
}

// DeleteTargetCollegeHandler удаляет целевой вуз из плана студента.
func DeleteTargetCollegeHandler(c *gin.Context) {
	student, ok := currentStudent(c)
	if !ok {
		return
	}

	result := config.DB.Where("student_id = ?", student.ID).
		Delete(&models.TargetCollege{}, c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete college"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "College not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "College deleted"})
}
