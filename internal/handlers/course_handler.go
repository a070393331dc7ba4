// igp-generator/internal/handlers/course_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SinSayWu/igp-generator-sub000/config"
	"github.com/SinSayWu/igp-generator-sub000/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CourseInput используется при создании и обновлении курса каталога.
type CourseInput struct {
	Name            string   `json:"name" binding:"required"`
	Code            string   `json:"code"`
	Credits         float64  `json:"credits"`
	Level           string   `json:"level"`
	Fulfills        []string `json:"fulfills"`
	Prerequisite    *string  `json:"prerequisite"`
	AvailableGrades []int    `json:"availableGrades"`
}

// ListCoursesHandler возвращает каталог курсов: весь целиком (?all=true)
// или постранично, с поиском по имени и коду.
func ListCoursesHandler(c *gin.Context) {
	query := config.DB.Model(&models.Course{}).Order("name asc")

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", pattern, pattern)
	}

	var courses []models.Course
	if c.Query("all") == "true" {
		if err := query.Find(&courses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch courses"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": courses})
		return
	}

	var totalRows int64
	query.Count(&totalRows)
	if err := query.Scopes(Paginate(c)).Find(&courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch courses"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, courses, totalRows))
}

// GetCourseHandler возвращает один курс по ID.
func GetCourseHandler(c *gin.Context) {
	var course models.Course
	if err := config.DB.First(&course, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}
	c.JSON(http.StatusOK, course)
}

// CreateCourseHandler добавляет курс в каталог (только каунселор/админ).
func CreateCourseHandler(c *gin.Context) {
	var input CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	credits := input.Credits
	if credits == 0 {
		credits = 1.0
	}

	course := models.Course{
		Name:            input.Name,
		Code:            input.Code,
		Credits:         credits,
		Level:           input.Level,
		Fulfills:        input.Fulfills,
		Prerequisite:    input.Prerequisite,
		AvailableGrades: input.AvailableGrades,
	}
	if err := config.DB.Create(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Course with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create course"})
		return
	}
	c.JSON(http.StatusCreated, course)
}

// UpdateCourseHandler обновляет курс каталога.
func UpdateCourseHandler(c *gin.Context) {
	var course models.Course
	if err := config.DB.First(&course, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	var input CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	course.Name = input.Name
	course.Code = input.Code
	if input.Credits != 0 {
		course.Credits = input.Credits
	}
	course.Level = input.Level
	course.Fulfills = input.Fulfills
	course.Prerequisite = input.Prerequisite
	course.AvailableGrades = input.AvailableGrades

	if err := config.DB.Save(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update course"})
		return
	}
	c.JSON(http.StatusOK, course)
}

// DeleteCourseHandler удаляет курс из каталога.
func DeleteCourseHandler(c *gin.Context) {
	if err := config.DB.Delete(&models.Course{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete course"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course deleted"})
}

// ListGraduationRequirementsHandler возвращает таблицу выпускных требований.
func ListGraduationRequirementsHandler(c *gin.Context) {
	var reqs []models.GraduationRequirement
	if err := config.DB.Order("id asc").Find(&reqs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch graduation requirements"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reqs})
}
