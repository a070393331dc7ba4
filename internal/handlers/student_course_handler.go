// igp-generator/internal/handlers/student_course_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/SinSayWu/igp-generator-sub000/config"
	"github.com/SinSayWu/igp-generator-sub000/models"
	"github.com/SinSayWu/igp-generator-sub000/internal/planner"

	"github.com/gin-gonic/gin"
)

// currentStudent достает профиль студента текущего пользователя.
// При отсутствии профиля сам отвечает 404 и возвращает ok=false.
func currentStudent(c *gin.Context) (models.Student, bool) {
	userIDVal, _ := c.Get("user_id")
	userID, _ := userIDVal.(uint)

	var student models.Student
	if err := config.DB.Where("user_id = ?", userID).First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student profile not found"})
		return student, false
	}
	return student, true
}

// AddStudentCourseInput - данные добавления курса в запись студента.
type AddStudentCourseInput struct {
	CourseID        uint   `json:"courseId" binding:"required"`
	Status          string `json:"status" binding:"required"`
	GradeLevel      *int   `json:"gradeLevel"`
	Grade           string `json:"grade"`
	ConfidenceLevel string `json:"confidenceLevel"`
	StressLevel     string `json:"stressLevel"`
}

func isValidStatus(status string) bool {
	switch status {
	case models.StatusCompleted, models.StatusInProgress, models.StatusNextSemester, models.StatusPlanned:
		return true
	}
	return false
}

// AddStudentCourseHandler добавляет курс в историю или план студента.
func AddStudentCourseHandler(c *gin.Context) {
	student, ok := currentStudent(c)
	if !ok {
		return
	}

	var input AddStudentCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if !isValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course status"})
		return
	}

	var course models.Course
	if err := config.DB.First(&course, input.CourseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	// Один и тот же курс не может числиться у студента дважды.
	var count int64
	config.DB.Model(&models.StudentCourse{}).
		Where("student_id = ? AND course_id = ?", student.ID, course.ID).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Course already present in the student record"})
		return
	}

	record := models.StudentCourse{
		StudentID:       student.ID,
		CourseID:        course.ID,
		Status:          input.Status,
		GradeLevel:      input.GradeLevel,
		Grade:           input.Grade,
		ConfidenceLevel: input.ConfidenceLevel,
		StressLevel:     input.StressLevel,
	}
	if err := config.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not add course"})
		return
	}

	config.DB.Preload("Course").First(&record, record.ID)
	c.JSON(http.StatusCreated, record)
}

// UpdateStudentCourseInput - изменяемые поля записи (метрики и статус).
type UpdateStudentCourseInput struct {
	Status          *string `json:"status"`
	GradeLevel      *int    `json:"gradeLevel"`
	Grade           *string `json:"grade"`
	ConfidenceLevel *string `json:"confidenceLevel"`
	StressLevel     *string `json:"stressLevel"`
}

// UpdateStudentCourseHandler обновляет запись курса студента.
func UpdateStudentCourseHandler(c *gin.Context) {
	student, ok := currentStudent(c)
	if !ok {
		return
	}

	var record models.StudentCourse
	if err := config.DB.Where("student_id = ?", student.ID).First(&record, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course record not found"})
		return
	}

	var input UpdateStudentCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if input.Status != nil {
		if !isValidStatus(*input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course status"})
			return
		}
		record.Status = *input.Status
	}
	if input.GradeLevel != nil {
		record.GradeLevel = input.GradeLevel
	}
	if input.Grade != nil {
		record.Grade = *input.Grade
	}
	if input.ConfidenceLevel != nil {
		record.ConfidenceLevel = *input.ConfidenceLevel
	}
	if input.StressLevel != nil {
		record.StressLevel = *input.StressLevel
	}

	if err := config.DB.Save(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update course record"})
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteStudentCourseHandler удаляет одну запись курса студента.
func DeleteStudentCourseHandler(c *gin.Context) {
	student, ok := currentStudent(c)
	if !ok {
		return
	}

	// Жесткое удаление: мягко удаленная запись блокировала бы уникальную
	// пару student+course при повторном добавлении курса.
	result := config.DB.Unscoped().Where("student_id = ?", student.ID).
		Delete(&models.StudentCourse{}, c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete course record"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course record not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course record deleted"})
}

// ClearPlannedCoursesHandler удаляет весь PLANNED-набор студента.
func ClearPlannedCoursesHandler(c *gin.Context) {
	student, ok := currentStudent(c)
	if !ok {
		return
	}

	if err := config.DB.Unscoped().Where("student_id = ? AND status = ?", student.ID, models.StatusPlanned).
		Delete(&models.StudentCourse{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not clear planned courses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Planned courses cleared"})
}

// planEntry - один курс в текущем плане с метаданными для сетки расписания.
type planEntry struct {
	Name    string  `json:"name"`
	Status  string  `json:"status"`
	Credits float64 `json:"credits"`
	Level   string  `json:"level"`
}

// GetCurrentPlanHandler возвращает текущее расписание студента, сгруппированное
// по меткам классов (история + запланированное), для сетки плана.
func GetCurrentPlanHandler(c *gin.Context) {
	student, ok := currentStudent(c)
	if !ok {
		return
	}

	var rows []models.StudentCourse
	if err := config.DB.Preload("Course").
		Where("student_id = ?", student.ID).Order("id asc").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch course records"})
		return
	}

	plan := make(map[string][]planEntry)
	for _, row := range rows {
		if row.Course == nil {
			continue
		}
		grade := "Unassigned"
		if row.GradeLevel != nil {
			if *row.GradeLevel < 9 {
				grade = planner.GradeMS
			} else {
				grade = strconv.Itoa(*row.GradeLevel)
			}
		}
		plan[grade] = append(plan[grade], planEntry{
			Name:    row.Course.Name,
			Status:  row.Status,
			Credits: row.Course.Credits,
			Level:   row.Course.Level,
		})
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}
