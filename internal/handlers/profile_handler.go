// igp-generator/internal/handlers/profile_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SinSayWu/igp-generator-sub000/config"
	"github.com/SinSayWu/igp-generator-sub000/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// GetProfileHandler возвращает пользователя и профиль студента (если есть).
func GetProfileHandler(c *gin.Context) {
	userIDVal, _ := c.Get("user_id")
	userID, _ := userIDVal.(uint)

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	response := gin.H{
		"id":       user.ID,
		"login":    user.Login,
		"email":    user.Email,
		"fullName": user.FullName(),
		"role":     user.Role,
		"photoUrl": user.PhotoURL,
	}

	var student models.Student
	if err := config.DB.Preload("Clubs").Preload("TargetColleges").
		Where("user_id = ?", userID).First(&student).Error; err == nil {
		response["student"] = student
	}

	c.JSON(http.StatusOK, response)
}

// UpdateProfileInput - изменяемые поля профиля студента.
type UpdateProfileInput struct {
	Bio                *string  `json:"bio"`
	GradeLevel         *int     `json:"gradeLevel"`
	Age                *int     `json:"age"`
	Interests          []string `json:"interests"`
	SubjectInterests   []string `json:"subjectInterests"`
	PostHighSchoolPlan *string  `json:"postHighSchoolPlan"`
	CareerInterest     *string  `json:"careerInterest"`
	DesiredCourseRigor *string  `json:"desiredCourseRigor"`
	StudyHallsPerYear  *int     `json:"studyHallsPerYear"`

	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UpdateProfileHandler обновляет профиль текущего студента.
func UpdateProfileHandler(c *gin.Context) {
	userIDVal, _ := c.Get("user_id")
	userID, _ := userIDVal.(uint)

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Смена пароля требует подтверждения старым паролем.
	if input.NewPassword != "" {
		if input.OldPassword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Old password is required to change the password"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Old password is incorrect"})
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash new password"})
			return
		}
		user.Password = string(hashed)
		if err := config.DB.Save(&user).Error; err != nil {
			slog.Error("Failed to update password", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update password"})
			return
		}
	}

	var student models.Student
	if err := config.DB.Where("user_id = ?", userID).First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student profile not found"})
		return
	}

	if input.Bio != nil {
		student.Bio = *input.Bio
	}
	if input.GradeLevel != nil {
		student.GradeLevel = *input.GradeLevel
	}
	if input.Age != nil {
		student.Age = *input.Age
	}
	if input.Interests != nil {
		student.Interests = input.Interests
	}
	if input.SubjectInterests != nil {
		student.SubjectInterests = input.SubjectInterests
	}
	if input.PostHighSchoolPlan != nil {
		student.PostHighSchoolPlan = *input.PostHighSchoolPlan
	}
	if input.CareerInterest != nil {
		student.CareerInterest = *input.CareerInterest
	}
	if input.DesiredCourseRigor != nil {
		student.DesiredCourseRigor = *input.DesiredCourseRigor
	}
	if input.StudyHallsPerYear != nil {
		student.StudyHallsPerYear = *input.StudyHallsPerYear
	}

	if err := config.DB.Save(&student).Error; err != nil {
		slog.Error("Failed to update student profile", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update profile"})
		return
	}

	c.JSON(http.StatusOK, student)
}
