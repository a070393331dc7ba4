// igp-generator/models/student.go

package models

import "gorm.io/gorm"

// Student представляет профиль студента, заполняемый в онбординге.
// Именно из этих данных собирается снапшот для генератора учебного плана.
type Student struct {
	gorm.Model
	UserID uint  `json:"userId" gorm:"unique;not null"`
	User   *User `json:"user,omitempty" gorm:"foreignKey:UserID"`

	// --- BASIC INFO ---
	GradeLevel int    `json:"gradeLevel"` // Текущий класс (9-12)
	Age        int    `json:"age"`
	Bio        string `json:"bio"`

	// --- GOALS & PREFERENCES ---
	Interests          []string `json:"interests" gorm:"serializer:json"`
	SubjectInterests   []string `json:"subjectInterests" gorm:"serializer:json"`
	PostHighSchoolPlan string   `json:"postHighSchoolPlan"`
	CareerInterest     string   `json:"careerInterest"`
	// DesiredCourseRigor - заявленная сложность курсов, например "CP/Honors" или "AP".
	// Валидатор планов проверяет, что план отражает это предпочтение.
	DesiredCourseRigor string `json:"desiredCourseRigor"`
	StudyHallsPerYear  int    `json:"studyHallsPerYear"`
	CollegePlanSummary string `json:"collegePlanSummary"`

	// --- GORM RELATIONSHIPS ---
	StudentCourses []StudentCourse `json:"studentCourses,omitempty" gorm:"foreignKey:StudentID"`
	Clubs          []Club          `json:"clubs,omitempty" gorm:"foreignKey:StudentID"`
	TargetColleges []TargetCollege `json:"targetColleges,omitempty" gorm:"foreignKey:StudentID"`
}

// Club - кружок или секция, в которой состоит студент.
type Club struct {
	gorm.Model
	StudentID uint   `json:"studentId"`
	Name      string `json:"name" gorm:"not null"`
	Category  string `json:"category"`
}

// TargetCollege - колледж, в который студент планирует поступать.
// Category - классификация по шансам: "reach", "match" или "safety".
type TargetCollege struct {
	gorm.Model
	StudentID uint   `json:"studentId"`
	Name      string `json:"name" gorm:"not null"`
	Category  string `json:"category"`
}
