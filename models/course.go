// igp-generator/models/course.go
package models

import "gorm.io/gorm"

// Course представляет курс из школьного каталога.
// Name - уникальный ключ: генератор планов и сверка с БД ищут курсы по имени.
type Course struct {
	gorm.Model
	Name    string  `json:"name" gorm:"unique;not null"`
	Code    string  `json:"code"`
	Credits float64 `json:"credits" gorm:"default:1"`
	// Level - уровень сложности: "CP", "Honors", "AP", "Dual Enrollment" и т.д.
	Level string `json:"level"`
	// Fulfills - коды выпускных требований, которые закрывает курс (например ["ENG"]).
	Fulfills     []string `json:"fulfills" gorm:"serializer:json"`
	Prerequisite *string  `json:"prerequisite"`
	// AvailableGrades - классы, в которых курс доступен.
	AvailableGrades []int `json:"availableGrades" gorm:"serializer:json"`
}

// GraduationRequirement - требование для выпуска: минимум кредитов
// по курсам с указанными кодами.
type GraduationRequirement struct {
	gorm.Model
	Name       string   `json:"name" gorm:"unique;not null"`
	Fulfills   []string `json:"req" gorm:"serializer:json"`
	MinCredits float64  `json:"cr" gorm:"not null"`
}
