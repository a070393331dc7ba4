// igp-generator/models/student_course.go
package models

import "gorm.io/gorm"

// Статусы курса в записи студента. COMPLETED, IN_PROGRESS и NEXT_SEMESTER
// считаются "зафиксированной историей": генератор планов не имеет права их менять.
// PLANNED-записи, наоборот, полностью пересоздаются при каждой успешной генерации.
const (
	StatusCompleted    = "COMPLETED"
	StatusInProgress   = "IN_PROGRESS"
	StatusNextSemester = "NEXT_SEMESTER"
	StatusPlanned      = "PLANNED"
)

// StudentCourse - связь студента с курсом каталога.
type StudentCourse struct {
	gorm.Model
	StudentID uint    `json:"studentId" gorm:"not null;uniqueIndex:idx_student_course"`
	CourseID  uint    `json:"courseId" gorm:"not null;uniqueIndex:idx_student_course"`
	Course    *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`

	Status string `json:"status" gorm:"type:varchar(20);not null;default:'PLANNED'"`
	// GradeLevel - класс, в котором курс пройден или запланирован (8 и меньше = средняя школа).
	GradeLevel *int `json:"gradeLevel"`
	// Grade - итоговая оценка ("92", "A-"), заполняется для завершенных курсов.
	Grade string `json:"grade"`
	// ConfidenceLevel хранит либо самооценку уверенности, либо легаси-значение
	// класса ("middle", "9".."12") из старых анкет - см. planner.BuildSnapshot.
	ConfidenceLevel string `json:"confidenceLevel"`
	StressLevel     string `json:"stressLevel"`
}
