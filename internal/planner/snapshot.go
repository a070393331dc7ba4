// igp-generator/internal/planner/snapshot.go
package planner

import (
	"errors"
	"strconv"

	"github.com/SinSayWu/igp-generator-sub000/models"
	"gorm.io/gorm"
)

// ErrStudentNotFound возвращается, когда у пользователя нет профиля студента.
var ErrStudentNotFound = errors.New("student profile not found")

// PlannedCourse - запланированный курс из текущего (старого) плана студента.
type PlannedCourse struct {
	Name       string
	GradeLevel *int
	Credits    float64
	Level      string
}

// Snapshot - read-only проекция академической истории и предпочтений студента.
// Собирается заново на каждый запрос; конвейер ее не мутирует.
type Snapshot struct {
	StudentID  uint
	FirstName  string
	GradeLevel int
	// Difficulty - заявленное предпочтение сложности ("CP", "CP/Honors", "AP").
	Difficulty string
	Interests  []string

	// CompletedCourses - имена всех курсов со статусами
	// COMPLETED / IN_PROGRESS / NEXT_SEMESTER.
	CompletedCourses []string
	// History - зафиксированная история по меткам классов. Курс из History
	// не может появиться в плане ни под какой другой меткой.
	History map[string][]string
	// PlannedCourses - текущий PLANNED-набор (в History не входит).
	PlannedCourses []PlannedCourse
	// LockedCourses - множество имен из CompletedCourses.
	LockedCourses map[string]bool
}

// IsHistoryGrade сообщает, зафиксирована ли метка класса историей.
func (s *Snapshot) IsHistoryGrade(grade string) bool {
	_, ok := s.History[grade]
	return ok
}

// HistoryGradeOf возвращает метку класса, в которой курс числится в истории.
func (s *Snapshot) HistoryGradeOf(course string) (string, bool) {
	for grade, names := range s.History {
		for _, name := range names {
			if name == course {
				return grade, true
			}
		}
	}
	return "", false
}

// effectiveGradeLabel вычисляет метку класса записи. Явный GradeLevel имеет
// приоритет; иначе пробуем легаси-значение из ConfidenceLevel ("middle" или
// номер класса строкой из старых анкет). Классы до 9-го схлопываются в "MS".
func effectiveGradeLabel(sc models.StudentCourse) string {
	if sc.GradeLevel != nil {
		if *sc.GradeLevel < 9 {
			return GradeMS
		}
		return strconv.Itoa(*sc.GradeLevel)
	}
	if sc.ConfidenceLevel == "middle" {
		return GradeMS
	}
	if n, err := strconv.Atoi(sc.ConfidenceLevel); err == nil {
		if n < 9 {
			return GradeMS
		}
		return strconv.Itoa(n)
	}
	return "Unassigned"
}

// BuildSnapshot собирает снапшот из профиля и записей курсов студента.
// Записи должны быть с предзагруженным Course. Каждая запись попадает либо
// в историю, либо в PLANNED-набор - двойного учета нет.
func BuildSnapshot(student models.Student, rows []models.StudentCourse) *Snapshot {
	snap := &Snapshot{
		StudentID:     student.ID,
		GradeLevel:    student.GradeLevel,
		Difficulty:    student.DesiredCourseRigor,
		Interests:     append([]string(nil), student.Interests...),
		History:       make(map[string][]string),
		LockedCourses: make(map[string]bool),
	}
	if student.User != nil {
		snap.FirstName = student.User.FirstName
	}

	for _, sc := range rows {
		if sc.Course == nil {
			continue
		}
		name := sc.Course.Name

		switch sc.Status {
		case models.StatusCompleted, models.StatusInProgress, models.StatusNextSemester:
			if snap.LockedCourses[name] {
				continue // курс уже учтен, не дублируем
			}
			snap.CompletedCourses = append(snap.CompletedCourses, name)
			snap.LockedCourses[name] = true
			grade := effectiveGradeLabel(sc)
			snap.History[grade] = append(snap.History[grade], name)

		case models.StatusPlanned:
			snap.PlannedCourses = append(snap.PlannedCourses, PlannedCourse{
				Name:       name,
				GradeLevel: sc.GradeLevel,
				Credits:    sc.Course.Credits,
				Level:      sc.Course.Level,
			})
		}
	}

	return snap
}

// LoadSnapshot находит профиль студента по ID пользователя и собирает снапшот.
func LoadSnapshot(db *gorm.DB, userID uint) (*Snapshot, error) {
	var student models.Student
	err := db.Preload("User").Where("user_id = ?", userID).First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}

	var rows []models.StudentCourse
	if err := db.Preload("Course").Where("student_id = ?", student.ID).Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	return BuildSnapshot(student, rows), nil
}
