// igp-generator/internal/planner/reconcile.go
package planner

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/SinSayWu/igp-generator-sub000/models"
	"gorm.io/gorm"
)

// ReconcileResult - итог сверки итогового расписания с БД.
type ReconcileResult struct {
	Created   int      `json:"created"`
	Unmatched []string `json:"unmatched"`
}

// ReconcilePlanned синхронизирует PLANNED-записи студента с итоговым
// расписанием. Дисциплина "удалить и создать заново": старый план целиком
// вытесняется новым, чтобы не оставались хвосты от предыдущих генераций.
//
// Имена курсов - свободный текст модели, поэтому сверка нестрогая:
// сначала точное имя, затем имя без регистра и пунктуации. Ненайденное имя -
// не ошибка запроса, а потерянная запись: логируем и пропускаем.
func ReconcilePlanned(db *gorm.DB, studentID uint, draft ScheduleDraft, snap *Snapshot) (ReconcileResult, error) {
	var result ReconcileResult
	if draft == nil {
		return result, nil
	}

	var courses []models.Course
	if err := db.Find(&courses).Error; err != nil {
		return result, err
	}
	byName := make(map[string]models.Course, len(courses))
	byNormalized := make(map[string]models.Course, len(courses))
	for _, course := range courses {
		byName[course.Name] = course
		byNormalized[NormalizeCourseName(course.Name)] = course
	}

	// Удаляем жестко: мягко удаленная запись заняла бы уникальную пару
	// student+course и не дала бы пересоздать тот же курс следующим прогоном.
	if err := db.Unscoped().Where("student_id = ? AND status = ?", studentID, models.StatusPlanned).
		Delete(&models.StudentCourse{}).Error; err != nil {
		return result, err
	}

	for _, grade := range draft.Grades() {
		// Исторические классы в БД уже лежат как COMPLETED/IN_PROGRESS;
		// их расписание не пересохраняем. "MS" и прочие нечисловые метки
		// планом вперед быть не могут.
		if snap.IsHistoryGrade(grade) {
			continue
		}
		gradeLevel, err := strconv.Atoi(grade)
		if err != nil {
			continue
		}

		for _, slot := range draft[grade] {
			for _, name := range SplitSlot(slot) {
				if name == "" {
					continue
				}
				course, ok := byName[name]
				if !ok {
					course, ok = byNormalized[NormalizeCourseName(name)]
				}
				if !ok {
					slog.Warn("Planned course not found in catalog, skipping", "course", name, "grade", grade)
					result.Unmatched = append(result.Unmatched, name)
					continue
				}

				// Страховка уникальности student+course: курс, который уже
				// есть у студента (в любом статусе), второй раз не заводим.
				var existing models.StudentCourse
				err := db.Where("student_id = ? AND course_id = ?", studentID, course.ID).
					First(&existing).Error
				if err == nil {
					continue
				}
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return result, err
				}

				gl := gradeLevel
				record := models.StudentCourse{
					StudentID:  studentID,
					CourseID:   course.ID,
					Status:     models.StatusPlanned,
					GradeLevel: &gl,
				}
				if err := db.Create(&record).Error; err != nil {
					return result, err
				}
				result.Created++
			}
		}
	}

	return result, nil
}

// NormalizeCourseName приводит имя к виду для нестрогой сверки:
// нижний регистр, только буквы и цифры.
func NormalizeCourseName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
