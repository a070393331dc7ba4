// igp-generator/internal/planner/validate.go
package planner

import (
	"fmt"
	"strings"

	"github.com/SinSayWu/igp-generator-sub000/models"
)

// Validate механически проверяет черновик против детерминированных правил и
// возвращает список нарушений. Пустой список - сигнал успеха для оркестратора;
// непустой целиком уходит в промпт ремонта, поэтому сообщения должны быть
// конкретными и по одному на каждый случай (без дедупликации).
//
// Исторические классы пропускаются: они уже приведены к истине энфорсером
// и повторной проверке не подлежат.
func Validate(draft ScheduleDraft, snap *Snapshot, catalog CatalogIndex, reqs []models.GraduationRequirement) []string {
	var violations []string

	for _, grade := range draft.Grades() {
		if snap.IsHistoryGrade(grade) {
			continue
		}
		if strings.TrimSpace(grade) == "" {
			violations = append(violations, "Schedule contains an empty grade label")
			continue
		}
		for _, slot := range draft[grade] {
			violations = append(violations, validateSlot(grade, slot, snap, catalog)...)
		}
	}

	violations = append(violations, validateRequirements(draft, snap, catalog, reqs)...)
	violations = append(violations, validateRigor(draft, snap, catalog)...)

	return violations
}

func validateSlot(grade, slot string, snap *Snapshot, catalog CatalogIndex) []string {
	if strings.TrimSpace(slot) == "" {
		return []string{fmt.Sprintf("Grade %s: empty slot", grade)}
	}

	parts := SplitSlot(slot)
	if len(parts) > 2 {
		return []string{fmt.Sprintf("Grade %s: slot %q contains more than two courses", grade, slot)}
	}

	var violations []string
	allKnown := true
	for _, name := range parts {
		if name == "" {
			violations = append(violations, fmt.Sprintf("Grade %s: empty course name in slot %q", grade, slot))
			allKnown = false
			continue
		}
		if _, ok := catalog[name]; !ok {
			violations = append(violations, fmt.Sprintf("Grade %s: unknown course %q", grade, name))
			allKnown = false
			continue
		}
		if historyGrade, ok := snap.HistoryGradeOf(name); ok && historyGrade != grade {
			violations = append(violations,
				fmt.Sprintf("Grade %s: %q was already taken in grade %s", grade, name, historyGrade))
		}
	}

	// Закон связки: два курса в слоте обязаны в сумме давать ровно 1.0 кредита.
	// Проверяем только когда оба курса известны, иначе кредиты не вычислить.
	if len(parts) == 2 && allKnown {
		total := catalog[parts[0]].Credits + catalog[parts[1]].Credits
		if total != 1.0 {
			violations = append(violations,
				fmt.Sprintf("Grade %s: bundle %q must total 1.0 credit, got %.1f", grade, slot, total))
		}
	}

	return violations
}

// validateRequirements суммирует кредиты по каждому выпускному требованию:
// зафиксированная история плюс планируемые классы черновика.
func validateRequirements(draft ScheduleDraft, snap *Snapshot, catalog CatalogIndex, reqs []models.GraduationRequirement) []string {
	var violations []string

	for _, req := range reqs {
		tags := make(map[string]bool, len(req.Fulfills))
		for _, t := range req.Fulfills {
			tags[t] = true
		}

		total := 0.0
		for _, names := range snap.History {
			for _, name := range names {
				total += creditsToward(name, tags, catalog)
			}
		}
		for _, grade := range draft.Grades() {
			if snap.IsHistoryGrade(grade) {
				continue
			}
			for _, slot := range draft[grade] {
				for _, name := range SplitSlot(slot) {
					total += creditsToward(name, tags, catalog)
				}
			}
		}

		if total < req.MinCredits {
			violations = append(violations,
				fmt.Sprintf("Requirement %q: missing %.1f credits", req.Name, req.MinCredits-total))
		}
	}

	return violations
}

func creditsToward(course string, tags map[string]bool, catalog CatalogIndex) float64 {
	entry, ok := catalog[course]
	if !ok {
		return 0
	}
	for _, tag := range entry.Fulfills {
		if tags[tag] {
			return entry.Credits
		}
	}
	return 0
}

// validateRigor: если студент заявил Honors или AP, хотя бы один планируемый
// курс должен соответствовать этому уровню.
func validateRigor(draft ScheduleDraft, snap *Snapshot, catalog CatalogIndex) []string {
	difficulty := strings.ToLower(snap.Difficulty)
	if !strings.Contains(difficulty, "honors") && !strings.Contains(difficulty, "ap") {
		return nil
	}

	for _, grade := range draft.Grades() {
		if snap.IsHistoryGrade(grade) {
			continue
		}
		for _, slot := range draft[grade] {
			for _, name := range SplitSlot(slot) {
				if isRigorousLevel(catalog[name].Level) {
					return nil
				}
			}
		}
	}

	return []string{fmt.Sprintf(
		"Difficulty preference %q not reflected: plan has no Honors or AP course", snap.Difficulty)}
}

func isRigorousLevel(level string) bool {
	lower := strings.ToLower(level)
	return strings.Contains(lower, "honors") || strings.Contains(level, "AP")
}
