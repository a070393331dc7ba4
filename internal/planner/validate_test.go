// igp-generator/internal/planner/validate_test.go
package planner

import (
	"testing"

	"github.com/SinSayWu/igp-generator-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() CatalogIndex {
	return BuildCatalogIndex([]models.Course{
		{Name: "English 9", Credits: 1.0, Fulfills: []string{"english"}, Level: "CP"},
		{Name: "English 10", Credits: 1.0, Fulfills: []string{"english"}, Level: "CP"},
		{Name: "Algebra 1", Credits: 1.0, Fulfills: []string{"math"}, Level: "CP"},
		{Name: "Geometry", Credits: 1.0, Fulfills: []string{"math"}, Level: "CP"},
		{Name: "AP Biology", Credits: 1.0, Fulfills: []string{"science"}, Level: "AP"},
		{Name: "Art 1", Credits: 0.5, Fulfills: []string{"arts"}},
		{Name: "Band: Symphonic", Credits: 0.5, Fulfills: []string{"arts"}},
		{Name: "Chemistry", Credits: 1.0, Fulfills: []string{"science"}, Level: "CP"},
	})
}

func emptySnapshot() *Snapshot {
	return &Snapshot{
		History:       map[string][]string{},
		LockedCourses: map[string]bool{},
	}
}

func TestValidateCleanSchedule(t *testing.T) {
	draft := ScheduleDraft{
		"9": {"English 9", "Algebra 1", "Art 1/Band: Symphonic"},
	}
	violations := Validate(draft, emptySnapshot(), testCatalog(), nil)
	assert.Empty(t, violations)
}

func TestValidateUnknownCourse(t *testing.T) {
	draft := ScheduleDraft{"9": {"Underwater Basket Weaving"}}

	violations := Validate(draft, emptySnapshot(), testCatalog(), nil)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], `unknown course "Underwater Basket Weaving"`)
}

func TestValidateUnknownCoursePerOccurrence(t *testing.T) {
	// Одно и то же неизвестное имя в двух классах - два отдельных нарушения.
	draft := ScheduleDraft{
		"9":  {"Mystery Course"},
		"10": {"Mystery Course"},
	}

	violations := Validate(draft, emptySnapshot(), testCatalog(), nil)
	assert.Len(t, violations, 2)
}

func TestValidateEmptySlot(t *testing.T) {
	draft := ScheduleDraft{"9": {"  "}}

	violations := Validate(draft, emptySnapshot(), testCatalog(), nil)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "empty slot")
}

func TestValidateEmptyGradeLabelFromModelJSON(t *testing.T) {
	// Пустой ключ класса в JSON модели доходит до валидатора через
	// извлечение и энфорсер; весь путь обязан пережить его без паники.
	text := "```json\n{\"schedule_summary\": {\"\": [\"Geometry\"], \"10\": [\"English 10\"]}}\n```"
	extraction, ok := ExtractSchedule(text)
	require.True(t, ok)

	enforced, _ := EnforceHistory(extraction.Schedule, emptySnapshot())

	violations := Validate(enforced, emptySnapshot(), testCatalog(), nil)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "empty grade label")
}

func TestValidateTooManyCoursesInSlot(t *testing.T) {
	draft := ScheduleDraft{"9": {"Art 1/Band: Symphonic/Chemistry"}}

	violations := Validate(draft, emptySnapshot(), testCatalog(), nil)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "more than two courses")
}

func TestValidateBundleCredits(t *testing.T) {
	// Полный курс + полукредитный: 1.5 вместо 1.0.
	draft := ScheduleDraft{"9": {"Chemistry/Art 1"}}

	violations := Validate(draft, emptySnapshot(), testCatalog(), nil)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "must total 1.0 credit, got 1.5")
}

func TestValidateBundleSkippedWhenCourseUnknown(t *testing.T) {
	// Кредиты связки не проверить, если один из курсов неизвестен:
	// должно быть ровно одно нарушение - про неизвестный курс.
	draft := ScheduleDraft{"9": {"Art 1/Mystery Course"}}

	violations := Validate(draft, emptySnapshot(), testCatalog(), nil)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "unknown course")
}

func TestValidateLockedCourseReuse(t *testing.T) {
	snap := &Snapshot{
		History:       map[string][]string{"9": {"Algebra 1"}},
		LockedCourses: map[string]bool{"Algebra 1": true},
	}
	draft := ScheduleDraft{
		"9":  {"Algebra 1"},
		"10": {"Algebra 1"},
	}

	violations := Validate(draft, snap, testCatalog(), nil)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], `"Algebra 1" was already taken in grade 9`)
}

func TestValidateHistoryGradesSkipped(t *testing.T) {
	snap := &Snapshot{
		// История содержит курс вне каталога - валидатор не должен его трогать.
		History:       map[string][]string{"9": {"Legacy Course That Was Renamed"}},
		LockedCourses: map[string]bool{"Legacy Course That Was Renamed": true},
	}
	draft := ScheduleDraft{
		"9":  {"Legacy Course That Was Renamed"},
		"10": {"Geometry"},
	}

	violations := Validate(draft, snap, testCatalog(), nil)
	assert.Empty(t, violations)
}

func TestValidateGraduationRequirements(t *testing.T) {
	reqs := []models.GraduationRequirement{
		{Name: "English", Fulfills: []string{"english"}, MinCredits: 4.0},
		{Name: "Math", Fulfills: []string{"math"}, MinCredits: 2.0},
	}
	snap := &Snapshot{
		History:       map[string][]string{"9": {"English 9", "Algebra 1"}},
		LockedCourses: map[string]bool{"English 9": true, "Algebra 1": true},
	}
	draft := ScheduleDraft{
		"9":  {"English 9", "Algebra 1"},
		"10": {"English 10", "Geometry"},
	}

	violations := Validate(draft, snap, testCatalog(), reqs)
	// Математика закрыта (1.0 история + 1.0 план), английского не хватает 2.0.
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], `Requirement "English": missing 2.0 credits`)
}

func TestValidateRequirementHalfCreditShortfall(t *testing.T) {
	reqs := []models.GraduationRequirement{
		{Name: "Arts", Fulfills: []string{"arts"}, MinCredits: 1.0},
	}

	// Полкредита искусства при требовании 1.0 - не хватает ровно 0.5.
	draft := ScheduleDraft{"9": {"Art 1"}}
	violations := Validate(draft, emptySnapshot(), testCatalog(), reqs)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], `Requirement "Arts": missing 0.5 credits`)

	// Вторая половина кредита закрывает требование.
	draft["10"] = []string{"Band: Symphonic"}
	assert.Empty(t, Validate(draft, emptySnapshot(), testCatalog(), reqs))
}

func TestValidateRigorPreference(t *testing.T) {
	snap := emptySnapshot()
	snap.Difficulty = "CP/Honors"

	draft := ScheduleDraft{"9": {"English 9", "Chemistry"}}
	violations := Validate(draft, snap, testCatalog(), nil)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "no Honors or AP course")

	// Один AP-курс в плане снимает нарушение.
	draft["10"] = []string{"AP Biology"}
	assert.Empty(t, Validate(draft, snap, testCatalog(), nil))
}

func TestValidateRigorNotRequiredForCP(t *testing.T) {
	snap := emptySnapshot()
	snap.Difficulty = "CP"

	draft := ScheduleDraft{"9": {"English 9"}}
	assert.Empty(t, Validate(draft, snap, testCatalog(), nil))
}
