// igp-generator/internal/planner/prompts_test.go
package planner

import (
	"strings"
	"testing"

	"github.com/SinSayWu/igp-generator-sub000/models"

	"github.com/stretchr/testify/assert"
)

func promptSnapshot() *Snapshot {
	return &Snapshot{
		FirstName:        "Avery",
		GradeLevel:       10,
		Difficulty:       "CP/Honors",
		Interests:        []string{"robotics"},
		CompletedCourses: []string{"Algebra 1"},
		History:          map[string][]string{"9": {"Algebra 1"}},
		LockedCourses:    map[string]bool{"Algebra 1": true},
	}
}

func TestBuildDraftPrompt(t *testing.T) {
	reqs := []models.GraduationRequirement{{Name: "Math", Fulfills: []string{"math"}, MinCredits: 3}}

	prompt := BuildDraftPrompt(promptSnapshot(), testCatalog(), reqs)

	assert.Contains(t, prompt, "schedule_summary")
	assert.Contains(t, prompt, "COURSE CATALOG:")
	assert.Contains(t, prompt, "Algebra 1")
	assert.Contains(t, prompt, "GRADUATION REQUIREMENTS:")
	assert.Contains(t, prompt, "Math")
	assert.Contains(t, prompt, "CP/Honors")
}

func TestBuildDraftPromptCatalogIsDeterministic(t *testing.T) {
	catalog := testCatalog()
	first := BuildDraftPrompt(promptSnapshot(), catalog, nil)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildDraftPrompt(promptSnapshot(), catalog, nil))
	}
}

func TestBuildAuditPromptIncludesDraftOnly(t *testing.T) {
	prompt := BuildAuditPrompt("my draft text", promptSnapshot(), testCatalog(), nil)

	assert.Contains(t, prompt, "DRAFT:\nmy draft text")
	assert.Contains(t, prompt, "auditor")
}

func TestBuildRepairPromptListsViolations(t *testing.T) {
	violations := []string{
		`Grade 10: unknown course "Mystery"`,
		`Requirement "Math": missing 1.0 credits`,
	}

	prompt := BuildRepairPrompt(`{"9": []}`, violations, promptSnapshot(), testCatalog(), nil)

	assert.Contains(t, prompt, "VIOLATIONS:")
	for _, v := range violations {
		assert.Contains(t, prompt, "- "+v)
	}
	assert.Contains(t, prompt, `CURRENT SCHEDULE:`)
}

func TestBuildAdvisorChatPrompt(t *testing.T) {
	prompt := BuildAdvisorChatPrompt(promptSnapshot())
	assert.Contains(t, prompt, "Avery")
	assert.Contains(t, prompt, "grade 10")

	// Без имени обращаемся нейтрально.
	anon := promptSnapshot()
	anon.FirstName = ""
	assert.True(t, strings.Contains(BuildAdvisorChatPrompt(anon), "the student"))
}
