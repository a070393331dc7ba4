// igp-generator/internal/planner/prompts.go
package planner

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/SinSayWu/igp-generator-sub000/models"
)

// planningRules - общий свод правил для всех трех промптов (черновик, ревизия,
// ремонт). Держим его в одном месте, чтобы ревизор и ремонтник проверяли
// ровно то, что требовали от автора черновика.
const planningRules = `Rules for the multi-year schedule:
1. Output the final schedule as a single JSON object inside a markdown block:
   ` + "```json" + `
   { "schedule_summary": { "<grade>": ["<course>" or "<course>/<course>", ...], ... } }
   ` + "```" + `
2. Use ONLY exact course names from the course catalog. Do not abbreviate,
   rename or invent courses.
3. A slot is either one full-credit course, or exactly two half-credit
   courses joined by "/" (their credits must total exactly 1.0). Never put
   more than two courses in one slot.
4. Grades the student has already completed are immutable history. Repeat
   them verbatim and never move a completed course to another grade.
5. A course that appears in the student's history must not be scheduled
   again in any future grade.
6. The combined history and plan must satisfy every graduation requirement's
   minimum credits.
7. If the student's difficulty preference includes Honors or AP, plan at
   least one course at that level.
8. Before the JSON block, briefly explain your reasoning in plain text.`

// BuildDraftPrompt собирает системный промпт для стадии черновика:
// правила + каталог + требования + профиль студента.
func BuildDraftPrompt(snap *Snapshot, catalog CatalogIndex, reqs []models.GraduationRequirement) string {
	return fmt.Sprintf(`You are an experienced high-school guidance counselor. Build a multi-year
course schedule for the student described below, from their current grade
through grade 12.

%s

COURSE CATALOG:
%s

GRADUATION REQUIREMENTS:
%s

STUDENT:
%s`, planningRules, marshalCatalog(catalog), marshalRequirements(reqs), marshalSnapshot(snap))
}

// BuildAuditPrompt собирает промпт независимой ревизии. Нарочно не включает
// историю диалога: ревизор видит только правила, данные и сам черновик,
// чтобы не "прилипать" к рассуждениям автора.
func BuildAuditPrompt(draft string, snap *Snapshot, catalog CatalogIndex, reqs []models.GraduationRequirement) string {
	return fmt.Sprintf(`You are a strict schedule auditor. Below are the scheduling rules, the
course catalog, the graduation requirements, the student profile, and a
DRAFT schedule produced by another counselor. Verify the draft against every
rule. If it is correct, repeat it. If not, output a corrected version.
Always finish with the full schedule JSON block.

%s

COURSE CATALOG:
%s

GRADUATION REQUIREMENTS:
%s

STUDENT:
%s

DRAFT:
%s`, planningRules, marshalCatalog(catalog), marshalRequirements(reqs), marshalSnapshot(snap), draft)
}

// BuildRepairPrompt собирает промпт ремонта: правила, прежний JSON и
// конкретный список нарушений от валидатора.
func BuildRepairPrompt(scheduleJSON string, violations []string, snap *Snapshot, catalog CatalogIndex, reqs []models.GraduationRequirement) string {
	var list strings.Builder
	for _, v := range violations {
		list.WriteString("- ")
		list.WriteString(v)
		list.WriteString("\n")
	}

	return fmt.Sprintf(`The following schedule violates the scheduling rules. Fix EVERY listed
violation and output the corrected schedule. Change as little as possible.
Always finish with the full schedule JSON block.

%s

COURSE CATALOG:
%s

GRADUATION REQUIREMENTS:
%s

STUDENT:
%s

CURRENT SCHEDULE:
%s

VIOLATIONS:
%s`, planningRules, marshalCatalog(catalog), marshalRequirements(reqs), marshalSnapshot(snap), scheduleJSON, list.String())
}

// BuildAdvisorChatPrompt - системный промпт ИИ-советника для обычного чата
// (websocket-чат и режим [CHAT MODE]).
func BuildAdvisorChatPrompt(snap *Snapshot) string {
	name := snap.FirstName
	if name == "" {
		name = "the student"
	}
	return fmt.Sprintf(`You are a friendly high-school guidance counselor assistant. You are talking
to %s (grade %d). Answer briefly and concretely, do not invent facts about
the school. If the student asks to change their schedule, output the full
updated schedule JSON block after your answer.

STUDENT PROFILE:
%s`, name, snap.GradeLevel, marshalSnapshot(snap))
}

func marshalCatalog(catalog CatalogIndex) string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]CatalogEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, catalog[name])
	}
	data, _ := json.Marshal(entries)
	return string(data)
}

func marshalRequirements(reqs []models.GraduationRequirement) string {
	type reqJSON struct {
		Name       string   `json:"name"`
		Fulfills   []string `json:"req"`
		MinCredits float64  `json:"cr"`
	}
	out := make([]reqJSON, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, reqJSON{Name: r.Name, Fulfills: r.Fulfills, MinCredits: r.MinCredits})
	}
	data, _ := json.Marshal(out)
	return string(data)
}

func marshalSnapshot(snap *Snapshot) string {
	type snapJSON struct {
		Grade      int                 `json:"grade"`
		Difficulty string              `json:"difficulty"`
		Interests  []string            `json:"interests"`
		Completed  []string            `json:"completed_courses"`
		History    map[string][]string `json:"history"`
		Planned    []PlannedCourse     `json:"planned_courses"`
	}
	data, _ := json.Marshal(snapJSON{
		Grade:      snap.GradeLevel,
		Difficulty: snap.Difficulty,
		Interests:  snap.Interests,
		Completed:  snap.CompletedCourses,
		History:    snap.History,
		Planned:    snap.PlannedCourses,
	})
	return string(data)
}
