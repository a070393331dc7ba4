// igp-generator/internal/planner/schedule_test.go
package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleDraftClone(t *testing.T) {
	draft := ScheduleDraft{
		"9":  {"English 9", "Algebra 1"},
		"10": {"English 10"},
	}

	clone := draft.Clone()
	require.Equal(t, draft, clone)

	// Мутация копии не должна трогать оригинал.
	clone["9"][0] = "Biology"
	clone["11"] = []string{"English 11"}
	assert.Equal(t, "English 9", draft["9"][0])
	assert.NotContains(t, draft, "11")
}

func TestScheduleDraftCloneNil(t *testing.T) {
	var draft ScheduleDraft
	assert.Nil(t, draft.Clone())
}

func TestGradesOrder(t *testing.T) {
	draft := ScheduleDraft{
		"12": nil,
		"9":  nil,
		"MS": nil,
		"10": nil,
		"11": nil,
	}
	assert.Equal(t, []string{"MS", "9", "10", "11", "12"}, draft.Grades())
}

func TestGradesEmptyLabel(t *testing.T) {
	// Модель может отдать пустой ключ класса; сортировка не должна падать.
	draft := ScheduleDraft{
		"":   {"Geometry"},
		"10": nil,
		"MS": nil,
	}
	assert.Equal(t, []string{"MS", "10", ""}, draft.Grades())
}

func TestSplitSlot(t *testing.T) {
	assert.Equal(t, []string{"Art 1", "Band: Symphonic"}, SplitSlot("Art 1/Band: Symphonic"))
	assert.Equal(t, []string{"Art 1", "Band: Symphonic"}, SplitSlot("Art 1 / Band: Symphonic"))
	assert.Equal(t, []string{"English 9"}, SplitSlot("English 9"))
}
