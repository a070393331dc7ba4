// igp-generator/internal/planner/enforce_test.go
package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historySnapshot() *Snapshot {
	return &Snapshot{
		History: map[string][]string{
			"9": {"Algebra 1", "English 9"},
		},
		LockedCourses: map[string]bool{
			"Algebra 1": true,
			"English 9": true,
		},
	}
}

func TestEnforceHistoryOverwritesHistoryGrades(t *testing.T) {
	draft := ScheduleDraft{
		"9":  {"Biology", "World History"}, // модель переписала прошлое
		"10": {"Geometry"},
	}

	out, changed := EnforceHistory(draft, historySnapshot())
	require.True(t, changed)

	assert.Equal(t, []string{"Algebra 1", "English 9"}, out["9"])
	assert.Equal(t, []string{"Geometry"}, out["10"])
}

func TestEnforceHistoryStripsLockedFromFuture(t *testing.T) {
	draft := ScheduleDraft{
		"9":  {"Algebra 1", "English 9"},
		"10": {"Algebra 1", "Geometry"},                // повтор пройденного курса
		"11": {"English 9/Art 1", "Chemistry"},         // пройденный курс внутри связки
		"12": {"AP Literature"},
	}

	out, changed := EnforceHistory(draft, historySnapshot())
	require.True(t, changed)

	assert.Equal(t, []string{"Geometry"}, out["10"])
	assert.Equal(t, []string{"Chemistry"}, out["11"])
	assert.Equal(t, []string{"AP Literature"}, out["12"])
}

func TestEnforceHistoryIdempotent(t *testing.T) {
	draft := ScheduleDraft{
		"9":  {"Biology"},
		"10": {"Algebra 1", "Geometry"},
	}
	snap := historySnapshot()

	once, _ := EnforceHistory(draft, snap)
	twice, changed := EnforceHistory(once, snap)

	assert.False(t, changed)
	assert.Equal(t, once, twice)
}

func TestEnforceHistoryAddsMissingHistoryGrade(t *testing.T) {
	draft := ScheduleDraft{"10": {"Geometry"}}

	out, changed := EnforceHistory(draft, historySnapshot())
	require.True(t, changed)
	assert.Equal(t, []string{"Algebra 1", "English 9"}, out["9"])
}

func TestEnforceHistoryNilDraft(t *testing.T) {
	out, changed := EnforceHistory(nil, historySnapshot())
	assert.Nil(t, out)
	assert.False(t, changed)
}

func TestEnforceHistoryDoesNotMutateInput(t *testing.T) {
	draft := ScheduleDraft{
		"9":  {"Biology"},
		"10": {"Algebra 1"},
	}

	_, _ = EnforceHistory(draft, historySnapshot())

	assert.Equal(t, []string{"Biology"}, draft["9"])
	assert.Equal(t, []string{"Algebra 1"}, draft["10"])
}
