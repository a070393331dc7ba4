// igp-generator/internal/planner/extract_test.go
package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSchedule(t *testing.T) {
	text := "Here is your plan!\n```json\n{\"schedule_summary\": {\"9\": [\"English 9\", \"Algebra 1\"]}}\n```\nLet me know what you think."

	extraction, ok := ExtractSchedule(text)
	require.True(t, ok)
	assert.Equal(t, ScheduleDraft{"9": {"English 9", "Algebra 1"}}, extraction.Schedule)
	assert.Contains(t, extraction.Remainder, "Here is your plan!")
	assert.Contains(t, extraction.Remainder, "Let me know what you think.")
	assert.NotContains(t, extraction.Remainder, "```json")
	assert.Contains(t, extraction.RawJSON, "schedule_summary")
}

func TestExtractScheduleLegacyKey(t *testing.T) {
	text := "```json\n{\"schedule\": {\"10\": [\"Geometry\"]}}\n```"

	extraction, ok := ExtractSchedule(text)
	require.True(t, ok)
	assert.Equal(t, ScheduleDraft{"10": {"Geometry"}}, extraction.Schedule)
}

func TestExtractScheduleNoBlock(t *testing.T) {
	extraction, ok := ExtractSchedule("Just a friendly chat, no schedule here.")
	assert.False(t, ok)
	assert.Equal(t, "Just a friendly chat, no schedule here.", extraction.Remainder)
	assert.Nil(t, extraction.Schedule)
}

func TestExtractScheduleMalformedJSON(t *testing.T) {
	text := "Oops\n```json\n{not valid json\n```"

	extraction, ok := ExtractSchedule(text)
	assert.False(t, ok)
	// При битом JSON текст возвращается целиком, с блоком.
	assert.Equal(t, text, extraction.Remainder)
}

func TestExtractScheduleUnknownKey(t *testing.T) {
	_, ok := ExtractSchedule("```json\n{\"something_else\": {}}\n```")
	assert.False(t, ok)
}

func TestRenderScheduleBlockRoundTrip(t *testing.T) {
	draft := ScheduleDraft{"11": {"Chemistry", "Art 1/Band: Symphonic"}}

	block := RenderScheduleBlock(draft)
	assert.Contains(t, block, "```json")
	assert.Contains(t, block, "schedule_summary")

	extraction, ok := ExtractSchedule(block)
	require.True(t, ok)
	assert.Equal(t, draft, extraction.Schedule)
}
