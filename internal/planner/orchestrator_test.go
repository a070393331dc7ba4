// igp-generator/internal/planner/orchestrator_test.go
package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompleter отдает заранее заготовленные ответы по очереди и запоминает
// параметры каждого вызова.
type fakeCompleter struct {
	responses []string
	errs      []error

	calls        int
	models       []string
	temperatures []float32
	prompts      []string
}

func (f *fakeCompleter) Complete(_ context.Context, model string, messages []Message, temperature float32) (string, error) {
	i := f.calls
	f.calls++
	f.models = append(f.models, model)
	f.temperatures = append(f.temperatures, temperature)
	if len(messages) > 0 {
		f.prompts = append(f.prompts, messages[0].Content)
	} else {
		f.prompts = append(f.prompts, "")
	}

	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", nil
}

func scheduleText(preamble string, schedule string) string {
	return preamble + "\n```json\n{\"schedule_summary\": " + schedule + "}\n```"
}

func newTestOrchestrator(f *fakeCompleter) *Orchestrator {
	return &Orchestrator{Completer: f, PlannerModel: "planner-model", ChatModel: "chat-model"}
}

func TestDetectMode(t *testing.T) {
	// Типизированное поле имеет приоритет над маркерами.
	assert.Equal(t, ModeChat, DetectMode("chat", nil))
	assert.Equal(t, ModeUpdate, DetectMode("UPDATE", nil))
	assert.Equal(t, ModePlan, DetectMode("PLAN", []Message{{Content: "[CHAT MODE] hello"}}))

	// Легаси-маркеры в сообщениях.
	assert.Equal(t, ModeChat, DetectMode("", []Message{{Content: "[CHAT MODE] what should I take?"}}))
	assert.Equal(t, ModeUpdate, DetectMode("", []Message{{Content: "[SYSTEM INJECTION] re-plan"}}))

	// Маркер чата выигрывает у маркера обновления.
	assert.Equal(t, ModeChat, DetectMode("", []Message{
		{Content: "[SYSTEM INJECTION] x"},
		{Content: "[CHAT MODE] y"},
	}))

	// По умолчанию - полное планирование.
	assert.Equal(t, ModePlan, DetectMode("", []Message{{Content: "plan my classes"}}))
	assert.Equal(t, ModePlan, DetectMode("bogus", nil))
}

func TestRunNoCompleter(t *testing.T) {
	o := &Orchestrator{PlannerModel: "planner-model"}
	_, err := o.Run(context.Background(), ModePlan, nil, emptySnapshot(), testCatalog(), nil)
	assert.ErrorIs(t, err, ErrNoCompleter)
}

func TestRunDraftFailureIsFatal(t *testing.T) {
	f := &fakeCompleter{errs: []error{errors.New("model overloaded")}}
	o := newTestOrchestrator(f)

	_, err := o.Run(context.Background(), ModePlan, nil, emptySnapshot(), testCatalog(), nil)
	assert.ErrorIs(t, err, ErrDraftFailed)
	assert.Equal(t, 1, f.calls)
}

func TestRunHappyPath(t *testing.T) {
	draft := scheduleText("Draft here.", `{"9": ["English 9", "Algebra 1"]}`)
	audit := scheduleText("Polished plan.", `{"9": ["English 9", "Geometry"]}`)
	f := &fakeCompleter{responses: []string{draft, audit}}
	o := newTestOrchestrator(f)

	result, err := o.Run(context.Background(), ModePlan, []Message{{Role: "user", Content: "plan me"}},
		emptySnapshot(), testCatalog(), nil)
	require.NoError(t, err)

	// Валидных нарушений нет, ремонт не запускался: ровно два вызова.
	assert.Equal(t, 2, f.calls)
	assert.Equal(t, []string{"planner-model", "planner-model"}, f.models)
	assert.Equal(t, []float32{0.5, 0.3}, f.temperatures)

	// Итог построен из текста ревизии, а не черновика.
	assert.Equal(t, ScheduleDraft{"9": {"English 9", "Geometry"}}, result.Schedule)
	assert.Contains(t, result.Reply, "Polished plan.")
	assert.Contains(t, result.Reply, "schedule_summary")
	assert.Empty(t, result.Violations)

	assert.Equal(t, draft, result.DraftText)
	assert.Equal(t, audit, result.AuditText)
}

func TestRunAuditFailureFallsBackToDraft(t *testing.T) {
	draft := scheduleText("Draft.", `{"9": ["English 9"]}`)
	f := &fakeCompleter{
		responses: []string{draft, ""},
		errs:      []error{nil, errors.New("audit down")},
	}
	o := newTestOrchestrator(f)

	result, err := o.Run(context.Background(), ModePlan, nil, emptySnapshot(), testCatalog(), nil)
	require.NoError(t, err)

	assert.Equal(t, ScheduleDraft{"9": {"English 9"}}, result.Schedule)
	assert.Empty(t, result.AuditText)
}

func TestRunNoScheduleInOutputPassesTextThrough(t *testing.T) {
	f := &fakeCompleter{responses: []string{
		"I need to know your interests first.",
		"Indeed, tell me more about your goals.",
	}}
	o := newTestOrchestrator(f)

	result, err := o.Run(context.Background(), ModePlan, nil, emptySnapshot(), testCatalog(), nil)
	require.NoError(t, err)

	assert.Nil(t, result.Schedule)
	assert.Equal(t, "Indeed, tell me more about your goals.", result.Reply)
	assert.Empty(t, result.Violations)
}

func TestRunRepairAttemptedOnce(t *testing.T) {
	// Черновик и ревизия содержат неизвестный курс; ремонт тоже возвращает
	// невалидное расписание - второй попытки быть не должно.
	bad := scheduleText("Try this.", `{"9": ["Mystery Course"]}`)
	f := &fakeCompleter{responses: []string{bad, bad, bad}}
	o := newTestOrchestrator(f)

	result, err := o.Run(context.Background(), ModePlan, nil, emptySnapshot(), testCatalog(), nil)
	require.NoError(t, err)

	// draft + audit + ровно один ремонт.
	require.Equal(t, 3, f.calls)
	assert.Equal(t, float32(0.2), f.temperatures[2])
	assert.Contains(t, f.prompts[2], "Mystery Course")

	// Нарушение уходит в итог.
	require.NotEmpty(t, result.Violations)
	assert.Contains(t, result.Violations[0], "unknown course")
}

func TestRunRepairFixesSchedule(t *testing.T) {
	bad := scheduleText("Plan.", `{"9": ["Mystery Course"]}`)
	fixed := scheduleText("Fixed.", `{"9": ["English 9"]}`)
	f := &fakeCompleter{responses: []string{bad, bad, fixed}}
	o := newTestOrchestrator(f)

	result, err := o.Run(context.Background(), ModePlan, nil, emptySnapshot(), testCatalog(), nil)
	require.NoError(t, err)

	assert.Equal(t, ScheduleDraft{"9": {"English 9"}}, result.Schedule)
	assert.Empty(t, result.Violations)
	assert.Contains(t, result.Reply, "Fixed.")
}

func TestRunRepairFailureKeepsPreRepairSchedule(t *testing.T) {
	bad := scheduleText("Plan.", `{"9": ["Mystery Course"]}`)
	f := &fakeCompleter{
		responses: []string{bad, bad, ""},
		errs:      []error{nil, nil, errors.New("repair down")},
	}
	o := newTestOrchestrator(f)

	result, err := o.Run(context.Background(), ModePlan, nil, emptySnapshot(), testCatalog(), nil)
	require.NoError(t, err)

	assert.Equal(t, ScheduleDraft{"9": {"Mystery Course"}}, result.Schedule)
	assert.NotEmpty(t, result.Violations)
}

func TestRunReEnforcesHistoryAfterRepair(t *testing.T) {
	snap := &Snapshot{
		History:       map[string][]string{"9": {"Algebra 1"}},
		LockedCourses: map[string]bool{"Algebra 1": true},
	}
	// Ревизия предлагает неизвестный курс, ремонт "чинит" его, но заодно
	// переписывает историю 9 класса.
	bad := scheduleText("Plan.", `{"10": ["Mystery Course"]}`)
	rewrite := scheduleText("Fixed.", `{"9": ["Geometry"], "10": ["English 10"]}`)
	f := &fakeCompleter{responses: []string{bad, bad, rewrite}}
	o := newTestOrchestrator(f)

	result, err := o.Run(context.Background(), ModePlan, nil, snap, testCatalog(), nil)
	require.NoError(t, err)

	// История восстановлена дословно.
	assert.Equal(t, []string{"Algebra 1"}, result.Schedule["9"])
	assert.Equal(t, []string{"English 10"}, result.Schedule["10"])
}

func TestRunChatModeSinglePass(t *testing.T) {
	f := &fakeCompleter{responses: []string{"Sure! Band is a great elective."}}
	o := newTestOrchestrator(f)

	result, err := o.Run(context.Background(), ModeChat, []Message{{Role: "user", Content: "[CHAT MODE] thoughts on band?"}},
		emptySnapshot(), testCatalog(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, f.calls)
	assert.Equal(t, "chat-model", f.models[0])
	assert.Equal(t, "Sure! Band is a great elective.", result.Reply)
	assert.Nil(t, result.Schedule)
	assert.Empty(t, result.Violations)
}

func TestRunChatModeFailure(t *testing.T) {
	f := &fakeCompleter{errs: []error{errors.New("chat down")}}
	o := newTestOrchestrator(f)

	_, err := o.Run(context.Background(), ModeChat, nil, emptySnapshot(), testCatalog(), nil)
	assert.Error(t, err)
}
