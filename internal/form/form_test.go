package form

import (
	"errors"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/ivancepe/Production-Trial/internal/client"
	"github.com/ivancepe/Production-Trial/internal/logging"
	"github.com/ivancepe/Production-Trial/internal/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu        sync.Mutex
	logs      []models.ProductionLog
	listErr   error
	createErr error
	listCalls int
	created   []client.CreateRequest
}

func (f *fakeAPI) List() ([]models.ProductionLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.ProductionLog(nil), f.logs...), nil
}

func (f *fakeAPI) Create(req client.CreateRequest) (*models.ProductionLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	if f.createErr != nil {
		return nil, f.createErr
	}
	date, _ := models.ParseDate(req.Date)
	log := models.ProductionLog{
		ID:               uint(len(f.logs) + 1),
		OperatorName:     req.OperatorName,
		MachineID:        req.MachineID,
		Date:             date,
		QuantityProduced: req.QuantityProduced,
		QuantityRejected: req.QuantityRejected,
	}
	f.logs = append([]models.ProductionLog{log}, f.logs...)
	return &log, nil
}

type timers struct {
	delays []time.Duration
}

func (tm *timers) after(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	tm.delays = append(tm.delays, d)
	return func() tea.Msg { return fn(time.Time{}) }
}

var today = time.Date(2024, time.May, 1, 10, 30, 0, 0, time.Local)

func newModel(api *fakeAPI) (Model, *timers) {
	tm := &timers{}
	m := New(api, logging.New("error", "json", io.Discard),
		WithClock(func() time.Time { return today }),
		WithTimer(tm.after),
	)
	return m, tm
}

// drain runs cmd and every follow-up command, feeding data messages back
// into the model. Notification timers are left unfired.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case logsLoadedMsg, submittedMsg:
			next, follow := m.Update(msg)
			m = next.(Model)
			queue = append(queue, follow)
		}
	}
	return m
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func fill(m *Model) {
	m.setValue("operatorName", "Jane")
	m.setValue("machineId", "M1")
	m.setValue("date", "2024-05-01")
	m.setValue("startTime", "08:00")
	m.setValue("endTime", "16:00")
	m.setValue("quantityProduced", "100")
	m.setValue("quantityRejected", "5")
}

func invalid(m Model, key string) bool {
	for _, f := range m.fields {
		if f.spec.key == key {
			return f.invalid
		}
	}
	return false
}

var ctrlS = tea.KeyMsg{Type: tea.KeyCtrlS}

func TestNewDefaultsDateToToday(t *testing.T) {
	m, _ := newModel(&fakeAPI{})
	assert.Equal(t, "2024-05-01", m.value("date"))
	assert.True(t, m.loading)
	assert.Equal(t, submitLabel, m.submitLabel)
}

func TestFetchAndRenderShowsRecords(t *testing.T) {
	api := &fakeAPI{logs: []models.ProductionLog{
		{ID: 2, OperatorName: "Jane", MachineID: "M1", Date: models.NewDate(2024, time.May, 1), QuantityProduced: 120, QuantityRejected: 3},
		{ID: 1, OperatorName: "Raj", MachineID: "M2", Date: models.NewDate(2024, time.April, 30), QuantityProduced: 80},
	}}
	m, _ := newModel(api)

	m = drain(t, m, m.load())
	assert.False(t, m.loading)
	require.Len(t, m.logs, 2)
	assert.Equal(t, Entry{OperatorName: "Jane", MachineID: "M1", QuantityProduced: 120, QuantityRejected: 3, Date: "2024-05-01"}, m.logs[0])

	view := m.View()
	assert.Contains(t, view, "Jane")
	assert.Contains(t, view, "Raj")
	assert.NotContains(t, view, msgLoadingRecord)
}

func TestFetchAndRenderRebuildsFromScratch(t *testing.T) {
	api := &fakeAPI{logs: []models.ProductionLog{{ID: 1, OperatorName: "Jane", MachineID: "M1"}}}
	m, _ := newModel(api)
	m = drain(t, m, m.load())
	require.Len(t, m.logs, 1)

	api.logs = nil
	cmd := m.fetchAndRender()
	assert.True(t, m.loading)
	assert.Empty(t, m.logs)

	m = drain(t, m, cmd)
	assert.Empty(t, m.logs)
	assert.Contains(t, m.View(), msgNoRecords)
}

func TestFetchFailureShowsErrorState(t *testing.T) {
	m, _ := newModel(&fakeAPI{listErr: &client.NetworkError{Err: errors.New("connection refused")}})

	m = drain(t, m, m.load())
	assert.False(t, m.loading)
	assert.True(t, m.loadErr)
	assert.Contains(t, m.View(), msgLoadFailed)
}

func TestSubmitBlankRequiredFieldMakesNoRequest(t *testing.T) {
	api := &fakeAPI{}
	m, _ := newModel(api)
	fill(&m)
	m.setValue("operatorName", "   ")

	m, cmd := press(m, ctrlS)
	m = drain(t, m, cmd)

	assert.Empty(t, api.created)
	assert.True(t, invalid(m, "operatorName"))
	assert.False(t, invalid(m, "machineId"))
	assert.False(t, m.submitting)
	assert.Equal(t, msgInvalidForm, m.note.message)
	assert.False(t, m.note.success)
	assert.Contains(t, m.View(), "Operator name is required.")
}

func TestSubmitNegativeQuantityIsInvalid(t *testing.T) {
	api := &fakeAPI{}
	m, _ := newModel(api)
	fill(&m)
	m.setValue("quantityProduced", "-1")
	m.setValue("quantityRejected", "2.5")

	m, cmd := press(m, ctrlS)
	drain(t, m, cmd)

	assert.Empty(t, api.created)
	assert.True(t, invalid(m, "quantityProduced"))
	assert.True(t, invalid(m, "quantityRejected"))
}

func TestSubmitSuccess(t *testing.T) {
	api := &fakeAPI{}
	m, _ := newModel(api)
	m = drain(t, m, m.load())
	fill(&m)
	m.setValue("dieNumber", "D-12")

	m, cmd := press(m, ctrlS)
	assert.True(t, m.submitting)
	assert.Equal(t, submittingLabel, m.submitLabel)

	m = drain(t, m, cmd)
	require.Len(t, api.created, 1)
	req := api.created[0]
	assert.Equal(t, "Jane", req.OperatorName)
	assert.Equal(t, 100, req.QuantityProduced)
	assert.Equal(t, 5, req.QuantityRejected)
	require.NotNil(t, req.DieNumber)
	assert.Equal(t, "D-12", *req.DieNumber)
	assert.Nil(t, req.Shift)
	assert.Nil(t, req.Notes)

	assert.False(t, m.submitting)
	assert.Equal(t, submitLabel, m.submitLabel)
	assert.Equal(t, msgSubmitted, m.note.message)
	assert.True(t, m.note.success)

	assert.Empty(t, m.value("operatorName"))
	assert.Empty(t, m.value("dieNumber"))
	assert.Equal(t, "2024-05-01", m.value("date"))

	assert.Equal(t, 2, api.listCalls)
	require.Len(t, m.logs, 1)
	assert.Equal(t, "Jane", m.logs[0].OperatorName)
}

func TestSubmitFailureShowsServerMessage(t *testing.T) {
	api := &fakeAPI{createErr: &client.APIError{Status: http.StatusBadRequest, Message: "Missing required fields."}}
	m, _ := newModel(api)
	fill(&m)

	m, cmd := press(m, ctrlS)
	m = drain(t, m, cmd)

	assert.Equal(t, "Missing required fields.", m.note.message)
	assert.False(t, m.note.success)
	assert.False(t, m.submitting)
	assert.Equal(t, submitLabel, m.submitLabel)
	assert.Equal(t, "Jane", m.value("operatorName"))
	assert.Zero(t, api.listCalls)
}

func TestSubmitFailureWithoutMessageIsGeneric(t *testing.T) {
	for name, err := range map[string]error{
		"network": &client.NetworkError{Err: errors.New("connection refused")},
		"status":  &client.APIError{Status: http.StatusBadGateway},
	} {
		t.Run(name, func(t *testing.T) {
			m, _ := newModel(&fakeAPI{createErr: err})
			fill(&m)

			m, cmd := press(m, ctrlS)
			m = drain(t, m, cmd)
			assert.Equal(t, msgSubmitFailed, m.note.message)
			assert.Equal(t, submitLabel, m.submitLabel)
		})
	}
}

func TestSubmitIgnoredWhileInFlight(t *testing.T) {
	api := &fakeAPI{}
	m, _ := newModel(api)
	fill(&m)

	m, first := press(m, ctrlS)
	require.NotNil(t, first)
	m, second := press(m, ctrlS)
	assert.Nil(t, second)

	drain(t, m, first)
	assert.Len(t, api.created, 1)
}

func TestTypingClearsFieldError(t *testing.T) {
	m, _ := newModel(&fakeAPI{})
	m, cmd := press(m, ctrlS)
	m = drain(t, m, cmd)
	require.True(t, invalid(m, "operatorName"))
	require.True(t, invalid(m, "machineId"))

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("J")})
	assert.Equal(t, "J", m.value("operatorName"))
	assert.False(t, invalid(m, "operatorName"))
	assert.True(t, invalid(m, "machineId"))
}

func TestEnterOnSubmitControlSubmits(t *testing.T) {
	api := &fakeAPI{}
	m, _ := newModel(api)
	fill(&m)
	m.focus = len(m.fields)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.submitting)
	drain(t, m, cmd)
	assert.Len(t, api.created, 1)
}

func TestNotificationLifecycle(t *testing.T) {
	m, tm := newModel(&fakeAPI{})
	cmd := m.notify("Record submitted successfully!", true)
	assert.Equal(t, PhasePending, m.note.phase)
	assert.NotContains(t, m.View(), "Record submitted successfully!")

	for _, want := range []Phase{PhaseShown, PhaseFading, PhaseHidden} {
		msg := cmd().(notifyMsg)
		assert.Equal(t, want, msg.phase)
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
		assert.Equal(t, want, m.note.phase)
		if want != PhaseHidden {
			assert.Contains(t, m.View(), "Record submitted successfully!")
		}
	}
	assert.Nil(t, cmd)
	assert.NotContains(t, m.View(), "Record submitted successfully!")
	assert.Equal(t, []time.Duration{revealDelay, displayTime, fadeDuration}, tm.delays)
}

func TestReplacedNotificationIgnoresOldTimers(t *testing.T) {
	m, _ := newModel(&fakeAPI{})
	first := m.notify("first", false)
	second := m.notify("second", true)

	next, cmd := m.Update(first())
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, PhasePending, m.note.phase)

	next, cmd = m.Update(second())
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, PhaseShown, m.note.phase)
	assert.Equal(t, "second", m.note.message)
}

func TestFocusWraps(t *testing.T) {
	m, _ := newModel(&fakeAPI{})
	m.setFocus(-1)
	assert.Equal(t, len(m.fields), m.focus)
	m.setFocus(m.focus + 1)
	assert.Equal(t, 0, m.focus)
}
