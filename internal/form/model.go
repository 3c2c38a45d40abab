// Package form is the terminal data-entry form for production records. It
// validates input locally, submits through the API and keeps a disposable
// copy of the record list for display.
package form

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/ivancepe/Production-Trial/internal/client"
	"github.com/ivancepe/Production-Trial/internal/models"
	"github.com/ivancepe/Production-Trial/internal/rules"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

const (
	submitLabel     = "Submit Record"
	submittingLabel = "Submitting..."

	msgInvalidForm   = "Please fill out all required fields."
	msgSubmitted     = "Record submitted successfully!"
	msgSubmitFailed  = "Failed to submit record. Please try again."
	msgLoadFailed    = "Failed to load records."
	msgNoRecords     = "No production records found."
	msgLoadingRecord = "Loading records..."
)

// API is the part of the HTTP client the form needs.
type API interface {
	List() ([]models.ProductionLog, error)
	Create(req client.CreateRequest) (*models.ProductionLog, error)
}

type fieldSpec struct {
	key         string
	label       string
	placeholder string
	errMsg      string
	required    bool
	numeric     bool
}

var fieldSpecs = []fieldSpec{
	{key: "operatorName", label: "Operator Name", required: true, errMsg: "Operator name is required."},
	{key: "machineId", label: "Machine ID", required: true, errMsg: "Machine ID is required."},
	{key: "dieNumber", label: "Die Number"},
	{key: "shift", label: "Shift", placeholder: "Day / Night"},
	{key: "date", label: "Date", placeholder: "YYYY-MM-DD", required: true, errMsg: "Date is required."},
	{key: "startTime", label: "Start Time", placeholder: "HH:MM", required: true, errMsg: "Start time is required."},
	{key: "endTime", label: "End Time", placeholder: "HH:MM", required: true, errMsg: "End time is required."},
	{key: "quantityProduced", label: "Quantity Produced", placeholder: "0", required: true, numeric: true, errMsg: "Enter a quantity of 0 or more."},
	{key: "quantityRejected", label: "Quantity Rejected", placeholder: "0", required: true, numeric: true, errMsg: "Enter a quantity of 0 or more."},
	{key: "notes", label: "Notes"},
}

type field struct {
	spec    fieldSpec
	input   textinput.Model
	invalid bool
}

// Entry is the display shape of one record.
type Entry struct {
	OperatorName     string
	MachineID        string
	QuantityProduced int
	QuantityRejected int
	Date             string
}

type logsLoadedMsg struct {
	logs []models.ProductionLog
	err  error
}

type submittedMsg struct {
	err error
}

type Model struct {
	api    API
	log    logrus.FieldLogger
	styles Styles

	fields []field
	focus  int // len(fields) is the submit control

	// rebuilt on every successful fetch, never patched
	logs    []Entry
	loading bool
	loadErr bool

	submitting  bool
	submitLabel string

	note notification

	spinner spinner.Model
	table   table.Model
	width   int

	now   func() time.Time
	after func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
}

type Option func(*Model)

// WithClock replaces time.Now for the default date.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithTimer replaces tea.Tick for the notification timers.
func WithTimer(after func(time.Duration, func(time.Time) tea.Msg) tea.Cmd) Option {
	return func(m *Model) { m.after = after }
}

func New(api API, log logrus.FieldLogger, opts ...Option) Model {
	m := Model{
		api:         api,
		log:         log,
		styles:      DefaultStyles(),
		submitLabel: submitLabel,
		loading:     true,
		now:         time.Now,
		after:       tea.Tick,
	}
	for _, opt := range opts {
		opt(&m)
	}

	for _, spec := range fieldSpecs {
		ti := textinput.New()
		ti.Placeholder = spec.placeholder
		ti.Prompt = "│ "
		ti.CharLimit = 255
		ti.Width = 40
		m.fields = append(m.fields, field{spec: spec, input: ti})
	}
	m.fields[0].input.Focus()
	m.setDefaultDate()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m.spinner = sp

	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "Operator", Width: 20},
			{Title: "Machine", Width: 12},
			{Title: "Produced", Width: 10},
			{Title: "Rejected", Width: 10},
			{Title: "Date", Width: 12},
		}),
		table.WithHeight(10),
		table.WithWidth(70),
		table.WithFocused(false),
	)

	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.load())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case logsLoadedMsg:
		m.render(msg)
		return m, nil

	case submittedMsg:
		return m.handleSubmitted(msg)

	case notifyMsg:
		cmd := m.advanceNotification(msg)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.focus < len(m.fields) {
		m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "ctrl+s":
		return m.submit()
	case "ctrl+r":
		cmd := m.fetchAndRender()
		return m, cmd
	case "tab", "down":
		cmd := m.setFocus(m.focus + 1)
		return m, cmd
	case "shift+tab", "up":
		cmd := m.setFocus(m.focus - 1)
		return m, cmd
	case "enter":
		if m.focus == len(m.fields) {
			return m.submit()
		}
		cmd := m.setFocus(m.focus + 1)
		return m, cmd
	}

	if m.focus == len(m.fields) {
		return m, nil
	}

	f := &m.fields[m.focus]
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.spec.required && !rules.Invalid(f.input.Value(), f.spec.numeric) {
		f.invalid = false
	}
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.fields) + 1
	i = ((i % n) + n) % n

	if m.focus < len(m.fields) {
		m.fields[m.focus].input.Blur()
	}
	m.focus = i
	if i < len(m.fields) {
		return m.fields[i].input.Focus()
	}
	return nil
}

func (m *Model) setDefaultDate() {
	m.setValue("date", models.DateOf(m.now()).String())
}

// fetchAndRender shows the loading indicator, clears the table and requests
// the list.
func (m *Model) fetchAndRender() tea.Cmd {
	m.loading = true
	m.loadErr = false
	m.logs = nil
	m.table.SetRows(nil)
	return m.load()
}

func (m Model) load() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		logs, err := api.List()
		return logsLoadedMsg{logs: logs, err: err}
	}
}

func (m *Model) render(msg logsLoadedMsg) {
	m.loading = false

	if msg.err != nil {
		m.log.WithError(msg.err).Error("Failed to fetch production logs")
		m.loadErr = true
		m.logs = nil
		m.table.SetRows(nil)
		return
	}

	entries := make([]Entry, 0, len(msg.logs))
	rows := make([]table.Row, 0, len(msg.logs))
	for _, l := range msg.logs {
		e := Entry{
			OperatorName:     l.OperatorName,
			MachineID:        l.MachineID,
			QuantityProduced: l.QuantityProduced,
			QuantityRejected: l.QuantityRejected,
			Date:             l.Date.String(),
		}
		entries = append(entries, e)
		rows = append(rows, table.Row{
			e.OperatorName,
			e.MachineID,
			strconv.Itoa(e.QuantityProduced),
			strconv.Itoa(e.QuantityRejected),
			e.Date,
		})
	}
	m.logs = entries
	m.loadErr = false
	m.table.SetRows(rows)
}

// validate marks every invalid required field and reports whether the form
// can be submitted.
func (m *Model) validate() bool {
	ok := true
	for i := range m.fields {
		f := &m.fields[i]
		f.invalid = f.spec.required && rules.Invalid(f.input.Value(), f.spec.numeric)
		if f.invalid {
			ok = false
		}
	}
	return ok
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	if !m.validate() {
		cmd := m.notify(msgInvalidForm, false)
		return m, cmd
	}

	req := m.request()
	m.submitting = true
	m.submitLabel = submittingLabel

	api := m.api
	return m, func() tea.Msg {
		_, err := api.Create(req)
		return submittedMsg{err: err}
	}
}

func (m Model) request() client.CreateRequest {
	produced, _ := rules.ParseQuantity(m.value("quantityProduced"))
	rejected, _ := rules.ParseQuantity(m.value("quantityRejected"))
	return client.CreateRequest{
		OperatorName:     strings.TrimSpace(m.value("operatorName")),
		MachineID:        strings.TrimSpace(m.value("machineId")),
		DieNumber:        optional(m.value("dieNumber")),
		Shift:            optional(m.value("shift")),
		Date:             strings.TrimSpace(m.value("date")),
		StartTime:        strings.TrimSpace(m.value("startTime")),
		EndTime:          strings.TrimSpace(m.value("endTime")),
		QuantityProduced: produced,
		QuantityRejected: rejected,
		Notes:            optional(m.value("notes")),
	}
}

func (m Model) handleSubmitted(msg submittedMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	m.submitLabel = submitLabel

	if msg.err != nil {
		m.log.WithError(msg.err).Error("Submission Error")
		text := msgSubmitFailed
		var apiErr *client.APIError
		if errors.As(msg.err, &apiErr) && apiErr.Message != "" {
			text = apiErr.Message
		}
		cmd := m.notify(text, false)
		return m, cmd
	}

	notifyCmd := m.notify(msgSubmitted, true)
	fetchCmd := m.fetchAndRender()
	m.resetFields()
	m.setDefaultDate()
	return m, tea.Batch(notifyCmd, fetchCmd)
}

func (m *Model) resetFields() {
	for i := range m.fields {
		m.fields[i].input.Reset()
		m.fields[i].invalid = false
	}
}

func (m Model) value(key string) string {
	for _, f := range m.fields {
		if f.spec.key == key {
			return f.input.Value()
		}
	}
	return ""
}

func (m *Model) setValue(key, v string) {
	for i := range m.fields {
		if m.fields[i].spec.key == key {
			m.fields[i].input.SetValue(v)
			return
		}
	}
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
