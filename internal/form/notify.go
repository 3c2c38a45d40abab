package form

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	revealDelay  = 10 * time.Millisecond
	displayTime  = 3 * time.Second
	fadeDuration = 500 * time.Millisecond
)

type Phase int

const (
	PhaseHidden Phase = iota
	PhasePending
	PhaseShown
	PhaseFading
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseShown:
		return "shown"
	case PhaseFading:
		return "fading"
	default:
		return "hidden"
	}
}

type notification struct {
	message string
	success bool
	phase   Phase
	seq     int
}

// notifyMsg moves the notification with the given sequence number to phase.
type notifyMsg struct {
	seq   int
	phase Phase
}

// notify replaces any visible notification. Timers scheduled for the
// replaced one carry an old sequence number and are dropped on arrival.
func (m *Model) notify(message string, success bool) tea.Cmd {
	seq := m.note.seq + 1
	m.note = notification{message: message, success: success, phase: PhasePending, seq: seq}
	return m.schedule(revealDelay, seq, PhaseShown)
}

func (m *Model) advanceNotification(msg notifyMsg) tea.Cmd {
	if msg.seq != m.note.seq {
		return nil
	}
	m.note.phase = msg.phase

	switch msg.phase {
	case PhaseShown:
		return m.schedule(displayTime, msg.seq, PhaseFading)
	case PhaseFading:
		return m.schedule(fadeDuration, msg.seq, PhaseHidden)
	}
	return nil
}

func (m *Model) schedule(d time.Duration, seq int, next Phase) tea.Cmd {
	return m.after(d, func(time.Time) tea.Msg {
		return notifyMsg{seq: seq, phase: next}
	})
}
