package form

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Production Log"))
	b.WriteString("\n")

	if banner := m.banner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n\n")
	}

	for i, f := range m.fields {
		label := m.styles.Label
		switch {
		case f.invalid:
			label = m.styles.InvalidLabel
		case i == m.focus:
			label = m.styles.FocusedLabel
		}
		text := f.spec.label
		if f.spec.required {
			text += " *"
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label.Render(text), f.input.View()))
		b.WriteString("\n")
		if f.invalid && f.spec.errMsg != "" {
			b.WriteString(m.styles.ErrorText.Render(f.spec.errMsg))
			b.WriteString("\n")
		}
	}

	button := m.styles.Button
	switch {
	case m.submitting:
		button = m.styles.ButtonBusy
	case m.focus == len(m.fields):
		button = m.styles.ButtonActive
	}
	b.WriteString(button.Render(m.submitLabel))
	b.WriteString("\n")

	b.WriteString(m.styles.Section.Render("Production Records"))
	b.WriteString("\n")
	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " " + msgLoadingRecord)
	case m.loadErr:
		b.WriteString(m.styles.ErrorText.UnsetPaddingLeft().Render(msgLoadFailed))
	case len(m.logs) == 0:
		b.WriteString(m.styles.Muted.Render(msgNoRecords))
	default:
		b.WriteString(m.table.View())
	}
	b.WriteString("\n\n")

	b.WriteString(m.styles.Muted.Render("tab/shift+tab move • enter next/submit • ctrl+s submit • ctrl+r refresh • esc quit"))
	return b.String()
}

func (m Model) banner() string {
	if m.note.phase != PhaseShown && m.note.phase != PhaseFading {
		return ""
	}
	style := m.styles.BannerFail
	if m.note.success {
		style = m.styles.BannerOK
	}
	if m.note.phase == PhaseFading {
		style = style.Faint(true)
	}
	return style.Render(m.note.message)
}
