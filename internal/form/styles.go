package form

import "github.com/charmbracelet/lipgloss"

var (
	colorSuccess = lipgloss.Color("#22c55e")
	colorError   = lipgloss.Color("#ef4444")
	colorMuted   = lipgloss.Color("#6b7280")
	colorAccent  = lipgloss.Color("#2563eb")
)

type Styles struct {
	Title        lipgloss.Style
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	InvalidLabel lipgloss.Style
	ErrorText    lipgloss.Style
	Muted        lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
	ButtonBusy   lipgloss.Style
	BannerOK     lipgloss.Style
	BannerFail   lipgloss.Style
	Section      lipgloss.Style
}

func DefaultStyles() Styles {
	button := lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder())
	banner := lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(lipgloss.Color("#ffffff"))

	return Styles{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1),
		Label:        lipgloss.NewStyle().Width(20),
		FocusedLabel: lipgloss.NewStyle().Width(20).Bold(true).Foreground(colorAccent),
		InvalidLabel: lipgloss.NewStyle().Width(20).Foreground(colorError),
		ErrorText:    lipgloss.NewStyle().Foreground(colorError).PaddingLeft(20),
		Muted:        lipgloss.NewStyle().Foreground(colorMuted),
		Button:       button.BorderForeground(colorMuted),
		ButtonActive: button.BorderForeground(colorAccent).Bold(true),
		ButtonBusy:   button.BorderForeground(colorMuted).Foreground(colorMuted),
		BannerOK:     banner.Background(colorSuccess),
		BannerFail:   banner.Background(colorError),
		Section:      lipgloss.NewStyle().Bold(true).MarginTop(1),
	}
}
