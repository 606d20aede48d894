package output

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by commands.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style

	PassMark string
	FailMark string
}

// NewStyles returns colored styles for terminals and plain ones otherwise.
func NewStyles(isTTY bool) *Styles {
	if !isTTY {
		plain := lipgloss.NewStyle()
		return &Styles{
			Header1:  plain,
			Header2:  plain,
			Bold:     plain,
			Muted:    plain,
			Success:  plain,
			Error:    plain,
			Warning:  plain,
			PassMark: "ok",
			FailMark: "FAIL",
		}
	}

	return &Styles{
		Header1:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Underline(true),
		Header2:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Bold:     lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		PassMark: "✓",
		FailMark: "✗",
	}
}
