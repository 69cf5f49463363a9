package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the detail pane is hidden.
	LayoutCompactWidth = 100

	// LayoutExtraWideWidth is the threshold for extra-wide layouts.
	LayoutExtraWideWidth = 160
)

// Log display limits.
const (
	// LogTailLines is how many trailing log lines the logs view reads.
	LogTailLines = 2000
)

// Timing constants.
const (
	// DefaultUIInterval is the refresh tick for snapshots and log tailing.
	DefaultUIInterval = time.Second

	// StatusFlashDuration is how long a status message stays in the header.
	StatusFlashDuration = 4 * time.Second

	// SaveTimeout bounds awaited preference writes.
	SaveTimeout = 3 * time.Second
)

// chromeHeight is the header plus command bar.
const chromeHeight = 2

// contentHeight is the height left for the active view.
func (m Model) contentHeight() int {
	return max(m.height-chromeHeight, 3)
}

// splitWidths divides the content area into a list pane and a detail pane.
// The detail pane is dropped on narrow terminals.
func (m Model) splitWidths() (list, detail int) {
	switch {
	case m.width < LayoutCompactWidth:
		return m.width, 0
	case m.width >= LayoutExtraWideWidth:
		list = m.width * 35 / 100
	default:
		list = m.width * 45 / 100
	}
	return list, m.width - list
}

// renderTitledBox renders content in a box with the title embedded in the top border:
// ┌─── Title ───┐
// Focused boxes use BorderFocus and FocusBg.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 1)
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	lines := make([]string, 0, boxHeight+2)
	lines = append(lines, topBorder)
	for i := range boxHeight {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}
	lines = append(lines, bottomBorder)
	return strings.Join(lines, "\n")
}

// paneBg returns the background color a pane uses.
func (m Model) paneBg(focused bool) string {
	if focused {
		return m.theme.FocusBg
	}
	return m.theme.SurfaceAlt
}

// placeCenter centers a message in the content area.
func (m Model) placeCenter(msg string) string {
	return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, msg,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}

// renderModal wraps modal content in the shared frame and centers it.
func renderModal(theme Theme, content string, modalWidth, width, height int) string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(modalWidth)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

// visibleWindow returns the [start, end) slice of n rows that keeps cursor
// on screen within height rows.
func visibleWindow(n, cursor, height int) (start, end int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start = max(cursor-height/2, 0)
	end = start + height
	if end > n {
		end = n
		start = n - height
	}
	return start, end
}

// joinPanes places panes side by side.
func joinPanes(panes ...string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, panes...)
}
