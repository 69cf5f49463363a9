package ui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cocteler/cocteler/internal/catalog"
	"github.com/cocteler/cocteler/internal/onboarding"
	"github.com/cocteler/cocteler/internal/prefs"
)

const (
	rowLanguage = iota
	rowTheme
	rowSweet
	rowSour
	rowBitter
	rowSpicy
	rowBase
	rowOccasions // first occasion row; one per onboarding.KnownOccasions entry
)

// settingsState edits a draft of the user preferences. Language and theme
// apply immediately; the draft is saved on confirm.
type settingsState struct {
	cursor int
	draft  onboarding.UserPreferences
	dirty  bool
}

func settingsRows() int {
	return rowOccasions + len(onboarding.KnownOccasions)
}

// loadSettingsDraft copies the stored preferences into the editor.
func (m *Model) loadSettingsDraft() {
	if m.onboarding == nil {
		m.settings.draft = onboarding.DefaultPreferences()
	} else {
		m.settings.draft = m.onboarding.Preferences()
	}
	m.settings.dirty = false
}

func (m *Model) handleSettingsKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.adjustSetting(-1)
		return true, nil
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Toggle):
		m.adjustSetting(1)
		return true, nil
	case key.Matches(msg, m.keys.Confirm):
		if !m.settings.dirty || m.onboarding == nil {
			return true, nil
		}
		m.settings.dirty = false
		return true, savePreferencesCmd(m.ctx, m.onboarding, m.settings.draft)
	case key.Matches(msg, m.keys.Escape):
		m.loadSettingsDraft()
		return true, nil
	}
	cursor, moved := m.moveCursor(msg, m.settings.cursor, settingsRows())
	m.settings.cursor = cursor
	return moved, nil
}

// adjustSetting changes the row under the cursor by delta.
func (m *Model) adjustSetting(delta int) {
	d := &m.settings.draft
	taste := &d.TastePreferences
	switch row := m.settings.cursor; {
	case row == rowLanguage:
		m.switchLanguage(cycleString(catalog.Languages(), m.lang, delta))
		return
	case row == rowTheme:
		m.theme = GetTheme(cycleString(ThemeNames(), m.theme.Name, delta))
		if m.writer != nil {
			prefs.SaveTheme(m.writer, m.theme.Name)
		}
		m.updateLogViewport()
		return
	case row == rowSweet:
		taste.Sweet = min(max(taste.Sweet+delta, 0), 5)
	case row == rowSour:
		taste.Sour = min(max(taste.Sour+delta, 0), 5)
	case row == rowBitter:
		taste.Bitter = min(max(taste.Bitter+delta, 0), 5)
	case row == rowSpicy:
		taste.Spicy = min(max(taste.Spicy+delta, 0), 5)
	case row == rowBase:
		d.FavoriteBase = cycleString(onboarding.Bases, d.FavoriteBase, delta)
	case row >= rowOccasions:
		occ := onboarding.KnownOccasions[row-rowOccasions]
		if i := slices.Index(d.Occasions, occ); i >= 0 {
			d.Occasions = slices.Delete(slices.Clone(d.Occasions), i, i+1)
		} else {
			d.Occasions = append(slices.Clone(d.Occasions), occ)
		}
	}
	m.settings.dirty = true
}

// cycleString steps through values from current. An unknown current starts
// at the first value.
func cycleString(values []string, current string, delta int) string {
	if len(values) == 0 {
		return current
	}
	i := slices.IndexFunc(values, func(v string) bool { return strings.EqualFold(v, current) })
	if i < 0 {
		return values[0]
	}
	n := len(values)
	return values[((i+delta)%n+n)%n]
}

// savePreferencesCmd stores the draft. A first save also completes onboarding.
func savePreferencesCmd(ctx context.Context, svc *onboarding.Service, draft onboarding.UserPreferences) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, SaveTimeout)
		defer cancel()

		taste := draft.TastePreferences
		base := draft.FavoriteBase
		patch := onboarding.Patch{
			Taste:        &taste,
			FavoriteBase: &base,
			Occasions:    slices.Clone(draft.Occasions),
		}
		if patch.Occasions == nil {
			patch.Occasions = []string{}
		}

		var err error
		if svc.Completed() {
			err = svc.Update(ctx, patch)
		} else {
			err = svc.Complete(ctx, patch)
		}
		if err != nil {
			return statusMsg{text: "Saving preferences failed: " + err.Error(), isErr: true}
		}
		return statusMsg{text: "Preferences saved"}
	}
}

func (m Model) renderSettings() string {
	height := m.contentHeight()
	width := min(m.width, 72)
	bgColor := m.paneBg(true)
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	inner := width - 2
	d := m.settings.draft

	type row struct{ name, value string }
	rows := []row{
		{"Language", strings.ToUpper(m.lang)},
		{"Theme", m.theme.Name},
		{"Sweet", meter(d.TastePreferences.Sweet)},
		{"Sour", meter(d.TastePreferences.Sour)},
		{"Bitter", meter(d.TastePreferences.Bitter)},
		{"Spicy", meter(d.TastePreferences.Spicy)},
		{"Favorite base", orDash(d.FavoriteBase)},
	}
	for _, occ := range onboarding.KnownOccasions {
		mark := "[ ]"
		if slices.Contains(d.Occasions, occ) {
			mark = "[x]"
		}
		rows = append(rows, row{"Occasion", mark + " " + occ})
	}

	var lines []string
	status := "Not onboarded yet; saving completes onboarding."
	if m.onboarding != nil && m.onboarding.Completed() {
		who := m.onboarding.Preferences().Name
		if who == "" {
			who = "you"
		}
		status = fmt.Sprintf("Preferences for %s.", who)
	}
	if m.settings.dirty {
		status += " Unsaved changes; Enter saves, Esc reverts."
	}
	lines = append(lines, bg.Render(truncate(status, inner), styles.MutedText), "")

	start, end := visibleWindow(len(rows), m.settings.cursor, height-4)
	for i := start; i < end; i++ {
		r := rows[i]
		text := padRight(r.name, 16) + r.value
		if i == m.settings.cursor {
			lines = append(lines, styles.Selected.Width(inner).Render(text))
			continue
		}
		lines = append(lines, bg.FillLine(bg.Render(padRight(r.name, 16), styles.MutedText)+bg.Render(r.value, styles.Text), inner))
	}

	box := m.renderTitledBox(label(m.lang, "settings"), strings.Join(lines, "\n"), width, height, true)
	if m.width <= width {
		return box
	}
	info := m.renderTitledBox("cocteler", m.renderSettingsInfo(m.width-width-4), m.width-width, height, false)
	return joinPanes(box, info)
}

// renderSettingsInfo shows where state lives.
func (m Model) renderSettingsInfo(width int) string {
	styles := m.theme.Styles().WithBackground(m.paneBg(false))
	lines := []string{
		styles.MutedText.Render("Log file"),
		styles.Text.Render(truncate(orDash(m.logPath), width)),
		"",
		styles.MutedText.Render(fmt.Sprintf("%d favorites, %d collections", len(m.snapshot.Favorites), len(m.snapshot.Collections))),
	}
	return strings.Join(lines, "\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
