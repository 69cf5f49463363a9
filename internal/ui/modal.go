package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// formField is one labelled text input of a modal form.
type formField struct {
	label string
	input textinput.Model
}

func newFormField(label, placeholder, value string, limit int) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 36
	ti.SetValue(value)
	return formField{label: label, input: ti}
}

// form moves focus between fields and feeds keys to the focused one.
type form struct {
	fields []formField
	focus  int
	err    string
}

func newForm(fields ...formField) form {
	f := form{fields: fields}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].input.Value())
}

// update handles field navigation and typing. Confirm and cancel are left
// to the caller.
func (f *form) update(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	switch {
	case key.Matches(msg, keys.NextItem):
		f.move(1)
		return nil
	case key.Matches(msg, keys.PrevItem):
		f.move(-1)
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) move(delta int) {
	n := len(f.fields)
	f.fields[f.focus].input.Blur()
	f.focus = ((f.focus+delta)%n + n) % n
	f.fields[f.focus].input.Focus()
}

// render writes the fields, the last error and the button hint.
func (f *form) render(b *strings.Builder, styles Styles) {
	width := 0
	for _, field := range f.fields {
		width = max(width, len([]rune(field.label)))
	}
	for i, field := range f.fields {
		label := padRight(field.label+":", width+2)
		if i == f.focus {
			b.WriteString(styles.AccentText.Render(label))
		} else {
			b.WriteString(styles.MutedText.Render(label))
		}
		b.WriteString(field.input.View())
		b.WriteString("\n\n")
	}
	if f.err != "" {
		b.WriteString(styles.DangerText.Render(f.err))
		b.WriteString("\n\n")
	}
	b.WriteString(styles.FaintText.Render("Enter: Save  •  Tab: Next field  •  Esc: Cancel"))
}

// modalTitle writes a modal heading with its rule.
func modalTitle(b *strings.Builder, styles Styles, title string, ruleWidth int) {
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", ruleWidth)))
	b.WriteString("\n\n")
}

// confirmModal asks a yes/no question and runs onYes when accepted.
type confirmModal struct {
	title  string
	prompt string
	onYes  func() tea.Cmd
}

func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case keyMsg.String() == "y", key.Matches(keyMsg, keys.Confirm):
		return nil, c.onYes(), true
	case keyMsg.String() == "n", key.Matches(keyMsg, keys.Escape):
		return nil, nil, true
	}
	return c, nil, false
}

func (c *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	modalTitle(&b, styles, c.title, 36)
	b.WriteString(styles.Text.Render(c.prompt))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("y/Enter: Yes  •  n/Esc: No"))
	return renderModal(theme, b.String(), 48, width, height)
}
