package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cocteler/cocteler/internal/community"
)

type feedState struct {
	filter community.Filter
	cursor int
}

func (m Model) feedRecipes() []community.Recipe {
	if m.board == nil {
		return nil
	}
	return m.board.List(m.feed.filter)
}

func (m *Model) handleCommunityKey(msg tea.KeyMsg) bool {
	if m.board == nil {
		return false
	}
	recipes := m.feedRecipes()
	switch {
	case key.Matches(msg, m.keys.Filter):
		m.feed.filter = m.feed.filter.Next()
		m.feed.cursor = 0
		return true

	case key.Matches(msg, m.keys.Like):
		if m.feed.cursor >= len(recipes) {
			return true
		}
		r := recipes[m.feed.cursor]
		likes, err := m.board.Like(r.ID)
		if err != nil {
			m.setStatus(err.Error(), true)
			return true
		}
		m.setStatus(fmt.Sprintf("%s now has %d likes", r.Localized(m.lang).Name, likes), false)
		return true

	case key.Matches(msg, m.keys.New):
		m.modal = newPublishForm(m.board, m.authorName())
		return true
	}
	cursor, moved := m.moveCursor(msg, m.feed.cursor, len(recipes))
	m.feed.cursor = cursor
	return moved
}

// authorName is the onboarding name, if any.
func (m Model) authorName() string {
	if m.onboarding == nil {
		return ""
	}
	return m.onboarding.Preferences().Name
}

func (m Model) renderCommunity() string {
	height := m.contentHeight()
	listWidth, detailWidth := m.splitWidths()
	bgColor := m.paneBg(true)
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	inner := listWidth - 2

	filters := make([]string, 0, len(community.Filters))
	for _, f := range community.Filters {
		if f == m.feed.filter {
			filters = append(filters, bg.Render("["+string(f)+"]", styles.AccentText.Bold(true)))
		} else {
			filters = append(filters, bg.Render(" "+string(f)+" ", styles.MutedText))
		}
	}
	body := []string{strings.Join(filters, bg.Space()), ""}

	recipes := m.feedRecipes()
	if len(recipes) == 0 {
		body = append(body, styles.MutedText.Render(label(m.lang, "no_recipes")))
	}
	start, end := visibleWindow(len(recipes), m.feed.cursor, height-2-len(body))
	mine := ""
	if m.board != nil {
		mine = m.board.DeviceID()
	}
	for i := start; i < end; i++ {
		r := recipes[i].Localized(m.lang)
		likes := fmt.Sprintf("♥ %d", r.Likes)
		nameWidth := max(inner-len([]rune(likes))-2, 6)
		text := padRight(truncate(r.Name, nameWidth), nameWidth) + "  " + likes
		if i == m.feed.cursor {
			body = append(body, styles.Selected.Width(inner).Render(text))
			continue
		}
		style := styles.Text
		if r.AuthorID == mine {
			style = styles.AccentText
		}
		body = append(body, bg.FillLine(bg.Render(text, style), inner))
	}
	list := m.renderTitledBox(label(m.lang, "community"), strings.Join(body, "\n"), listWidth, height, true)
	if detailWidth == 0 {
		return list
	}

	detailBg := m.paneBg(false)
	var content string
	if m.feed.cursor < len(recipes) {
		content = m.renderRecipe(recipes[m.feed.cursor].Localized(m.lang), detailWidth-4, detailBg)
	}
	return joinPanes(list, m.renderTitledBox(label(m.lang, "details"), content, detailWidth, height, false))
}

func (m Model) renderRecipe(r community.Recipe, width int, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	lines := []string{
		bg.Render(r.Name, styles.Text.Bold(true)),
		bg.Render("by "+r.Author, styles.MutedText) + bg.Spaces(2) +
			bg.Render(fmt.Sprintf("♥ %d", r.Likes), styles.DangerText) + bg.Spaces(2) +
			bg.Render(r.CreatedAt.Local().Format("2006-01-02"), styles.FaintText),
		"",
	}
	for _, l := range wrapText(r.Description, width) {
		lines = append(lines, bg.Render(l, styles.Text))
	}

	lines = append(lines, "", bg.Render(strings.ToUpper(label(m.lang, "ingredients")), styles.AccentText.Bold(true)))
	for _, ing := range r.Ingredients {
		lines = append(lines, bg.Render("• "+truncate(ing, width-2), styles.Text))
	}

	lines = append(lines, "", bg.Render(strings.ToUpper(label(m.lang, "preparation")), styles.AccentText.Bold(true)))
	for i, step := range r.Steps {
		prefix := fmt.Sprintf("%d. ", i+1)
		for j, l := range wrapText(step, max(width-len(prefix), 10)) {
			if j > 0 {
				prefix = strings.Repeat(" ", len(prefix))
			}
			lines = append(lines, bg.Render(prefix+l, styles.Text))
		}
	}
	return strings.Join(lines, "\n")
}

const (
	publishName = iota
	publishDescription
	publishIngredients
	publishSteps
)

// publishForm collects a community recipe draft.
type publishForm struct {
	board  *community.Board
	author string
	form   form
}

func newPublishForm(board *community.Board, author string) *publishForm {
	return &publishForm{
		board:  board,
		author: author,
		form: newForm(
			newFormField("Name", "e.g. Smoky Paloma", "", 60),
			newFormField("Description", "one line about it", "", 500),
			newFormField("Ingredients", "comma separated", "", 500),
			newFormField("Steps", "separated by ;", "", 1000),
		),
	}
}

func (p *publishForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Escape):
		return nil, nil, true
	case key.Matches(keyMsg, keys.Confirm):
		draft := community.Draft{
			Name:        p.form.value(publishName),
			Description: p.form.value(publishDescription),
			Ingredients: splitList(p.form.value(publishIngredients), ",;"),
			Steps:       splitList(p.form.value(publishSteps), ";"),
		}
		r, err := p.board.Publish(draft, p.author)
		if err != nil {
			p.form.err = strings.TrimPrefix(err.Error(), community.ErrValidation.Error()+": ")
			if !errors.Is(err, community.ErrValidation) {
				return nil, statusCmd(err.Error(), true), true
			}
			return p, nil, false
		}
		return nil, statusCmd(fmt.Sprintf("Published %s", r.Name), false), true
	}
	return p, p.form.update(keyMsg, keys), false
}

func (p *publishForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	modalTitle(&b, styles, "Publish Recipe", 40)
	author := p.author
	if author == "" {
		author = community.AnonymousAuthor
	}
	b.WriteString(styles.MutedText.Render("Publishing as " + author))
	b.WriteString("\n\n")
	p.form.render(&b, styles)
	return renderModal(theme, b.String(), 64, width, height)
}
