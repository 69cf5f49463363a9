package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cocteler/cocteler/internal/catalog"
)

// renderDetailPane renders the selected cocktail beside a list, or nothing on
// narrow terminals.
func (m Model) renderDetailPane(item catalog.Cocktail, ok bool, width int) string {
	if width <= 0 {
		return ""
	}
	bgColor := m.paneBg(false)
	var content string
	if ok {
		content = m.renderDetailContent(item, width-4, bgColor)
	} else {
		styles := m.theme.Styles().WithBackground(bgColor)
		content = styles.MutedText.Render(label(m.lang, "select_cocktail"))
	}
	return m.renderTitledBox(label(m.lang, "details"), content, width, m.contentHeight(), false)
}

// renderDetailContent lays out one cocktail: heading, facts, taste, ingredients,
// steps, tips, membership and similar drinks.
func (m Model) renderDetailContent(item catalog.Cocktail, width int, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	var lines []string

	heading := bg.Render(item.Name, styles.Text.Bold(true))
	if slices.Contains(m.snapshot.Favorites, item.ID) {
		heading += bg.Space() + bg.Render("♥", styles.DangerText)
	}
	lines = append(lines, heading)

	chips := []string{
		styles.CategoryBadge(item.Category).Render(item.Category),
		bg.Render(stars(item.Rating), styles.WarningText),
		bg.Render(fmt.Sprintf("%.1f", item.Rating), styles.MutedText),
	}
	lines = append(lines, strings.Join(chips, bg.Space()))
	lines = append(lines, "")

	var facts []string
	if item.AlcoholContent != "" {
		facts = append(facts, item.AlcoholContent+" ABV")
	}
	if item.Calories > 0 {
		facts = append(facts, fmt.Sprintf("%d kcal", item.Calories))
	}
	if item.Difficulty != "" {
		facts = append(facts, item.Difficulty)
	}
	if item.PreparationTime != "" {
		facts = append(facts, item.PreparationTime)
	}
	if len(facts) > 0 {
		lines = append(lines, bg.Render(strings.Join(facts, " · "), styles.InfoText))
	}
	if item.GlassType != "" || item.Garnish != "" {
		lines = append(lines, bg.Render(strings.TrimSpace(item.GlassType+"  "+item.Garnish), styles.MutedText))
	}

	for _, l := range wrapText(item.Description, width) {
		lines = append(lines, bg.Render(l, styles.Text))
	}

	section := func(title string) {
		lines = append(lines, "", bg.Render(strings.ToUpper(title), styles.AccentText.Bold(true)))
	}

	section("Taste")
	for _, t := range []struct {
		name  string
		score int
	}{
		{"sweet", item.Taste.Sweet},
		{"sour", item.Taste.Sour},
		{"bitter", item.Taste.Bitter},
		{"spicy", item.Taste.Spicy},
	} {
		lines = append(lines, bg.Render(padRight(t.name, 8), styles.MutedText)+bg.Render(meter(t.score), styles.AccentText))
	}

	section(label(m.lang, "ingredients"))
	for _, ing := range item.Ingredients {
		amount := padRight(ing.Amount, 10)
		lines = append(lines, bg.Render(amount, styles.MutedText)+bg.Space()+bg.Render(truncate(ing.Name, max(width-11, 4)), styles.Text))
	}

	if len(item.Preparation) > 0 {
		section(label(m.lang, "preparation"))
		for i, step := range item.Preparation {
			prefix := fmt.Sprintf("%d. ", i+1)
			for j, l := range wrapText(step, max(width-len(prefix), 10)) {
				if j > 0 {
					prefix = strings.Repeat(" ", len(prefix))
				}
				lines = append(lines, bg.Render(prefix+l, styles.Text))
			}
		}
	}

	if item.Tips != "" {
		section("Tips")
		for _, l := range wrapText(item.Tips, width) {
			lines = append(lines, bg.Render(l, styles.MutedText))
		}
	}

	var in []string
	for _, c := range m.snapshot.Collections {
		if c.Contains(item.ID) {
			in = append(in, c.Name)
		}
	}
	if len(in) > 0 {
		section(label(m.lang, "collections"))
		lines = append(lines, bg.Render(truncate(strings.Join(in, ", "), width), styles.Text))
	}

	if similar := m.catalog().Similar(item.ID, 3); len(similar) > 0 {
		section(label(m.lang, "similar"))
		for _, s := range similar {
			lines = append(lines, bg.Render(truncate(s.Name, width), styles.Text))
		}
	}

	return strings.Join(lines, "\n")
}

// renderCocktailRows renders a cocktail list with the cursor row highlighted.
func (m Model) renderCocktailRows(items []catalog.Cocktail, cursor, width, height int, focused bool, extra func(catalog.Cocktail) string) string {
	bgColor := m.paneBg(focused)
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	start, end := visibleWindow(len(items), cursor, height)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		item := items[i]
		fav := "  "
		if slices.Contains(m.snapshot.Favorites, item.ID) {
			fav = "♥ "
		}
		suffix := ""
		if extra != nil {
			suffix = extra(item)
		}
		nameWidth := max(width-len([]rune(fav))-len([]rune(suffix))-12, 6)
		text := fav + padRight(truncate(item.Name, nameWidth), nameWidth) + " " + stars(item.Rating)
		if suffix != "" {
			text += " " + suffix
		}
		if i == cursor && focused {
			lines = append(lines, styles.Selected.Width(width).Render(text))
			continue
		}
		style := styles.Text
		if fav != "  " {
			style = styles.AccentText
		}
		lines = append(lines, bg.FillLine(bg.Render(text, style), width))
	}
	return strings.Join(lines, "\n")
}

// renderListWithDetail renders a titled cocktail list with the detail pane.
func (m Model) renderListWithDetail(title, header string, items []catalog.Cocktail, cursor int, empty string, extra func(catalog.Cocktail) string) string {
	listWidth, detailWidth := m.splitWidths()
	height := m.contentHeight()
	bgColor := m.paneBg(true)
	styles := m.theme.Styles().WithBackground(bgColor)

	var body []string
	if header != "" {
		body = append(body, header, "")
	}
	rows := height - 2 - len(body)
	if len(items) == 0 {
		body = append(body, styles.MutedText.Render(empty))
	} else {
		body = append(body, m.renderCocktailRows(items, cursor, listWidth-2, rows, true, extra))
	}
	list := m.renderTitledBox(title, strings.Join(body, "\n"), listWidth, height, true)
	if detailWidth == 0 {
		return list
	}
	item, ok := catalog.Cocktail{}, false
	if cursor >= 0 && cursor < len(items) {
		item, ok = items[cursor], true
	}
	return joinPanes(list, m.renderDetailPane(item, ok, detailWidth))
}
