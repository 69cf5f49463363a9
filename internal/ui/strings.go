package ui

import "strings"

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(r))
}

// wrapText breaks text into lines of at most width runes on word boundaries.
// Words longer than width are cut.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}
	var lines []string
	var line []rune
	for _, w := range words {
		word := []rune(w)
		for len(word) > width {
			if len(line) > 0 {
				lines = append(lines, string(line))
				line = nil
			}
			lines = append(lines, string(word[:width]))
			word = word[width:]
		}
		switch {
		case len(line) == 0:
			line = append(line, word...)
		case len(line)+1+len(word) <= width:
			line = append(append(line, ' '), word...)
		default:
			lines = append(lines, string(line))
			line = append([]rune(nil), word...)
		}
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}

// splitList splits user input on any of the separator runes, dropping blanks.
func splitList(value, seps string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool { return strings.ContainsRune(seps, r) })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// stars renders a 0-5 rating as filled and empty stars.
func stars(rating float64) string {
	full := int(rating + 0.5)
	full = min(max(full, 0), 5)
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
}

// meter renders a 0-5 score as a fixed-width bar.
func meter(score int) string {
	score = min(max(score, 0), 5)
	return strings.Repeat("■", score) + strings.Repeat("·", 5-score)
}
