package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"Negroni", "Mojito", "Espresso"}
	if len(names) != len(want) {
		t.Fatalf("ThemeNames() returned %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ThemeNames() = %v, want %v", names, want)
		}
	}

	names[0] = "changed"
	if got := ThemeNames()[0]; got != "Negroni" {
		t.Fatalf("ThemeNames() shares its backing array; got %q after mutation", got)
	}
}

func TestNextTheme(t *testing.T) {
	cases := map[string]string{
		"Negroni":  "Mojito",
		"Mojito":   "Espresso",
		"Espresso": "Negroni",
		"Unknown":  "Negroni",
	}
	for current, want := range cases {
		if got := NextTheme(current); got != want {
			t.Fatalf("NextTheme(%s) = %q, want %q", current, got, want)
		}
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme(" mojito ").Name; got != "Mojito" {
		t.Fatalf("GetTheme(mojito).Name = %q, want Mojito", got)
	}
	if got := GetTheme("Unknown").Name; got != "Negroni" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Negroni", got)
	}
}

func TestCategoryBadgeFallsBackToMuted(t *testing.T) {
	th := GetTheme("Negroni")
	styles := th.Styles()

	if got := styles.CategoryBadge(" Classic ").GetBackground(); got != styles.CategoryBadge("classic").GetBackground() {
		t.Fatalf("CategoryBadge should ignore case and spacing, got %v", got)
	}
	unknown := styles.CategoryBadge("tiki").GetBackground()
	muted := styles.MutedText.GetForeground()
	if unknown != muted {
		t.Fatalf("CategoryBadge(tiki) background = %v, want muted %v", unknown, muted)
	}
}
