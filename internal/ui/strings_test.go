package ui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		value string
		limit int
		want  string
	}{
		{"Negroni", 10, "Negroni"},
		{"  Negroni  ", 7, "Negroni"},
		{"Corpse Reviver", 10, "Corpse ..."},
		{"Piña Colada", 6, "Piñ..."},
		{"Sour", 2, "So"},
		{"Sour", 0, "Sour"},
	}
	for _, tc := range cases {
		if got := truncate(tc.value, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.value, tc.limit, got, tc.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ñu", 4); got != "ñu  " {
		t.Fatalf("padRight = %q, want %q", got, "ñu  ")
	}
	if got := padRight("toolong", 3); got != "toolong" {
		t.Fatalf("padRight should not cut, got %q", got)
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("Stir with ice and strain   into a chilled glass", 16)
	want := []string{"Stir with ice", "and strain into", "a chilled glass"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("wrapText mismatch (-want +got):\n%s", diff)
	}

	got = wrapText("supercalifragilistic", 8)
	want = []string{"supercal", "ifragili", "stic"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("wrapText long word mismatch (-want +got):\n%s", diff)
	}

	if got := wrapText("   ", 10); got != nil {
		t.Fatalf("wrapText(blank) = %v, want nil", got)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" rum, lime;; mint ,", ",;")
	want := []string{"rum", "lime", "mint"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("splitList mismatch (-want +got):\n%s", diff)
	}

	got = splitList("Shake, then strain; Garnish", ";")
	want = []string{"Shake, then strain", "Garnish"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("splitList steps mismatch (-want +got):\n%s", diff)
	}
}

func TestStarsAndMeter(t *testing.T) {
	if got := stars(4.6); got != "★★★★★" {
		t.Fatalf("stars(4.6) = %q", got)
	}
	if got := stars(3.2); got != "★★★☆☆" {
		t.Fatalf("stars(3.2) = %q", got)
	}
	if got := stars(-1); got != "☆☆☆☆☆" {
		t.Fatalf("stars(-1) = %q", got)
	}
	if got := meter(2); got != "■■···" {
		t.Fatalf("meter(2) = %q", got)
	}
	if got := meter(9); got != "■■■■■" {
		t.Fatalf("meter(9) = %q", got)
	}
}

func TestVisibleWindow(t *testing.T) {
	cases := []struct {
		n, cursor, height int
		start, end        int
	}{
		{5, 2, 10, 0, 5},
		{20, 0, 5, 0, 5},
		{20, 10, 5, 8, 13},
		{20, 19, 5, 15, 20},
	}
	for _, tc := range cases {
		start, end := visibleWindow(tc.n, tc.cursor, tc.height)
		if start != tc.start || end != tc.end {
			t.Fatalf("visibleWindow(%d, %d, %d) = [%d, %d), want [%d, %d)",
				tc.n, tc.cursor, tc.height, start, end, tc.start, tc.end)
		}
	}
}
