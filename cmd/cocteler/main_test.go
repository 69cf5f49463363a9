package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type harness struct {
	t       *testing.T
	dataDir string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return &harness{t: t, dataDir: filepath.Join(home, "data")}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--data-dir", h.dataDir}, args...))
	err := root.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, "cocteler %s", strings.Join(args, " "))
	return out
}

func TestFavoritesPersistAcrossRuns(t *testing.T) {
	h := newHarness(t)

	require.Contains(t, h.mustRun("favorites"), "No favorites yet.")
	require.Contains(t, h.mustRun("favorites", "toggle", "cocktail-4"), "Added Mojito")

	out := h.mustRun("favorites", "list")
	require.Contains(t, out, "Mojito")
	require.Contains(t, h.mustRun("--lang", "es", "favorites"), "Mojito")

	require.Contains(t, h.mustRun("favorites", "toggle", "cocktail-4"), "Removed Mojito")
	require.Contains(t, h.mustRun("favorites"), "No favorites yet.")

	_, err := h.run("favorites", "toggle", "cocktail-999")
	require.ErrorIs(t, err, errUnknownCocktail)
}

func TestCollectionsLifecycle(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("collections")
	require.Contains(t, out, "Party Favorites")
	require.Contains(t, out, "Date Night")

	out = h.mustRun("collections", "create", "Tiki", "--icon", "palm", "--color", "#4ECDC4")
	require.Contains(t, out, "Created collection ")
	id := strings.TrimSpace(strings.TrimPrefix(out, "Created collection "))

	require.Contains(t, h.mustRun("collections", "add", id, "cocktail-10"), "Added Mai Tai")
	require.Contains(t, h.mustRun("collections", "add", id, "cocktail-10"), "already in the collection")
	require.Contains(t, h.mustRun("collections", "show", id), "Mai Tai")

	require.Contains(t, h.mustRun("collections", "rename", id, "Tropical"), "Renamed")
	require.Contains(t, h.mustRun("collections"), "Tropical")

	require.Contains(t, h.mustRun("collections", "remove", id, "cocktail-10"), "Removed")
	require.Contains(t, h.mustRun("collections", "show", id), "This collection is empty.")

	require.Contains(t, h.mustRun("collections", "delete", id), "Deleted")
	_, err := h.run("collections", "show", id)
	require.ErrorContains(t, err, "not found")

	_, err = h.run("collections", "create", "   ")
	require.Error(t, err)
}

func TestCollectionsRemoveReportsMissingCases(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("collections", "remove", "missing", "cocktail-10")
	require.ErrorContains(t, err, `collection "missing" not found`)

	_, err = h.run("collections", "remove", "1", "cocktail-10")
	require.ErrorContains(t, err, `cocktail-10 is not in collection "1"`)

	h.mustRun("collections", "add", "1", "cocktail-10")
	require.Contains(t, h.mustRun("collections", "remove", "1", "cocktail-10"), "Removed cocktail-10")
	_, err = h.run("collections", "remove", "1", "cocktail-10")
	require.ErrorContains(t, err, "is not in collection")
}

func TestDiscoveryCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("search", "gin")
	for _, name := range []string{"Dry Martini", "Gin Tonic", "Penicillin"} {
		require.Contains(t, out, name)
	}
	require.Contains(t, h.mustRun("--lang", "es", "search", "penicilina"), "Penicilina")
	require.Contains(t, h.mustRun("search", "zzz"), "No cocktails found.")

	out = h.mustRun("mix", "rum", "lime")
	for _, name := range []string{"Mojito", "Mai Tai", "Cuba Libre", "Daiquiri"} {
		require.Contains(t, out, name)
	}

	out = h.mustRun("shelves")
	require.Contains(t, out, "Brunch")
	require.Contains(t, out, "Low calorie")
}

func TestOnboardThenRecommend(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("onboard", "--name", "Ana", "--sweet", "2", "--sour", "4", "--base", "whiskey", "--occasion", "evening")
	require.Contains(t, out, "Saved preferences for Ana")

	out = h.mustRun("recommend", "--limit", "3")
	require.NotContains(t, out, "No preferences yet")
	require.Contains(t, out, "Whiskey Sour")

	_, err := h.run("onboard", "--sweet", "9")
	require.Error(t, err)

	require.Contains(t, h.mustRun("onboard", "--reset"), "Onboarding reset")
	require.Contains(t, h.mustRun("recommend"), "No preferences yet")
}

func TestCommunityPublishAndLike(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("community")
	require.Contains(t, out, "LIKES")

	out = h.mustRun("community", "publish",
		"--name", "Smoky Paloma",
		"--description", "Mezcal and grapefruit",
		"--ingredient", "50 ml mezcal",
		"--ingredient", "grapefruit soda",
		"--step", "Build over ice")
	require.Contains(t, out, "Published Smoky Paloma as comm-")
	id := strings.TrimSpace(out[strings.Index(out, "comm-"):])

	require.Contains(t, h.mustRun("community", "--filter", "mine"), "Smoky Paloma")
	require.Contains(t, h.mustRun("community", "like", id), "now has 1 likes")

	_, err := h.run("community", "publish", "--name", "Half done")
	require.Error(t, err)
	_, err = h.run("community", "--filter", "loud")
	require.Error(t, err)
}

func TestPrefsCommands(t *testing.T) {
	h := newHarness(t)

	require.Contains(t, h.mustRun("prefs"), "language: en")
	require.Contains(t, h.mustRun("prefs", "language", "es"), "Language set to es")
	require.Contains(t, h.mustRun("prefs", "theme", "mojito"), "Theme set to Mojito")

	out := h.mustRun("prefs")
	require.Contains(t, out, "language: es")
	require.Contains(t, out, "theme: Mojito")

	_, err := h.run("prefs", "theme", "Nope")
	require.ErrorContains(t, err, "unknown theme")
}

func TestEnvironmentOverridesAndMetrics(t *testing.T) {
	h := newHarness(t)
	t.Setenv("COCTELER_EPHEMERAL", "true")

	h.mustRun("favorites", "toggle", "cocktail-1")
	require.Contains(t, h.mustRun("favorites"), "No favorites yet.")

	out := h.mustRun("--metrics", "favorites", "toggle", "cocktail-1")
	require.Contains(t, out, "cocteler_kv_writes_total")
	require.Contains(t, out, "cocteler_kv_write_failures_total 0")
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, "cocteler dev\n", h.mustRun("version"))
}
