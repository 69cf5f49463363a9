package ui

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cocteler/cocteler/internal/catalog"
	"github.com/cocteler/cocteler/internal/community"
	"github.com/cocteler/cocteler/internal/kv"
	"github.com/cocteler/cocteler/internal/onboarding"
	"github.com/cocteler/cocteler/internal/state"
)

// recorder keeps the last scheduled value per key.
type recorder struct {
	mu     sync.Mutex
	values map[string]string
}

func (r *recorder) Schedule(key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.values == nil {
		r.values = map[string]string{}
	}
	r.values[key] = value
}

func (r *recorder) get(key string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.values[key]
}

type harness struct {
	store      *state.Store
	onboarding *onboarding.Service
	board      *community.Board
	rec        *recorder
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Cocktail{
		{
			ID: "1", Name: "Negroni", Category: "Classic", Rating: 4.5,
			Ingredients: []catalog.Ingredient{{Name: "Gin"}, {Name: "Campari"}, {Name: "Sweet Vermouth"}},
			Taste:       catalog.Taste{Sweet: 2, Bitter: 4},
		},
		{
			ID: "2", Name: "Mojito", Category: "Citrus", Rating: 4.9,
			Ingredients: []catalog.Ingredient{{Name: "White Rum"}, {Name: "Lime"}, {Name: "Mint"}, {Name: "Soda"}},
			Taste:       catalog.Taste{Sweet: 3, Sour: 3},
		},
		{
			ID: "3", Name: "Daiquiri", Category: "Classic", Rating: 4.2,
			Ingredients: []catalog.Ingredient{{Name: "White Rum"}, {Name: "Lime"}, {Name: "Sugar"}},
			Taste:       catalog.Taste{Sweet: 2, Sour: 4},
		},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return cat
}

// newTestModel returns a sized model over loaded in-memory state.
func newTestModel(t *testing.T) (Model, *harness) {
	t.Helper()
	ctx := context.Background()
	mem := kv.NewMemory()
	rec := &recorder{}

	store := state.New(mem, rec, nil)
	store.Initialize(ctx)

	svc := onboarding.New(mem, nil)
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("onboarding Load: %v", err)
	}

	board := community.NewBoard(mem, rec, nil)
	if err := board.Load(ctx); err != nil {
		t.Fatalf("board Load: %v", err)
	}

	m := New(Options{
		Context:    ctx,
		Catalogs:   map[string]*catalog.Catalog{catalog.English: testCatalog(t)},
		Store:      store,
		Onboarding: svc,
		Community:  board,
		Writer:     rec,
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})
	return m, &harness{store: store, onboarding: svc, board: board, rec: rec}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, k)
	}
	return m
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	rightKey = tea.KeyMsg{Type: tea.KeyRight}
)

func TestViewShowsLoadingUntilSized(t *testing.T) {
	m := New(Options{})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View() before size = %q, want Loading...", got)
	}

	store := state.New(kv.NewMemory(), &recorder{}, nil)
	m = New(Options{Store: store})
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	if !strings.Contains(m.View(), "Loading...") {
		t.Fatalf("View() while the store loads should say Loading...")
	}
}

func TestHomeRendersAfterLoad(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	for _, want := range []string{"cocteler", "Mojito", "Negroni"} {
		if !strings.Contains(view, want) {
			t.Fatalf("home view missing %q", want)
		}
	}
}

func TestToggleFavoriteFromHome(t *testing.T) {
	m, h := newTestModel(t)

	// Mojito is featured, so the recommended tab starts with Negroni.
	m = press(t, m, runes("f"))
	if !h.store.IsFavorite("1") {
		t.Fatalf("expected Negroni to be a favorite")
	}
	if got := len(m.snapshot.Favorites); got != 1 {
		t.Fatalf("snapshot favorites = %d, want 1", got)
	}
	if !strings.Contains(m.status.text, "Added Negroni") {
		t.Fatalf("status = %q, want an added message", m.status.text)
	}
	if h.rec.get(kv.KeyFavorites) != `["1"]` {
		t.Fatalf("scheduled favorites = %q", h.rec.get(kv.KeyFavorites))
	}

	m = press(t, m, runes("f"))
	if h.store.IsFavorite("1") {
		t.Fatalf("second f should remove the favorite")
	}
}

func TestCollectionPickerAddsItem(t *testing.T) {
	m, h := newTestModel(t)

	m = press(t, m, runes("c"))
	if m.modal == nil {
		t.Fatalf("expected the collection picker to open")
	}
	m = press(t, m, enterKey)
	if !h.store.IsInCollection("1", "1") {
		t.Fatalf("expected Negroni in Party Favorites")
	}
	if m.modal == nil {
		t.Fatalf("picker should stay open after a toggle")
	}

	m = press(t, m, enterKey, escKey)
	if h.store.IsInCollection("1", "1") {
		t.Fatalf("second toggle should remove Negroni")
	}
	if m.modal != nil {
		t.Fatalf("esc should close the picker")
	}
}

func TestCreateCollectionForm(t *testing.T) {
	m, h := newTestModel(t)
	m = press(t, m, runes("5"))
	if m.currentView != ViewFavorites {
		t.Fatalf("currentView = %v, want favorites", m.currentView)
	}

	m = press(t, m, runes("n"), runes("Tiki Night"), tabKey, runes("Rum forward"), enterKey)
	if m.modal != nil {
		t.Fatalf("form should close after saving")
	}
	cols := h.store.Collections()
	if len(cols) != 3 {
		t.Fatalf("collections = %d, want 3", len(cols))
	}
	got := cols[2]
	if got.Name != "Tiki Night" || got.Description != "Rum forward" {
		t.Fatalf("created collection = %+v", got)
	}
	if got.Color == "" || got.Icon == "" {
		t.Fatalf("created collection should get default color and icon, got %+v", got)
	}
}

func TestCreateCollectionFormKeepsErrors(t *testing.T) {
	m, h := newTestModel(t)
	m = press(t, m, runes("5"), runes("n"), enterKey)
	if m.modal == nil {
		t.Fatalf("blank name should keep the form open")
	}
	cf, ok := m.modal.(*collectionForm)
	if !ok {
		t.Fatalf("modal = %T, want *collectionForm", m.modal)
	}
	if cf.form.err == "" {
		t.Fatalf("expected a validation message")
	}
	if got := len(h.store.Collections()); got != 2 {
		t.Fatalf("collections = %d, want 2", got)
	}
}

func TestDeleteCollectionConfirm(t *testing.T) {
	m, h := newTestModel(t)
	m = press(t, m, runes("5"), runes("j"), runes("D"))
	if m.modal == nil {
		t.Fatalf("expected a confirmation")
	}
	m = press(t, m, runes("y"))
	if _, ok := h.store.Collection("1"); ok {
		t.Fatalf("collection 1 should be deleted")
	}
	if got := len(m.snapshot.Collections); got != 1 {
		t.Fatalf("snapshot collections = %d, want 1", got)
	}
}

func TestFavoritesSkipsUnknownIDs(t *testing.T) {
	m, h := newTestModel(t)
	h.store.ToggleFavorite("ghost")
	h.store.ToggleFavorite("3")
	m = update(t, m, snapshotMsg(h.store.Snapshot()))

	m = press(t, m, runes("5"))
	items := m.groupItems()
	if len(items) != 1 || items[0].ID != "3" {
		t.Fatalf("groupItems = %+v, want only Daiquiri", items)
	}
	if !strings.Contains(m.View(), "Daiquiri") {
		t.Fatalf("favorites view should list Daiquiri")
	}

	m = press(t, m, enterKey, runes("x"))
	if h.store.IsFavorite("3") {
		t.Fatalf("x should unfavorite the selected cocktail")
	}
	if !h.store.IsFavorite("ghost") {
		t.Fatalf("unknown ids are kept in storage")
	}
}

func TestSearchTyping(t *testing.T) {
	m, h := newTestModel(t)
	m = press(t, m, runes("2"))
	if !m.search.input.Focused() {
		t.Fatalf("search input should focus on entry")
	}

	// q and f are shortcuts elsewhere; while typing they are text.
	m = press(t, m, runes("rum"))
	if m.currentView != ViewSearch {
		t.Fatalf("typing should not leave the search view")
	}
	results := m.searchResults()
	if len(results) != 2 {
		t.Fatalf("search results = %d, want 2", len(results))
	}

	m = press(t, m, enterKey, runes("j"), runes("f"))
	if !h.store.IsFavorite("3") {
		t.Fatalf("expected the second result to be favorited")
	}
}

func TestMixAddsIngredients(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, runes("3"), runes("rum, sugar"), enterKey)

	if got := m.mix.selected; len(got) != 2 || got[0] != "rum" || got[1] != "sugar" {
		t.Fatalf("selected = %v, want [rum sugar]", got)
	}
	if m.mix.input.Value() != "" {
		t.Fatalf("input should clear after adding")
	}
	results := m.mixResults()
	if len(results) != 1 || results[0].ID != "3" {
		t.Fatalf("mix results = %+v, want Daiquiri", results)
	}

	m = press(t, m, escKey, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.mix.selected; len(got) != 1 || got[0] != "rum" {
		t.Fatalf("backspace should drop the last ingredient, got %v", got)
	}
}

func TestCommunityLike(t *testing.T) {
	m, h := newTestModel(t)
	first := h.board.List(community.FilterAll)[0]

	m = press(t, m, runes("6"), runes("+"))
	got, ok := h.board.Get(first.ID)
	if !ok || got.Likes != first.Likes+1 {
		t.Fatalf("likes = %d, want %d", got.Likes, first.Likes+1)
	}
	if !strings.Contains(m.status.text, "likes") {
		t.Fatalf("status = %q", m.status.text)
	}
}

func TestCommunityPublish(t *testing.T) {
	m, h := newTestModel(t)
	m = press(t, m, runes("6"), runes("n"),
		runes("Smoky Paloma"), tabKey,
		runes("Mezcal and grapefruit"), tabKey,
		runes("mezcal, grapefruit soda"), tabKey,
		runes("Build over ice; Stir"), enterKey)
	if m.modal != nil {
		t.Fatalf("publish form should close on success")
	}

	mine := h.board.List(community.FilterMine)
	if len(mine) != 1 {
		t.Fatalf("mine = %d recipes, want 1", len(mine))
	}
	r := mine[0]
	if r.Name != "Smoky Paloma" || r.Author != community.AnonymousAuthor {
		t.Fatalf("published = %+v", r)
	}
	if len(r.Ingredients) != 2 || len(r.Steps) != 2 {
		t.Fatalf("published ingredients %v steps %v", r.Ingredients, r.Steps)
	}
}

func TestCommunityPublishRejectsBlankDraft(t *testing.T) {
	m, h := newTestModel(t)
	before := len(h.board.List(community.FilterAll))

	m = press(t, m, runes("6"), runes("n"), enterKey)
	pf, ok := m.modal.(*publishForm)
	if !ok {
		t.Fatalf("modal = %T, want *publishForm", m.modal)
	}
	if pf.form.err == "" {
		t.Fatalf("expected a validation message")
	}
	if got := len(h.board.List(community.FilterAll)); got != before {
		t.Fatalf("recipes = %d, want %d", got, before)
	}
}

func TestSettingsSaveCompletesOnboarding(t *testing.T) {
	m, h := newTestModel(t)
	m = press(t, m, runes("7"), runes("j"), runes("j"))
	if m.settings.cursor != rowSweet {
		t.Fatalf("cursor = %d, want sweet row", m.settings.cursor)
	}
	before := m.settings.draft.TastePreferences.Sweet
	m = press(t, m, rightKey)
	if !m.settings.dirty {
		t.Fatalf("adjusting a taste should mark the draft dirty")
	}

	next, cmd := m.Update(enterKey)
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("expected a save command")
	}
	msg, ok := cmd().(statusMsg)
	if !ok || msg.isErr {
		t.Fatalf("save returned %#v", msg)
	}
	if !h.onboarding.Completed() {
		t.Fatalf("first save should complete onboarding")
	}
	if got := h.onboarding.Preferences().TastePreferences.Sweet; got != min(before+1, 5) {
		t.Fatalf("sweet = %d, want %d", got, min(before+1, 5))
	}
}

func TestThemeAndLanguageAreScheduled(t *testing.T) {
	m, h := newTestModel(t)
	m = press(t, m, runes("T"))
	if m.theme.Name != "Mojito" {
		t.Fatalf("theme = %q, want Mojito", m.theme.Name)
	}
	if got := h.rec.get(kv.KeyTheme); got != "Mojito" {
		t.Fatalf("scheduled theme = %q", got)
	}

	m = press(t, m, runes("L"))
	if m.lang != catalog.Spanish {
		t.Fatalf("lang = %q, want es", m.lang)
	}
	if got := h.rec.get(kv.KeyLanguage); got != catalog.Spanish {
		t.Fatalf("scheduled language = %q", got)
	}
	// No Spanish catalog is loaded, so English items still render.
	if len(m.homeItems()) == 0 {
		t.Fatalf("expected the English catalog as fallback")
	}
}

func TestHelpOverlayClosesOnAnyKey(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, runes("?"))
	if !m.showHelp {
		t.Fatalf("? should open help")
	}
	m = press(t, m, runes("f"))
	if m.showHelp {
		t.Fatalf("any key should close help")
	}
	if m.store.IsFavorite("1") {
		t.Fatalf("the closing key must not act")
	}
}

func TestViewsRenderAtNarrowWidth(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 70, Height: 24})
	for i := range viewOrder {
		m = press(t, m, escKey, runes(string(rune('1'+i))))
		if m.currentView != viewOrder[i] {
			t.Fatalf("key %d went to %v", i+1, m.currentView)
		}
		if m.View() == "" {
			t.Fatalf("view %v rendered nothing", viewOrder[i])
		}
	}
}
