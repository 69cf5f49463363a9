package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/cocteler/cocteler/internal/catalog"
	"github.com/cocteler/cocteler/internal/community"
	"github.com/cocteler/cocteler/internal/kv"
	"github.com/cocteler/cocteler/internal/onboarding"
	"github.com/cocteler/cocteler/internal/prefs"
	"github.com/cocteler/cocteler/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewHome View = iota
	ViewSearch
	ViewMix
	ViewShelves
	ViewFavorites
	ViewCommunity
	ViewSettings
	ViewLogs
)

var viewOrder = []View{
	ViewHome, ViewSearch, ViewMix, ViewShelves,
	ViewFavorites, ViewCommunity, ViewSettings, ViewLogs,
}

// labelKey is the labels entry naming the view.
func (v View) labelKey() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewMix:
		return "mix"
	case ViewShelves:
		return "shelves"
	case ViewFavorites:
		return "favorites"
	case ViewCommunity:
		return "community"
	case ViewSettings:
		return "settings"
	case ViewLogs:
		return "logs"
	default:
		return "home"
	}
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	Catalogs   map[string]*catalog.Catalog
	Store      *state.Store
	Onboarding *onboarding.Service
	Community  *community.Board
	Writer     kv.Scheduler
	Prefs      prefs.Prefs
	LogPath    string
	Logger     *zap.Logger
}

// statusLine is a short message flashed in the header.
type statusLine struct {
	text  string
	isErr bool
	at    time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	catalogs   map[string]*catalog.Catalog
	store      *state.Store
	onboarding *onboarding.Service
	board      *community.Board
	writer     kv.Scheduler
	logger     *zap.Logger
	logPath    string
	keys       keyMap
	now        func() time.Time

	// UI state
	theme       Theme
	lang        string
	currentView View
	width       int
	height      int
	ready       bool
	status      statusLine

	// Data state
	snapshot state.Snapshot

	// Per-view state
	home      homeState
	search    searchState
	mix       mixState
	shelves   shelvesState
	favorites favoritesState
	feed      feedState
	settings  settingsState

	// Log state
	logViewport viewport.Model
	logState    logState

	// Overlays
	modal    Modal
	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	p := opts.Prefs.WithDefaults(prefs.Defaults())

	m := Model{
		ctx:         ctx,
		catalogs:    opts.Catalogs,
		store:       opts.Store,
		onboarding:  opts.Onboarding,
		board:       opts.Community,
		writer:      opts.Writer,
		logger:      logger.Named("ui"),
		logPath:     opts.LogPath,
		keys:        DefaultKeyMap(),
		now:         time.Now,
		theme:       GetTheme(p.Theme),
		lang:        prefs.NormalizeLanguage(p.Language),
		currentView: ViewHome,
		search:      newSearchState(),
		mix:         newMixState(),
		feed:        feedState{filter: community.FilterAll},
		logState:    newLogState(),
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(DefaultUIInterval)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.clampCursors()
		return m, nil

	case statusMsg:
		m.setStatus(msg.text, msg.isErr)
		return m, nil

	case logEntriesMsg:
		m.handleLogEntries(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.snapshot.Loading {
		return m.placeCenter("Loading...")
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey processes keyboard input. Overlays and focused text inputs see
// keys before the global bindings so typing never triggers shortcuts.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		m.refresh()
		return m, cmd
	}

	if m.inputFocused() {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.writer != nil {
			prefs.SaveTheme(m.writer, m.theme.Name)
		}
		m.updateLogViewport()
		return m, nil

	case key.Matches(msg, m.keys.CycleLang):
		m.switchLanguage(prefs.NextLanguage(m.lang))
		return m, nil

	case key.Matches(msg, m.keys.NextView):
		return m, m.switchView(m.offsetView(1))

	case key.Matches(msg, m.keys.PrevView):
		return m, m.switchView(m.offsetView(-1))

	case key.Matches(msg, m.keys.GotoView):
		idx := int(msg.Runes[0] - '1')
		return m, m.switchView(viewOrder[idx])
	}

	var handled bool
	var cmd tea.Cmd
	switch m.currentView {
	case ViewHome:
		handled = m.handleHomeKey(msg)
	case ViewSearch:
		handled, cmd = m.handleSearchKey(msg)
	case ViewMix:
		handled, cmd = m.handleMixKey(msg)
	case ViewShelves:
		handled = m.handleShelvesKey(msg)
	case ViewFavorites:
		handled = m.handleFavoritesKey(msg)
	case ViewCommunity:
		handled = m.handleCommunityKey(msg)
	case ViewSettings:
		handled, cmd = m.handleSettingsKey(msg)
	case ViewLogs:
		handled, cmd = m.handleLogsKey(msg)
	}
	if handled {
		return m, cmd
	}

	return m.handleCocktailKey(msg)
}

// handleCocktailKey applies the actions available wherever a cocktail is selected.
func (m Model) handleCocktailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item, ok := m.selectedCocktail()
	if !ok || m.store == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ToggleFavorite):
		if m.store.ToggleFavorite(item.ID) {
			m.setStatus(fmt.Sprintf("Added %s to favorites", item.Name), false)
		} else {
			m.setStatus(fmt.Sprintf("Removed %s from favorites", item.Name), false)
		}
		m.refresh()

	case key.Matches(msg, m.keys.PickCollection):
		m.modal = newCollectionPicker(m.store, item)
	}
	return m, nil
}

// inputFocused reports whether a text input on the current view has focus.
func (m Model) inputFocused() bool {
	switch m.currentView {
	case ViewSearch:
		return m.search.input.Focused()
	case ViewMix:
		return m.mix.input.Focused()
	case ViewLogs:
		return m.logState.searchActive
	}
	return false
}

// handleInputKey routes keys to the focused text input. View switching still works.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextView):
		m.blurInputs()
		return m, m.switchView(m.offsetView(1))
	case key.Matches(msg, m.keys.PrevView):
		m.blurInputs()
		return m, m.switchView(m.offsetView(-1))
	}

	switch m.currentView {
	case ViewSearch:
		return m, m.handleSearchInput(msg)
	case ViewMix:
		return m, m.handleMixInput(msg)
	case ViewLogs:
		return m, m.handleLogSearchInput(msg)
	}
	return m, nil
}

func (m *Model) blurInputs() {
	m.search.input.Blur()
	m.mix.input.Blur()
	m.logState.searchActive = false
	m.logState.searchInput.Blur()
}

func (m Model) offsetView(delta int) View {
	n := len(viewOrder)
	return viewOrder[((int(m.currentView)+delta)%n+n)%n]
}

// switchView activates v and returns any command entering it needs.
func (m *Model) switchView(v View) tea.Cmd {
	m.blurInputs()
	m.currentView = v
	switch v {
	case ViewSearch:
		if m.search.input.Value() == "" {
			return m.search.input.Focus()
		}
	case ViewMix:
		if len(m.mix.selected) == 0 {
			return m.mix.input.Focus()
		}
	case ViewSettings:
		m.loadSettingsDraft()
	case ViewLogs:
		return readLogsCmd(m.logPath)
	}
	return nil
}

// switchLanguage changes the active catalog and stores the choice.
func (m *Model) switchLanguage(lang string) {
	if m.writer != nil {
		lang = prefs.SaveLanguage(m.writer, lang)
	}
	m.lang = prefs.NormalizeLanguage(lang)
	m.clampCursors()
	m.setStatus("Language: "+strings.ToUpper(m.lang), false)
}

// catalog returns the catalog for the active language.
func (m Model) catalog() *catalog.Catalog {
	if c, ok := m.catalogs[m.lang]; ok {
		return c
	}
	if c, ok := m.catalogs[catalog.English]; ok {
		return c
	}
	empty, _ := catalog.New(nil)
	return empty
}

// selectedCocktail returns the cocktail under the cursor of the current view.
func (m Model) selectedCocktail() (catalog.Cocktail, bool) {
	var items []catalog.Cocktail
	cursor := 0
	switch m.currentView {
	case ViewHome:
		items, cursor = m.homeItems(), m.home.cursor
	case ViewSearch:
		items, cursor = m.searchResults(), m.search.cursor
	case ViewMix:
		items, cursor = m.mixResults(), m.mix.cursor
	case ViewShelves:
		items, cursor = m.shelfItems(), m.shelves.itemCursor
	case ViewFavorites:
		if !m.favorites.itemsFocus {
			return catalog.Cocktail{}, false
		}
		items, cursor = m.groupItems(), m.favorites.itemCursor
	default:
		return catalog.Cocktail{}, false
	}
	if cursor < 0 || cursor >= len(items) {
		return catalog.Cocktail{}, false
	}
	return items[cursor], true
}

// refresh re-reads the store after a mutation.
func (m *Model) refresh() {
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	m.clampCursors()
}

// clampCursors keeps every cursor inside its list after data changes.
func (m *Model) clampCursors() {
	m.home.cursor = clampCursor(m.home.cursor, len(m.homeItems()))
	m.search.cursor = clampCursor(m.search.cursor, len(m.searchResults()))
	m.mix.cursor = clampCursor(m.mix.cursor, len(m.mixResults()))
	m.shelves.shelfCursor = clampCursor(m.shelves.shelfCursor, len(m.catalog().Shelves()))
	m.shelves.itemCursor = clampCursor(m.shelves.itemCursor, len(m.shelfItems()))
	m.favorites.groupCursor = clampCursor(m.favorites.groupCursor, len(m.snapshot.Collections)+1)
	m.favorites.itemCursor = clampCursor(m.favorites.itemCursor, len(m.groupItems()))
	if m.board != nil {
		m.feed.cursor = clampCursor(m.feed.cursor, len(m.board.List(m.feed.filter)))
	}
}

func clampCursor(cursor, n int) int {
	if n == 0 {
		return 0
	}
	return min(max(cursor, 0), n-1)
}

// moveCursor applies the shared navigation bindings to a cursor over n rows.
func (m Model) moveCursor(msg tea.KeyMsg, cursor, n int) (int, bool) {
	half := max(m.contentHeight()/2, 1)
	switch {
	case key.Matches(msg, m.keys.Up):
		cursor--
	case key.Matches(msg, m.keys.Down):
		cursor++
	case key.Matches(msg, m.keys.Top):
		cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		cursor = n - 1
	case key.Matches(msg, m.keys.HalfPageUp):
		cursor -= half
	case key.Matches(msg, m.keys.HalfPageDown):
		cursor += half
	default:
		return cursor, false
	}
	return clampCursor(cursor, n), true
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = statusLine{text: text, isErr: isErr, at: m.now()}
	if isErr {
		m.logger.Warn("ui action failed", zap.String("detail", text))
	}
}

// handleTick expires the status flash, refreshes the snapshot and tails logs.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.status.text != "" && now.Sub(m.status.at) > StatusFlashDuration {
		m.status = statusLine{}
	}
	cmds := []tea.Cmd{tickCmd(DefaultUIInterval)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewLogs && m.logState.follow {
		cmds = append(cmds, readLogsCmd(m.logPath))
	}
	return m, tea.Batch(cmds...)
}

// renderMain renders the header, command bar and active view.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewHome:
		return m.renderHome()
	case ViewSearch:
		return m.renderSearch()
	case ViewMix:
		return m.renderMix()
	case ViewShelves:
		return m.renderShelves()
	case ViewFavorites:
		return m.renderFavorites()
	case ViewCommunity:
		return m.renderCommunity()
	case ViewSettings:
		return m.renderSettings()
	case ViewLogs:
		return m.renderLogs()
	default:
		return ""
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type statusMsg struct {
	text  string
	isErr bool
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func statusCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
