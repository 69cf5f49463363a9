// Package ui is the Bubble Tea front end for cocteler.
//
// Model is the single tea.Model. It holds read-only handles to the
// per-language catalogs and mutating handles to the favorites store, the
// onboarding service and the community board. Every mutation goes through
// those packages; the model only re-reads a snapshot afterwards, so what is
// on screen always matches what was scheduled for storage.
//
// # Views
//
// Number keys 1-8 (or tab / shift+tab) switch between:
//
//   - Home: featured cocktail and the recommended, popular and newest tabs
//   - Search: free text over names, categories and ingredients
//   - Mix: pick ingredients and list cocktails containing all of them
//   - Shelves: curated lists derived from the catalog
//   - Favorites: favorites plus user collections, with create, edit and delete
//   - Community: shared recipes with filter, like and publish
//   - Settings: language, theme and taste preferences
//   - Logs: tail of the application's own log file
//
// On any view with a selected cocktail, f toggles the favorite and c opens
// the collection picker.
//
// # Keys and input
//
// Overlays (help, modals) see keys first, then a focused text input, then
// the global bindings, then the active view. Typing into a search box never
// triggers a shortcut.
//
// # Persistence
//
// Theme and language changes are scheduled on the kv.Scheduler and written
// in the background. Preference saves are awaited inside a tea.Cmd and
// report failure in the header.
package ui
