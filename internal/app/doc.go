// Package app is the composition root for cocteler.
//
// # Overview
//
// Open turns configuration into a ready Env: logger, storage adapter,
// debounced writer, bundled catalogs and the stores built on top of them.
// Load then reads persisted state, and Close drains writes and releases
// storage. The TUI and every CLI subcommand go through the same three steps.
//
// # Startup
//
//	┌──────────────┐
//	│   Open()     │ config.Load + overrides
//	└──────┬───────┘
//	       ├─────> logging.New()        zap JSON lines to the log file
//	       ├─────> kv.OpenSQLite()      or kv.NewMemory() when ephemeral
//	       ├─────> catalog.Load()       one catalog per bundled language
//	       └─────> kv.NewWriter()       shared by every store
//
//	┌──────────────┐
//	│   Load()     │ errgroup, one goroutine per component
//	└──────┬───────┘
//	       ├─────> state.Store.Initialize()
//	       ├─────> onboarding.Service.Load()
//	       ├─────> community.Board.Load()
//	       └─────> prefs.Load()
//
// # Error Handling
//
// Fatal errors (returned from Open):
//   - Config file unreadable or invalid
//   - Data directory cannot be created
//   - Database cannot be opened
//
// Recoverable errors (logged, defaults kept):
//   - Any read during Load
//   - Writes that fail or miss the flush timeout on Close
//
// # Usage Example
//
//	env, err := app.Open(app.Options{})
//	if err != nil {
//		return err
//	}
//	defer env.Close(context.Background())
//	env.Load(ctx)
//	env.Store.ToggleFavorite("cocktail-7")
package app
