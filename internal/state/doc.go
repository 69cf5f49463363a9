// Package state holds the favorites and collections shared by every view.
//
// # Overview
//
// Store keeps two pieces of user state in memory: the favorite cocktail ids
// and the user's named collections. Views and CLI commands receive the same
// *Store at construction; nothing reaches it through a global.
//
// # Lifecycle
//
//	store := state.New(adapter, writer, logger)  // Loading() == true
//	store.Initialize(ctx)                         // Loading() == false
//
// Initialize reads both keys concurrently. A missing key yields the defaults
// (no favorites, plus the "Party Favorites" and "Date Night" collections). A
// read error or a value that does not decode is logged and also yields the
// defaults, so a damaged database never stops the app from starting.
//
// # Persistence
//
// Every mutation changes memory first and then hands the complete JSON value
// for its key to a kv.Scheduler. The value is encoded while the store lock is
// held, so the order of scheduled values matches the order of mutations. With
// kv.Writer as the scheduler, the last value scheduled is the last one
// written. Writes that fail are logged by the writer and never surface here:
// memory stays the source of truth for the session.
//
// Operations that change nothing (adding an item twice, removing from an
// unknown collection) schedule no write.
//
// # Concurrency
//
// All methods are safe for concurrent use. Readers share an RWMutex read
// lock; Snapshot and the accessor methods return copies that callers may
// modify freely.
//
// # Stale ids
//
// Catalog ids are stored as given. The store does not check them against the
// catalog; renderers resolve ids through the catalog and skip unknown ones.
package state
