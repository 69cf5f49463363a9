// Package logtail reads the tail of cocteler's own log file.
//
// # Reading
//
// Read keeps a ring buffer of maxLines entries while scanning the file once,
// so memory stays proportional to the window rather than the file size. Lines
// come back oldest first. A missing file is not an error: the logger may not
// have written anything yet.
//
//	lines, err := logtail.Read(cfg.LogFile, 400)
//
// # Parsing
//
// The logger writes zap JSON records. Parse turns one record into an Entry
// with its level, timestamp, logger name, message and remaining fields
// flattened to strings. Timestamps may be ISO8601 strings or float epoch
// seconds. Anything that is not a JSON object (panics, stray prints) becomes
// a raw Entry so nothing is hidden from the Logs view.
//
// AtLeast drops entries below a level and always keeps raw lines.
package logtail
