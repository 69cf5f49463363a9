// Package config loads cocteler's TOML configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/cocteler/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Command-line flags and COCTELER_* environment variables are applied on top
// with Config.WithOverrides; the cmd package does the flag and env binding.
//
// # Default Values
//
//   - Config file: ~/.config/cocteler/config.toml
//   - Data directory: ~/.local/share/cocteler
//   - Database: <data_dir>/cocteler.db
//   - Log file: <data_dir>/cocteler.log
//   - Log level: info
//   - Language: en
//   - Theme: Negroni
//   - Write debounce: 150ms
//   - Flush timeout on exit: 2s
//
// # TOML Format
//
//	data_dir = "~/.local/share/cocteler"
//	log_file = "~/.local/share/cocteler/cocteler.log"
//	log_level = "info"          # debug | info | warn | error
//	language = "en"             # en | es
//	theme = "Negroni"
//	write_debounce_ms = 150     # 0 writes immediately
//	flush_timeout_ms = 2000
//
// # Validation
//
// Out-of-range values are rejected with an error mentioning "validate config"
// rather than silently replaced.
//
// # Path Expansion
//
// Paths starting with "~" are expanded against the user's home directory and
// made absolute.
package config
