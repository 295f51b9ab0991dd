// Package config loads folio's TOML configuration.
//
// # Discovery
//
// Load resolves the file in this order:
//
//  1. An explicitly provided path (the --config flag)
//  2. ~/.config/folio/config.toml
//
// A missing file is not an error; Default values are used instead. Fields
// that are present but blank also fall back to their defaults.
//
// # Keys
//
//	api_url = "http://localhost:8080"      # host:port is accepted too
//	request_timeout = "10s"                # Go duration, empty means none
//	log_file = "~/.local/state/folio/folio.log"
//	log_level = "info"                     # debug, info, warn, error
//	guard_inflight = false                 # reject duplicate outstanding requests
//	strict_price = false                   # reject NaN or negative prices locally
//
// Tilde expansion is applied to log_file and to the config path itself.
//
// # Errors
//
// Load fails for unreadable files, TOML syntax errors ("parse config"), an
// unparseable or negative request_timeout and an unknown log_level. Config
// is a plain value; nothing is cached between calls.
package config
