// Package app is folio's composition root.
//
// # Wiring
//
//	LoadConfig()      config file + --api override
//	OpenLog()         log file via tea.LogToFile (TUI only)
//	NewLogger()       slog text handler at the configured level
//	NewEnv()          remote.Client -> library.Controller
//	ui.Run()          bubbletea program (blocks)
//
// The CLI subcommands call LoadConfig and NewEnv directly and log to
// stderr instead of a file, since they do not own the terminal.
//
// # Errors
//
// Run returns configuration, log file and client construction errors. A
// failed initial load is not fatal: the TUI shows it in the status line and
// keeps running with an empty list, as there is no retry.
//
// There is no background polling. The collection is fetched once when the
// UI starts and afterwards changes only through the user's own operations.
package app
