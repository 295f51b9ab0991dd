// Package logtail reads the end of folio's log file and colors it for a
// terminal.
//
// # Reading
//
// Read keeps a ring buffer of maxLines entries while scanning the file once,
// so memory stays proportional to the lines returned rather than the file
// size. Lines come back oldest first. A missing file is not an error: the
// log only exists after the TUI has run once.
//
// # Colorization
//
// The log is written by log/slog's text handler, one record per line:
//
//	time=2026-01-02T10:00:00.000Z level=INFO msg="book created" op=create id=9
//
// ColorizeLine colors the level=... token with fatih/color (debug cyan, info
// green, warn yellow, error red) and leaves the rest of the line alone.
// fatih/color disables itself when stdout is not a terminal or NO_COLOR is
// set, in which case lines pass through untouched.
package logtail
