package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Read returns at most maxLines from the end of the file at path. A
// maxLines of zero or less returns every line. A missing file yields no
// lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if maxLines > 0 && len(lines) > 2*maxLines {
			lines = append(lines[:0], lines[len(lines)-maxLines:]...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines, nil
}

// LevelOf returns the level named by a "level=" attribute in a slog text
// line, upper-cased, or "" when there is none.
func LevelOf(line string) string {
	start, end := levelSpan(line)
	if start < 0 {
		return ""
	}
	return strings.ToUpper(line[start+len("level="):end])
}

// levelSpan locates the level=VALUE token, or returns -1.
func levelSpan(line string) (int, int) {
	start := strings.Index(line, "level=")
	if start < 0 {
		return -1, -1
	}
	end := start + len("level=")
	for end < len(line) && line[end] != ' ' {
		end++
	}
	return start, end
}

var levelColors = map[string]*color.Color{
	"DEBUG": color.New(color.FgCyan),
	"INFO":  color.New(color.FgGreen),
	"WARN":  color.New(color.FgYellow, color.Bold),
	"ERROR": color.New(color.FgRed, color.Bold),
}

// ColorizeLine colors the level attribute of a slog text line for a
// terminal. Lines without a known level are returned unchanged.
func ColorizeLine(line string) string {
	c, ok := levelColors[LevelOf(line)]
	if !ok {
		return line
	}
	start, end := levelSpan(line)
	return line[:start] + c.Sprint(line[start:end]) + line[end:]
}

// ColorizeLines applies ColorizeLine to each line.
func ColorizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ColorizeLine(line)
	}
	return out
}
