package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path, keeping
// only records at or above minLevel. Lines without a level= field belong to
// the record before them. A missing file yields no lines.
func Read(path string, maxLines int, minLevel slog.Level) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	keep := true
	for scanner.Scan() {
		line := scanner.Text()
		if level, ok := ParseLevel(line); ok {
			keep = level >= minLevel
		}
		if !keep {
			continue
		}
		ring[idx] = line
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// ParseLevel extracts the level= field of a slog text record.
func ParseLevel(line string) (slog.Level, bool) {
	i := strings.Index(line, "level=")
	if i < 0 {
		return 0, false
	}
	value := line[i+len("level="):]
	if end := strings.IndexByte(value, ' '); end >= 0 {
		value = value[:end]
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return 0, false
	}
	return level, true
}

var levelStyles = map[slog.Level]lipgloss.Style{
	slog.LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD")),
	slog.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B")),
	slog.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C")).Bold(true),
	slog.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true),
}

// Colorize highlights the level field of a record. Other lines pass through.
func Colorize(line string) string {
	level, ok := ParseLevel(line)
	if !ok {
		return line
	}
	style, ok := levelStyles[level]
	if !ok {
		return line
	}
	field := "level=" + level.String()
	return strings.Replace(line, field, style.Render(field), 1)
}
