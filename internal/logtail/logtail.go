package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file reads as empty.
func Read(path string, maxLines int) ([]string, error) {
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
	for scanner.Scan() {
		ring[idx] = scanner.Text()
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

// Level classifies a log line for display.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Entry is one parsed line written by the standard logger with its default
// flags: "2006/01/02 15:04:05 component: message".
type Entry struct {
	Time      time.Time
	Component string
	Level     Level
	Message   string
	Raw       string
}

const stdTimeLayout = "2006/01/02 15:04:05"

// Parse splits a log line. Lines that do not carry the timestamp prefix are
// kept whole in Message.
func Parse(line string) Entry {
	entry := Entry{Raw: line, Message: line}

	rest := line
	if len(line) >= len(stdTimeLayout) {
		if ts, err := time.ParseInLocation(stdTimeLayout, line[:len(stdTimeLayout)], time.Local); err == nil {
			entry.Time = ts
			rest = strings.TrimSpace(line[len(stdTimeLayout):])
		}
	}

	if component, msg, ok := strings.Cut(rest, ": "); ok && !strings.ContainsAny(component, " \t") {
		entry.Component = component
		rest = msg
	}

	switch {
	case strings.HasPrefix(rest, "warn: "):
		entry.Level = LevelWarn
		rest = strings.TrimPrefix(rest, "warn: ")
	case strings.HasPrefix(rest, "error: "):
		entry.Level = LevelError
		rest = strings.TrimPrefix(rest, "error: ")
	}
	entry.Message = rest
	return entry
}

// ReadEntries is Read followed by Parse on every line.
func ReadEntries(path string, maxLines int) ([]Entry, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, Parse(line))
	}
	return entries, nil
}
