package core

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// DefaultLogger implements Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() Logger {
	return &DefaultLogger{}
}

// LogEntry is a single message recorded by a LogCollector
type LogEntry struct {
	Time    time.Time
	Message string
}

// LogCollector keeps log messages in memory until the owner flushes them.
// The interactive viewer owns the terminal, so diagnostics are collected here
// and written out at shutdown. Safe for concurrent use.
type LogCollector struct {
	mu      sync.Mutex
	entries []LogEntry
	now     func() time.Time
}

// NewLogCollector creates an empty collector
func NewLogCollector() *LogCollector {
	return &LogCollector{now: time.Now}
}

// Printf records a formatted message with the current time
func (lc *LogCollector) Printf(format string, args ...interface{}) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")

	lc.mu.Lock()
	defer lc.mu.Unlock()
	lc.entries = append(lc.entries, LogEntry{Time: lc.now(), Message: msg})
}

// Entries returns a copy of the recorded entries
func (lc *LogCollector) Entries() []LogEntry {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return append([]LogEntry(nil), lc.entries...)
}

// WriteTo writes every entry as "<age>s ago: <message>", age measured from now
func (lc *LogCollector) WriteTo(w io.Writer) (int64, error) {
	now := lc.now()
	var written int64
	for _, e := range lc.Entries() {
		n, err := fmt.Fprintf(w, "%.02fs ago: %s\n", now.Sub(e.Time).Seconds(), e.Message)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// Flush writes all entries to the named file, replacing its contents
func (lc *LogCollector) Flush(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	if _, err := lc.WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write log file: %w", err)
	}
	return file.Close()
}
