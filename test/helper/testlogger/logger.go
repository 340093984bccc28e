// Package testlogger records log calls so tests can assert on them
package testlogger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/LerianStudio/lib-commons/commons/log"
)

// Levels as stored in LogEntry.Level.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelFatal = "FATAL"
)

// LogEntry is one recorded call.
type LogEntry struct {
	Level   string
	Message string
}

// TestLogger is a log.Logger that keeps every message in memory.
type TestLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// New returns an empty TestLogger.
func New() *TestLogger {
	return &TestLogger{}
}

func (l *TestLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, LogEntry{Level: level, Message: msg})
}

func (l *TestLogger) Debug(args ...any)                 { l.record(LevelDebug, fmt.Sprint(args...)) }
func (l *TestLogger) Debugf(format string, args ...any) { l.record(LevelDebug, fmt.Sprintf(format, args...)) }
func (l *TestLogger) Debugln(args ...any)               { l.record(LevelDebug, fmt.Sprintln(args...)) }
func (l *TestLogger) Info(args ...any)                  { l.record(LevelInfo, fmt.Sprint(args...)) }
func (l *TestLogger) Infof(format string, args ...any)  { l.record(LevelInfo, fmt.Sprintf(format, args...)) }
func (l *TestLogger) Infoln(args ...any)                { l.record(LevelInfo, fmt.Sprintln(args...)) }
func (l *TestLogger) Warn(args ...any)                  { l.record(LevelWarn, fmt.Sprint(args...)) }
func (l *TestLogger) Warnf(format string, args ...any)  { l.record(LevelWarn, fmt.Sprintf(format, args...)) }
func (l *TestLogger) Warnln(args ...any)                { l.record(LevelWarn, fmt.Sprintln(args...)) }
func (l *TestLogger) Error(args ...any)                 { l.record(LevelError, fmt.Sprint(args...)) }
func (l *TestLogger) Errorf(format string, args ...any) { l.record(LevelError, fmt.Sprintf(format, args...)) }
func (l *TestLogger) Errorln(args ...any)               { l.record(LevelError, fmt.Sprintln(args...)) }
func (l *TestLogger) Fatal(args ...any)                 { l.record(LevelFatal, fmt.Sprint(args...)) }
func (l *TestLogger) Fatalf(format string, args ...any) { l.record(LevelFatal, fmt.Sprintf(format, args...)) }
func (l *TestLogger) Fatalln(args ...any)               { l.record(LevelFatal, fmt.Sprintln(args...)) }

// WithFields ignores the fields and returns the same recorder.
func (l *TestLogger) WithFields(fields ...any) log.Logger { return l }

// WithDefaultMessageTemplate ignores the template and returns the same recorder.
func (l *TestLogger) WithDefaultMessageTemplate(template string) log.Logger { return l }

func (l *TestLogger) Sync() error { return nil }

// AsLogger returns the recorder in the pointer form taken by copilot.Options.
func (l *TestLogger) AsLogger() *log.Logger {
	var logger log.Logger = l

	return &logger
}

// GetEntries returns a copy of the recorded entries.
func (l *TestLogger) GetEntries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]LogEntry(nil), l.entries...)
}

// Messages returns the messages recorded at level, oldest first.
func (l *TestLogger) Messages(level string) []string {
	var msgs []string

	for _, entry := range l.GetEntries() {
		if entry.Level == level {
			msgs = append(msgs, entry.Message)
		}
	}

	return msgs
}

// Count returns how many messages were recorded at level.
func (l *TestLogger) Count(level string) int {
	return len(l.Messages(level))
}

// Contains reports whether one message at level holds every substring.
func (l *TestLogger) Contains(level string, substrings ...string) bool {
	for _, msg := range l.Messages(level) {
		if containsAll(msg, substrings) {
			return true
		}
	}

	return false
}

// Clear drops every recorded entry.
func (l *TestLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
}

func containsAll(msg string, substrings []string) bool {
	for _, s := range substrings {
		if !strings.Contains(msg, s) {
			return false
		}
	}

	return true
}
