// Package notice collects operator-visible messages produced while a story is processed.
package notice

import (
	"fmt"
	"log/slog"
)

// Level classifies a notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
)

// Notice is a single message for the operator.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func (n Notice) String() string {
	return fmt.Sprintf("%s: %s", n.Level, n.Message)
}

// List accumulates notices in the order they were raised.
// The zero value is ready to use; a nil *List discards everything.
type List struct {
	items []Notice
}

// Info records an informational notice.
func (l *List) Info(format string, args ...any) {
	l.add(LevelInfo, format, args...)
}

// Success records a success notice.
func (l *List) Success(format string, args ...any) {
	l.add(LevelSuccess, format, args...)
}

// Warn records a warning and logs it.
func (l *List) Warn(format string, args ...any) {
	l.add(LevelWarning, format, args...)
}

func (l *List) add(level Level, format string, args ...any) {
	if l == nil {
		return
	}

	msg := fmt.Sprintf(format, args...)
	l.items = append(l.items, Notice{Level: level, Message: msg})

	if level == LevelWarning {
		slog.Warn(msg)
	} else {
		slog.Debug(msg, "level", string(level))
	}
}

// All returns a copy of the recorded notices.
func (l *List) All() []Notice {
	if l == nil {
		return nil
	}

	out := make([]Notice, len(l.items))
	copy(out, l.items)

	return out
}

// Warnings returns only the warning notices.
func (l *List) Warnings() []Notice {
	var out []Notice
	for _, n := range l.All() {
		if n.Level == LevelWarning {
			out = append(out, n)
		}
	}

	return out
}
