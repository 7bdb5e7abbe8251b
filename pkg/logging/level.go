package logging

import "strings"

// Level is the minimum severity a logger emits
type Level int

const (
	// DebugLevel traces individual lattice expansions and rule decisions
	DebugLevel Level = iota
	// InfoLevel reports one line per validation run
	InfoLevel
	// WarnLevel reports recoverable input problems such as duplicate labels
	WarnLevel
	// ErrorLevel reports internal invariant violations
	ErrorLevel
)

// String returns the upper-case level name
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name to a Level. Unknown names map to InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}
