package logging

import "time"

// Field is a key-value pair attached to a log entry
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field        { return Field{Key: key, Value: value} }
func Int(key string, value int) Field       { return Field{Key: key, Value: value} }
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }
func Bool(key string, value bool) Field     { return Field{Key: key, Value: value} }
func Strings(key string, values []string) Field {
	return Field{Key: key, Value: append([]string(nil), values...)}
}

// Duration renders d with time.Duration.String
func Duration(key string, d time.Duration) Field {
	return Field{Key: key, Value: d.String()}
}

// Error records err under "error"; a nil error is recorded as null
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field { return Field{Key: key, Value: value} }

// Domain fields

func Component(name string) Field      { return String("component", name) }
func Operation(op string) Field        { return String("operation", op) }
func RunID(id string) Field            { return String("run_id", id) }
func UnitID(id uint64) Field           { return Uint64("unit_id", id) }
func StreamID(id uint64) Field         { return Uint64("stream_id", id) }
func TableID(id uint64) Field          { return Uint64("table_id", id) }
func AbstractionLevel(level int) Field { return Int("abstraction_level", level) }
func Equation(ref string) Field        { return String("equation", ref) }
func MessageKey(key string) Field      { return String("message_key", key) }
func Count(n int) Field                { return Int("count", n) }
func Latency(d time.Duration) Field    { return Duration("latency", d) }
