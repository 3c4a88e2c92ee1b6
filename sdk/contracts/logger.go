package contracts

import "time"

// LogLevel represents the severity level for logging.
// The zero value means "not configured" and is replaced by InfoLevel when
// options are applied.
type LogLevel int

const (
	// DebugLevel enables per-message diagnostics such as decoded MIDI bytes.
	DebugLevel LogLevel = iota + 1
	// InfoLevel reports lifecycle events: access granted, listeners installed.
	InfoLevel
	// WarnLevel reports degraded behavior: access denied, missing guest exports.
	WarnLevel
	// ErrorLevel reports failures that the bridge swallowed on the caller's behalf.
	ErrorLevel
	// FatalLevel logs and terminates the process.
	FatalLevel
)

// LogDestination specifies where the log messages should be directed.
type LogDestination string

const (
	// ConsoleLog directs log messages to stderr.
	ConsoleLog LogDestination = "console"
	// FileLog directs log messages to a file.
	FileLog LogDestination = "file"
)

// Field builds a structured log field. Each call returns a new Field; the
// receiver is only used as a factory.
type Field interface {
	Bool(key string, val bool) Field
	Int(key string, val int) Field
	Float64(key string, val float64) Field
	String(key string, val string) Field
	Time(key string, val time.Time) Field
	Int64(key string, val int64) Field
	Error(key string, val error) Field
	Uint64(key string, val uint64) Field
	Uint8(key string, val uint8) Field
}

// Logger provides leveled, structured logging.
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Debug(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	Field() Field

	SetLevel(level LogLevel)
	SetDestination(dest LogDestination, filePath ...string)
}
