package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	prefix         = color.New(color.FgCyan).Sprint("[autocommit] ")
	debugColor     = color.New(color.FgHiBlack).SprintFunc()
	errorColor     = color.New(color.FgRed).SprintFunc()
	warnColor      = color.New(color.FgYellow).SprintFunc()
	infoColor      = color.New(color.FgGreen).SprintFunc()
	highlightColor = color.New(color.FgYellow).Add(color.Bold).SprintFunc()
)

// LogLevel is the minimum severity a Logger emits
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	CriticalLevel
)

// DefaultLevel is used when no level is configured
const DefaultLevel = InfoLevel

var levelNames = map[string]LogLevel{
	"DEBUG":    DebugLevel,
	"INFO":     InfoLevel,
	"WARN":     WarnLevel,
	"WARNING":  WarnLevel,
	"ERROR":    ErrorLevel,
	"CRITICAL": CriticalLevel,
	"FATAL":    CriticalLevel,
}

// ParseLevel maps a level name such as "info" or "WARNING" to a LogLevel.
func ParseLevel(name string) (LogLevel, error) {
	if level, ok := levelNames[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return level, nil
	}
	return DefaultLevel, fmt.Errorf("unknown log level %q", name)
}

func (l LogLevel) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARNING"
	case ErrorLevel:
		return "ERROR"
	case CriticalLevel:
		return "CRITICAL"
	default:
		return fmt.Sprintf("LogLevel(%d)", int(l))
	}
}

// Logger wraps the standard logger with custom formatting
type Logger struct {
	*log.Logger
	level     LogLevel
	out       io.Writer
	timestamp bool
}

type Option func(*Logger)

func WithLogLevel(level LogLevel) Option {
	return func(l *Logger) {
		l.level = level
	}
}

func WithTimestamp() Option {
	return func(l *Logger) {
		l.timestamp = true
	}
}

// WithOutput redirects log lines, stderr by default
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.out = w
	}
}

// New creates a new Logger instance
func New(opts ...Option) *Logger {
	l := &Logger{
		level: DefaultLevel,
		out:   os.Stderr,
	}
	for _, opt := range opts {
		opt(l)
	}

	flags := 0
	if l.timestamp {
		flags = log.LstdFlags
	}
	l.Logger = log.New(l.out, prefix, flags)
	return l
}

// Level returns the minimum level this logger emits
func (l *Logger) Level() LogLevel {
	return l.level
}

// Enabled reports whether messages at level would be written
func (l *Logger) Enabled(level LogLevel) bool {
	return level >= l.level
}

// Debug logs a dimmed message, only shown at DEBUG level
func (l *Logger) Debug(format string, v ...interface{}) {
	if l.Enabled(DebugLevel) {
		l.Printf(debugColor(format), v...)
	}
}

// Info logs an info message with green color
func (l *Logger) Info(format string, v ...interface{}) {
	if l.Enabled(InfoLevel) {
		l.Printf(infoColor(format), v...)
	}
}

// Warn logs a warning with yellow color
func (l *Logger) Warn(format string, v ...interface{}) {
	if l.Enabled(WarnLevel) {
		l.Printf(warnColor("WARNING: "+format), v...)
	}
}

// Error logs an error message with red color
func (l *Logger) Error(format string, v ...interface{}) {
	if l.Enabled(ErrorLevel) {
		l.Printf(errorColor("ERROR: "+format), v...)
	}
}

// MultiColor logs a message with multiple color segments at the given level
func (l *Logger) MultiColor(level LogLevel, segments ...ColoredSegment) {
	if !l.Enabled(level) {
		return
	}
	var parts []string
	for _, seg := range segments {
		parts = append(parts, seg.Color(seg.Text))
	}
	l.Println(strings.Join(parts, ""))
}

// ColoredSegment represents a text segment with its color
type ColoredSegment struct {
	Text  string
	Color func(a ...interface{}) string
}

func ErrorSegment(text string) ColoredSegment {
	return ColoredSegment{Text: text, Color: errorColor}
}

func HighlightSegment(text string) ColoredSegment {
	return ColoredSegment{Text: text, Color: highlightColor}
}

func InfoSegment(text string) ColoredSegment {
	return ColoredSegment{Text: text, Color: infoColor}
}
