// Package logger is the process-wide slog facade used by the altvsync CLI and packages.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// OutputFormat selects the log handler.
type OutputFormat string

// Supported output formats.
const (
	// FormatPretty is human readable, colored when writing to a terminal.
	FormatPretty OutputFormat = "pretty"
	FormatText   OutputFormat = "text"
	FormatJSON   OutputFormat = "json"
)

var (
	// testOutput is used to capture log output during tests
	testOutput   io.Writer
	testOutputMu sync.Mutex
)

// Fields is a type alias for log fields to make the API cleaner
type Fields map[string]interface{}

var (
	logger       *slog.Logger
	currentLevel = slog.LevelInfo
	noColor      bool
)

// SetTestOutput sets the output writer for testing purposes
func SetTestOutput(w io.Writer) {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	testOutput = w
}

// UnsetTestOutput resets the test output to nil
func UnsetTestOutput() {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	testOutput = nil
}

// Logs go to stderr so that report output on stdout stays machine readable.
func getOutput() io.Writer {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	if testOutput != nil {
		return testOutput
	}
	return os.Stderr
}

// SetNoColor disables colored output for loggers created afterwards.
func SetNoColor(disabled bool) {
	noColor = disabled
}

// ParseFormat maps a flag value to an OutputFormat, falling back to FormatPretty.
func ParseFormat(s string) OutputFormat {
	switch OutputFormat(strings.ToLower(s)) {
	case FormatText:
		return FormatText
	case FormatJSON:
		return FormatJSON
	default:
		return FormatPretty
	}
}

// InitLogger initializes the global logger for CLI operations.
func InitLogger(logLevel string, format OutputFormat) {
	switch strings.ToLower(logLevel) {
	case "debug":
		currentLevel = slog.LevelDebug
	case "info":
		currentLevel = slog.LevelInfo
	case "warn", "warning":
		currentLevel = slog.LevelWarn
	case "error":
		currentLevel = slog.LevelError
	default:
		currentLevel = slog.LevelInfo // fallback to info level
	}

	logger = slog.New(newHandler(getOutput(), format, currentLevel))
}

// SetOutputFormat swaps the handler of the global logger, keeping its level.
func SetOutputFormat(format OutputFormat) {
	logger = slog.New(newHandler(getOutput(), format, currentLevel))
}

func newHandler(w io.Writer, format OutputFormat, level slog.Level) slog.Handler {
	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case FormatText:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	default:
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    noColor || !isTerminal(w),
		})
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// GetLogger returns the configured logger instance.
func GetLogger() *slog.Logger {
	if logger == nil {
		// Initialize with default settings if not already initialized
		InitLogger("info", FormatPretty)
	}
	return logger
}

// Info logs an info message.
func Info(msg string, fields ...Fields) {
	attrs := mergeFields(fields...)
	GetLogger().Info(msg, attrs...)
}

// Debug logs a debug message (only shown when debug level is enabled).
func Debug(msg string, fields ...Fields) {
	attrs := mergeFields(fields...)
	GetLogger().Debug(msg, attrs...)
}

// Error logs an error message.
func Error(msg string, fields ...Fields) {
	attrs := mergeFields(fields...)
	GetLogger().Error(msg, attrs...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...Fields) {
	attrs := mergeFields(fields...)
	GetLogger().Warn(msg, attrs...)
}

// Success logs a success message as info with success indicator.
func Success(msg string, fields ...Fields) {
	allFields := mergeFields(fields...)
	allFields = append(allFields, "status", "success")
	GetLogger().Info(msg, allFields...)
}

// mergeFields merges multiple field maps into one slice of key-value pairs for slog.
func mergeFields(fields ...Fields) []interface{} {
	result := []interface{}{}
	for _, field := range fields {
		for k, v := range field {
			result = append(result, k, v)
		}
	}
	return result
}
