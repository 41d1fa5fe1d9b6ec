// Package logging provides structured logging for the ring simulation. It
// wraps log/slog with JSON output, per-run IDs carried in the context and
// compact formatting of the floating point values the physics produces.
package logging

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
)

// LevelEnv is the environment variable that selects the log level
const LevelEnv = "RINGS_LOG_LEVEL"

// floatPrecision is the number of decimals kept for float attributes
const floatPrecision = 3

// Logger wraps slog.Logger with run ID support
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger on stdout. The level is read from
// RINGS_LOG_LEVEL (DEBUG, INFO, WARN, ERROR) and defaults to INFO.
func NewLogger() *Logger {
	return NewLoggerTo(os.Stdout, getLogLevelFromEnv())
}

// NewLoggerTo creates a JSON logger writing to w. Used when stdout belongs
// to a terminal renderer.
func NewLoggerTo(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: compactFloats,
	})
	return &Logger{slog.New(handler)}
}

// NewNopLogger returns a logger that discards everything
func NewNopLogger() *Logger {
	return NewLoggerTo(io.Discard, slog.LevelError+1)
}

// LogWithContext logs a message, adding the run ID from ctx when present
func (l *Logger) LogWithContext(ctx context.Context, level slog.Level, msg string, args ...any) {
	if runID := GetRunID(ctx); runID != "" {
		args = append(args, "run_id", runID)
	}
	l.Log(ctx, level, msg, args...)
}

// Info logs an informational message with context.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs a warning message with context.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelWarn, msg, args...)
}

// Error logs an error message with context.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.LogWithContext(ctx, slog.LevelError, msg, args...)
}

// Debug logs a debug message with context.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelDebug, msg, args...)
}

type runIDKey struct{}

// WithRunID tags ctx with a simulation run ID, generating one when empty
func WithRunID(ctx context.Context, runID string) context.Context {
	if runID == "" {
		runID = GenerateRunID()
	}
	return context.WithValue(ctx, runIDKey{}, runID)
}

// GetRunID returns the run ID stored in ctx, or ""
func GetRunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateRunID creates a random 16 character hex ID
func GenerateRunID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func getLogLevelFromEnv() slog.Level {
	level, _ := ParseLevel(os.Getenv(LevelEnv))
	return level
}

// ParseLevel maps a level name to a slog level. Unknown names yield INFO and false.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// compactFloats rounds float attributes so positions and speeds stay readable
func compactFloats(groups []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindFloat64 {
		return a
	}
	f := a.Value.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return slog.String(a.Key, fmt.Sprint(f))
	}
	scale := math.Pow(10, floatPrecision)
	return slog.Float64(a.Key, math.Round(f*scale)/scale)
}

// WrapError wraps an error with additional context information.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
