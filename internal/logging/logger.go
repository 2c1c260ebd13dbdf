// Package logging provides the leveled, optionally colored console logger
// and the structured log-file sink, both backed by zap.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/backmassage/renamer/internal/config"
	"github.com/backmassage/renamer/internal/term"
)

// SuccessLevel marks completed renames. It sorts below zap's Debug level,
// so every enabler in this package admits it explicitly.
const SuccessLevel = zapcore.Level(-2)

// Logger provides Info/Success/Warn/Error/Debug with an optional file sink.
type Logger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
	file  *os.File
	runID string
}

// NewLogger configures terminal colors from cfg and builds the console
// core. When cfg.LogFile is set, a JSON core appending to that file is
// teed in, tagged with a per-run ID. Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	minLevel := zapcore.InfoLevel
	if cfg.Verbose {
		minLevel = zapcore.DebugLevel
	}

	console := zapcore.NewConsoleEncoder(consoleEncoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(console, zapcore.Lock(os.Stdout), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return enabled(minLevel, l) && l < zapcore.ErrorLevel
		})),
		zapcore.NewCore(console, zapcore.Lock(os.Stderr), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= zapcore.ErrorLevel
		})),
	}

	runID := uuid.NewString()
	var file *os.File
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		file = f
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoderConfig()),
			zapcore.AddSync(f),
			zap.LevelEnablerFunc(func(l zapcore.Level) bool { return enabled(minLevel, l) }),
		).With([]zapcore.Field{zap.String("run", runID)})
		cores = append(cores, fileCore)
	}

	l := New(zapcore.NewTee(cores...))
	l.file = file
	l.runID = runID
	return l, nil
}

// New wraps an existing core. Tests use it with zaptest/observer.
func New(core zapcore.Core) *Logger {
	base := zap.New(core)
	return &Logger{base: base, sugar: base.Sugar(), runID: uuid.NewString()}
}

// RunID identifies this invocation in the log file.
func (l *Logger) RunID() string { return l.runID }

// Close flushes buffered entries and closes the log file if one was opened.
func (l *Logger) Close() error {
	_ = l.base.Sync()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func enabled(minLevel, l zapcore.Level) bool {
	return l == SuccessLevel || l >= minLevel
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	if ce := l.base.Check(SuccessLevel, fmt.Sprintf(format, args...)); ce != nil {
		ce.Write()
	}
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs at ERROR level (red) to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Debug logs at DEBUG level (cyan) only when verbose.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.sugar.Debugf(format, args...)
}
