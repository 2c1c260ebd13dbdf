package logging

import (
	"go.uber.org/zap/zapcore"

	"github.com/backmassage/renamer/internal/term"
)

// LevelName returns the tag printed for l, e.g. "SUCCESS" or "WARN".
func LevelName(l zapcore.Level) string {
	if l == SuccessLevel {
		return "SUCCESS"
	}
	return l.CapitalString()
}

func levelColor(l zapcore.Level) string {
	switch {
	case l == SuccessLevel:
		return term.Green
	case l == zapcore.DebugLevel:
		return term.Cyan
	case l == zapcore.InfoLevel:
		return term.Blue
	case l == zapcore.WarnLevel:
		return term.Yellow
	default:
		return term.Red
	}
}

// consoleLevel renders "[LEVEL]", colored when term colors are on.
func consoleLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(term.Paint(levelColor(l), "["+LevelName(l)+"]"))
}

func fileLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(LevelName(l))
}

// consoleEncoderConfig yields lines of the form
// "2006-01-02 15:04:05 [INFO] message".
func consoleEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05"),
		EncodeLevel:      consoleLevel,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

func fileEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeLevel:    fileLevel,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}
