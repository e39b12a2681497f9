package log

import (
	"context"
	"io"
	"os"

	"github.com/localsub/localsub/option"

	E "github.com/sagernet/sing/common/exceptions"
)

var std ContextLogger

func init() {
	std = NewFactory(Formatter{DisableTimestamp: true}, os.Stderr).Logger()
}

func StdLogger() ContextLogger {
	return std
}

func SetStdLogger(logger ContextLogger) {
	std = logger
}

// New builds a logger factory from configuration, writing to stderr, stdout
// or an append-only file depending on options.Output.
func New(options option.LogOptions) (Factory, error) {
	if options.Disabled {
		return NewNOPFactory(), nil
	}
	var logWriter io.Writer
	var logFile *os.File
	switch options.Output {
	case "", "stderr":
		logWriter = os.Stderr
	case "stdout":
		logWriter = os.Stdout
	default:
		var err error
		logFile, err = os.OpenFile(options.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, E.Cause(err, "open log output")
		}
		logWriter = logFile
	}
	factory := NewFactory(Formatter{
		DisableColors:    options.DisableColor || logFile != nil,
		DisableTimestamp: !options.Timestamp,
	}, logWriter)
	if options.Level != "" {
		level, err := ParseLevel(options.Level)
		if err != nil {
			return nil, E.Cause(err, "parse log level")
		}
		factory.SetLevel(level)
	} else {
		factory.SetLevel(LevelInfo)
	}
	return factory, nil
}

func Debug(args ...any) {
	std.Debug(args...)
}

func Info(args ...any) {
	std.Info(args...)
}

func Warn(args ...any) {
	std.Warn(args...)
}

func Error(args ...any) {
	std.Error(args...)
}

func Fatal(args ...any) {
	std.Fatal(args...)
}

func InfoContext(ctx context.Context, args ...any) {
	std.InfoContext(ctx, args...)
}

func ErrorContext(ctx context.Context, args ...any) {
	std.ErrorContext(ctx, args...)
}
