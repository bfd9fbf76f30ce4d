package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/clog/hooks"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/m-mizutani/tabprep/pkg/domain/types"
)

var defaultLogger = slog.New(slog.NewTextHandler(os.Stdout, nil))

func init() {
	_ = Configure("text", "info", "stdout")
}

// Default returns the default logger
func Default() *slog.Logger {
	return defaultLogger
}

var levelMap = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel converts a level name (debug, info, warn, error) to slog.Level.
func ParseLevel(logLevel string) (slog.Level, error) {
	level, ok := levelMap[strings.ToLower(logLevel)]
	if !ok {
		return 0, goerr.Wrap(types.ErrInvalidOption, "invalid log level", goerr.V("value", logLevel))
	}
	return level, nil
}

// Configure replaces the default logger. logOutput is "stdout" (or "-"), "stderr" or a file path.
func Configure(logFormat, logLevel, logOutput string) error {
	if _, err := ParseLevel(logLevel); err != nil {
		return err
	}

	w, err := openOutput(logOutput)
	if err != nil {
		return err
	}

	return ConfigureWriter(logFormat, logLevel, w)
}

// ConfigureWriter replaces the default logger with one writing to w.
func ConfigureWriter(logFormat, logLevel string, w io.Writer) error {
	level, err := ParseLevel(logLevel)
	if err != nil {
		return err
	}

	logger, err := New(w, logFormat, level)
	if err != nil {
		return err
	}

	defaultLogger = logger
	return nil
}

// New builds a logger writing to w. Values tagged `masq:"secret"` and Sentry DSNs are masked.
func New(w io.Writer, logFormat string, level slog.Level) (*slog.Logger, error) {
	filter := masq.New(
		masq.WithTag("secret"),
		masq.WithType[types.SentryDSN](masq.MaskWithSymbol('*', 16)),
	)

	var handler slog.Handler
	switch logFormat {
	case "text":
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithSource(true),
			clog.WithColorMap(&clog.ColorMap{
				Level: map[slog.Level]*color.Color{
					slog.LevelDebug: color.New(color.FgGreen, color.Bold),
					slog.LevelInfo:  color.New(color.FgCyan, color.Bold),
					slog.LevelWarn:  color.New(color.FgYellow, color.Bold),
					slog.LevelError: color.New(color.FgRed, color.Bold),
				},
				LevelDefault: color.New(color.FgBlue, color.Bold),
				Time:         color.New(color.FgWhite),
				Message:      color.New(color.FgHiWhite),
				AttrKey:      color.New(color.FgHiCyan),
				AttrValue:    color.New(color.FgHiWhite),
			}),
			clog.WithAttrHook(hooks.GoErr()),
			clog.WithReplaceAttr(filter),
		)

	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   true,
			Level:       level,
			ReplaceAttr: filter,
		})

	default:
		return nil, goerr.Wrap(types.ErrInvalidOption, "invalid log format, should be 'json' or 'text'", goerr.V("value", logFormat))
	}

	return slog.New(handler), nil
}

// IsStdout reports whether logOutput names the standard output.
func IsStdout(logOutput string) bool {
	switch logOutput {
	case "stdout", "-", "":
		return true
	}
	return false
}

func openOutput(logOutput string) (io.Writer, error) {
	switch {
	case IsStdout(logOutput):
		return os.Stdout, nil
	case logOutput == "stderr":
		return os.Stderr, nil
	}

	fd, err := os.Create(filepath.Clean(logOutput))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open log file", goerr.V("path", logOutput))
	}
	return fd, nil
}
