package logging_test

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/tabprep/pkg/domain/types"
	"github.com/m-mizutani/tabprep/pkg/utils/logging"
)

func TestConfigure(t *testing.T) {
	t.Run("configure with json format to stdout", func(t *testing.T) {
		gt.NoError(t, logging.Configure("json", "info", "stdout"))
	})

	t.Run("configure with text format", func(t *testing.T) {
		gt.NoError(t, logging.Configure("text", "debug", "-"))
	})

	t.Run("configure with file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tabprep.log")
		gt.NoError(t, logging.Configure("json", "warn", path))
		gt.NoError(t, logging.Configure("text", "info", "stdout"))
	})

	t.Run("configure with writer", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, logging.ConfigureWriter("json", "info", &buf))
		logging.Default().Info("to writer")
		gt.True(t, strings.Contains(buf.String(), "to writer"))
		gt.NoError(t, logging.Configure("text", "info", "stdout"))
	})

	t.Run("configure with invalid format returns error", func(t *testing.T) {
		gt.Error(t, logging.Configure("invalid", "info", "stdout"))
	})

	t.Run("configure with invalid level returns error", func(t *testing.T) {
		gt.Error(t, logging.Configure("json", "invalid", "stdout"))
	})
}

func TestIsStdout(t *testing.T) {
	gt.True(t, logging.IsStdout("-"))
	gt.True(t, logging.IsStdout("stdout"))
	gt.True(t, logging.IsStdout(""))
	gt.False(t, logging.IsStdout("stderr"))
	gt.False(t, logging.IsStdout("tabprep.log"))
}

func TestParseLevel(t *testing.T) {
	level := gt.R1(logging.ParseLevel("WARN")).NoError(t)
	gt.V(t, level).Equal(slog.LevelWarn)

	_, err := logging.ParseLevel("trace")
	gt.Error(t, err)
}

func TestNew(t *testing.T) {
	t.Run("json output masks sentry DSN", func(t *testing.T) {
		var buf bytes.Buffer
		logger := gt.R1(logging.New(&buf, "json", slog.LevelInfo)).NoError(t)

		logger.Info("configured", "dsn", types.SentryDSN("https://key@sentry.example.com/1"))
		gt.True(t, strings.Contains(buf.String(), "configured"))
		gt.False(t, strings.Contains(buf.String(), "key@sentry"))
	})

	t.Run("level filters records", func(t *testing.T) {
		var buf bytes.Buffer
		logger := gt.R1(logging.New(&buf, "json", slog.LevelError)).NoError(t)

		logger.Warn("ignored")
		gt.V(t, buf.Len()).Equal(0)
	})
}

func TestDefault(t *testing.T) {
	logger := logging.Default()
	logger.Info("test message", "key", "value")
}
