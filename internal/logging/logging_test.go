package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Level: "info", Format: FormatJSON}, &buf)

	l.Debug().Msg("hidden")
	l.Info().Str("field", "tds").Msg("visible")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "tds", entry["field"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewLoggerWithPath(t *testing.T) {
	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "tdsdose.log")
		result := NewLoggerWithPath(Config{Level: "info", Output: OutputFile, File: path})
		defer func() { _ = result.Close() }()

		assert.True(t, result.UsingFile)
		assert.False(t, result.FallbackUsed)
		assert.Equal(t, path, result.FilePath)
		assert.FileExists(t, path)
	})

	t.Run("missing path falls back", func(t *testing.T) {
		result := NewLoggerWithPath(Config{Output: OutputFile})
		assert.False(t, result.UsingFile)
		assert.True(t, result.FallbackUsed)
		assert.NotEmpty(t, result.FallbackReason)
		assert.NoError(t, result.Close())
	})
}

func TestFromContext(t *testing.T) {
	t.Run("no logger is disabled", func(t *testing.T) {
		l := FromContext(context.Background())
		assert.Equal(t, zerolog.Disabled, l.GetLevel())
	})

	t.Run("adds trace id", func(t *testing.T) {
		var buf bytes.Buffer
		base := NewLogger(Config{Level: "debug", Format: FormatJSON}, &buf)
		ctx := base.WithContext(context.Background())
		ctx = ContextWithTraceID(ctx, "trace-123")

		FromContext(ctx).Info().Msg("hello")

		assert.Contains(t, buf.String(), `"trace_id":"trace-123"`)
	})
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	l := ComponentLogger(NewLogger(Config{Format: FormatJSON}, &buf), "cli")
	l.Info().Msg("x")
	assert.Contains(t, buf.String(), `"component":"cli"`)
}

func TestTraceIDs(t *testing.T) {
	id := GenerateTraceID()
	_, err := ulid.ParseStrict(id)
	require.NoError(t, err)

	ctx := ContextWithTraceID(context.Background(), id)
	assert.Equal(t, id, TraceIDFromContext(ctx))
	assert.Equal(t, id, GetOrGenerateTraceID(ctx))
	assert.NotEqual(t, id, GetOrGenerateTraceID(context.Background()))
	assert.Empty(t, TraceIDFromContext(context.Background()))
}
