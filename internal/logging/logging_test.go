package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/docsession/internal/config"
	"github.com/unifiedui/docsession/internal/logging"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logging.ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, logging.ParseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, logging.ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, logging.ParseLevel("loud"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(config.LogConfig{Format: "json"}, &buf)

	logger.Info().Str("database", "db").Msg("collection created")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "collection created", entry["message"])
	assert.Equal(t, "db", entry["database"])
	assert.Contains(t, entry, "time")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(config.LogConfig{Format: "console"}, &buf)

	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestNew_File(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "docsession.log")
	logger := logging.New(config.LogConfig{Format: "json", File: path}, &buf)

	logger.Info().Msg("to both")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to both")
	assert.Contains(t, buf.String(), "to both")
}
