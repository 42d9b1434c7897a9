package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "service.log")

	log, err := New(file, "info")
	require.NoError(t, err)

	log.Info("booking committed: contract=%d", 42)
	log.Debug("hidden at info level")
	_ = log.Close()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "booking committed: contract=42")
	assert.NotContains(t, string(data), "hidden at info level")
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}

func TestParseLevel_DefaultsToInfo(t *testing.T) {
	lvl, err := parseLevel("")
	require.NoError(t, err)
	assert.Equal(t, "info", lvl.String())

	lvl, err = parseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, "warn", lvl.String())
}
