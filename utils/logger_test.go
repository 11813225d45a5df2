package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogDirDefaultsAndOverride(t *testing.T) {
	t.Setenv("LOG_DIR", "")
	assert.Equal(t, filepath.Join("logs", "stylenest"), LogDir())

	t.Setenv("LOG_DIR", "/var/log/shop")
	assert.Equal(t, "/var/log/shop", LogDir())
}

func TestInitLoggerCreatesPrefixedFiles(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LOG_DIR", dir)

	require.NoError(t, InitLogger())

	LogInfo("checking info output")
	LogError("checking error output")
	LogDebug("checking debug output")

	date := time.Now().Format("2006-01-02")
	for _, level := range []string{"info", "error", "debug"} {
		path := filepath.Join(dir, "stylenest-"+level+"-"+date+".log")
		content, err := os.ReadFile(path)
		require.NoError(t, err, "missing log file for level %s", level)
		assert.Contains(t, string(content), "checking "+level+" output")
	}
}

func TestLogRequestCarriesRequestID(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LOG_DIR", dir)
	require.NoError(t, InitLogger())

	LogRequest("req-abc-123", "GET", "/v1/products", "10.0.0.1", 200, 15*time.Millisecond)

	date := time.Now().Format("2006-01-02")
	content, err := os.ReadFile(filepath.Join(dir, "stylenest-info-"+date+".log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[req-abc-123] GET /v1/products")
}
