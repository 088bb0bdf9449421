package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettingsFrom("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettings_Environment(t *testing.T) {
	t.Setenv("ITAX_FORMAT", "JSON")
	t.Setenv("ITAX_RULES", " rules/fy2024.yaml ")
	t.Setenv("ITAX_LOG_LEVEL", "debug")
	t.Setenv("ITAX_DEBUG", "yes")
	t.Setenv("ITAX_SAVE_DIR", "/tmp/itax")

	s, err := LoadSettingsFrom("")
	require.NoError(t, err)
	assert.Equal(t, Settings{
		Format:   "json",
		Rules:    "rules/fy2024.yaml",
		LogLevel: "debug",
		Debug:    true,
		SaveDir:  "/tmp/itax",
	}, s)
}

func TestLoadSettings_BadLevel(t *testing.T) {
	t.Setenv("ITAX_LOG_LEVEL", "chatty")
	_, err := LoadSettingsFrom("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ITAX_LOG_LEVEL")
}

func TestLoadSettings_DotEnv(t *testing.T) {
	// the variable set by the file is process-wide; clear it when done
	t.Cleanup(func() { os.Unsetenv("ITAX_SAVE_DIR") })
	t.Setenv("ITAX_FORMAT", "csv")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ITAX_SAVE_DIR=from-dotenv\nITAX_FORMAT=yaml\n"), 0o644))

	s, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", s.SaveDir)
	assert.Equal(t, "csv", s.Format, "environment wins over .env")
}
