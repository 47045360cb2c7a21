package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WritesDefaultsOnFirstRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	cfg, styles, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "sqlite3", cfg.Store.Driver)
	assert.Equal(t, filepath.Join(dir, "nested", "ips.db"), cfg.Store.DSN)
	assert.Equal(t, "London", cfg.Prayer.City)
	assert.Equal(t, "UK", cfg.Prayer.Country)
	assert.Equal(t, 2, cfg.Prayer.Method)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Alarm.SnoozeInterval())
	assert.NotEmpty(t, cfg.KeyMap)
	assert.Equal(t, DefaultStyles(), styles)

	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(dir, "nested", "styles.json"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "prayer")
}

func TestLoad_ReadsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"store": {"driver": "file", "dsn": "`+filepath.ToSlash(filepath.Join(dir, "data.json"))+`"},
		"prayer": {"city": "Cairo", "country": "Egypt", "method": 5},
		"alarm": {"snooze_minutes": 10},
		"http_timeout": "3s",
		"keymap": {"QuitApp": "ctrl+q"}
	}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "styles.json"), []byte(`{"accent_color": "99"}`), 0644))

	t.Setenv("IPS_PRAYER_CITY", "Mecca")

	cfg, styles, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Store.Driver)
	assert.Equal(t, "Mecca", cfg.Prayer.City)
	assert.Equal(t, "Egypt", cfg.Prayer.Country)
	assert.Equal(t, 5, cfg.Prayer.Method)
	assert.Equal(t, 10*time.Minute, cfg.Alarm.SnoozeInterval())
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "ctrl+q", cfg.KeyMap["quitapp"])

	assert.Equal(t, "99", styles.AccentColor)
	assert.Equal(t, DefaultStyles().BorderColor, styles.BorderColor)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	_, _, err := Load(path)
	assert.Error(t, err)
}
