package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadEmptyPath(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, "icalendar.ics", c.Output)
	assert.Equal(t, "./static", c.Server.StaticDir)
	assert.Equal(t, "f1-races.ics", c.Server.CalendarFile)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://localhost:9000
  timeout: 5s
season: "2023"
skip_invalid_races: true
server:
  listen_address: 127.0.0.1:9090
  regenerate: "@every 8h"
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", c.API.BaseURL)
	assert.Equal(t, 5*time.Second, c.API.Timeout)
	assert.Equal(t, "f1calendar", c.API.UserAgent)
	assert.Equal(t, "2023", c.Season)
	assert.True(t, c.SkipInvalidRaces)
	assert.Equal(t, "127.0.0.1:9090", c.Server.ListenAddress)
	assert.Equal(t, "@every 8h", c.Server.Regenerate)
	// untouched keys keep their defaults
	assert.Equal(t, "./templates/index.html", c.Server.Template)
	assert.Equal(t, 10*time.Second, c.Server.ReadTimeout)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "api:\n  timeout: soon\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "output: \"\"\n"))
	assert.ErrorContains(t, err, "output is required")
}
