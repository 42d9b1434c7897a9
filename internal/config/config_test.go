package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[database]
host = "db"
port = 5432
user = "coaching"
password = "from-file"
dbname = "coaching"

[redis]
addr = "redis:6379"

[catalog_service]
url = "http://catalog"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 8, cfg.Schedule.WorkStartHour)
	assert.Equal(t, 20, cfg.Schedule.WorkEndHour)
	assert.Equal(t, 30, cfg.Session.TTLMinutes)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "coaching", cfg.Kafka.TopicPrefix)
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("DB_PORT", "6543")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
}

func TestLoad_RejectsInvalidSchedule(t *testing.T) {
	body := minimalConfig + `
[schedule]
work_start_hour = 20
work_end_hour = 8
`
	_, err := Load(writeConfig(t, body))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_RejectsUnknownTimezone(t *testing.T) {
	body := minimalConfig + `
[schedule]
timezone = "Mars/Olympus_Mons"
`
	_, err := Load(writeConfig(t, body))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
