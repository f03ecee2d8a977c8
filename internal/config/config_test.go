package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 8080

[database]
host = "localhost"
port = 5432
user = "booking"
password = "secret"
dbname = "booking"

[logs]
level = "debug"

[metrics]
enabled = true
path = "/metrics"
service_name = "booking-service"

[redis]
enabled = true
addr = "localhost:6379"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "booking", cfg.Database.DBName)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)

	// Дефолты применяются к незаполненным полям
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "notifications:events", cfg.Redis.Channel)
}

func TestLoad_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", DBName: "booking", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=booking sslmode=disable", cfg.DSN())
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing port",
			content: `
[database]
host = "localhost"
dbname = "booking"
`,
		},
		{
			name: "missing database host",
			content: `
[server]
http_port = 8080
[database]
dbname = "booking"
`,
		},
		{
			name: "metrics enabled without path",
			content: `
[server]
http_port = 8080
[database]
host = "localhost"
dbname = "booking"
[metrics]
enabled = true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("no-such-file.toml")
	require.Error(t, err)
}
