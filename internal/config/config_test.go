package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"BRENT_CONFIG",
	"BRENT_SERVER_PORT", "BRENT_SERVER_READ_TIMEOUT",
	"BRENT_SECURITY_ALLOWED_ORIGINS", "BRENT_SECURITY_RATE_LIMIT_ENABLED",
	"BRENT_LOGGING_LEVEL", "BRENT_LOGGING_OUTPUT",
	"BRENT_DATASET_RETURNS_FILE", "BRENT_DATASET_CHANGE_POINT",
	"BRENT_EXPLORER_PLOT_DPI",
}

// clearEnv unsets every variable the tests touch for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range envVars {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.Security.AllowedOrigins)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "data/log_returns.npy", cfg.Dataset.ReturnsFile)
	assert.Equal(t, 8357, cfg.Dataset.ChangePoint)
	assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
	assert.Equal(t, "initial_analysis.png", cfg.Explorer.PlotFile)
	assert.Equal(t, 300, cfg.Explorer.PlotDPI)
	assert.Equal(t, 50, cfg.Explorer.HistogramBins)
	assert.Empty(t, cfg.Explorer.ReportFile)

	require.NoError(t, cfg.Validate())
}

func TestLoadFrom(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no file and no env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultPort, cfg.Server.Port)
				assert.Equal(t, DefaultChangePoint, cfg.Dataset.ChangePoint)
				assert.Empty(t, cfg.Source())
			},
		},
		{
			name: "file overrides defaults and keeps unspecified values",
			file: `
server:
  port: 9090
  read_timeout: 5s
dataset:
  returns_file: returns.npy
  change_point: 42
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, 42, cfg.Dataset.ChangePoint)
				assert.Equal(t, filepath.Join(filepath.Dir(cfg.Source()), "returns.npy"), cfg.Dataset.ReturnsFile)
				assert.NotEmpty(t, cfg.Source())
			},
		},
		{
			name: "env takes precedence over file",
			file: `
server:
  port: 9090
`,
			env: map[string]string{
				"BRENT_SERVER_PORT":              "7070",
				"BRENT_DATASET_CHANGE_POINT":     "3",
				"BRENT_SECURITY_ALLOWED_ORIGINS": "http://a.example,http://b.example",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7070, cfg.Server.Port)
				assert.Equal(t, 3, cfg.Dataset.ChangePoint)
				assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Security.AllowedOrigins)
			},
		},
		{
			name: "absolute paths in file are kept",
			file: `
dataset:
  returns_file: /srv/data/log_returns.npy
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/srv/data/log_returns.npy", cfg.Dataset.ReturnsFile)
			},
		},
		{
			name:    "negative change point is rejected",
			env:     map[string]string{"BRENT_DATASET_CHANGE_POINT": "-1"},
			wantErr: true,
		},
		{
			name:    "invalid port is rejected",
			file:    "server:\n  port: 70000\n",
			wantErr: true,
		},
		{
			name:    "unknown log output is rejected",
			env:     map[string]string{"BRENT_LOGGING_OUTPUT": "syslog"},
			wantErr: true,
		},
		{
			name:    "malformed env value",
			env:     map[string]string{"BRENT_SERVER_PORT": "not-a-number"},
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "server: [\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}

			cfg, err := LoadFrom(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoadUsesConfigEnvVar(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "dataset:\n  change_point: 11\n")
	t.Setenv("BRENT_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 11, cfg.Dataset.ChangePoint)
	assert.Equal(t, path, cfg.Source())
}

func TestLoadFromMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"/etc/brent", "data/x.npy", filepath.Join("/etc/brent", "data/x.npy")},
		{"/etc/brent", "/abs/x.npy", "/abs/x.npy"},
		{"/etc/brent", "", ""},
		{".", "x.npy", "x.npy"},
		{"", "x.npy", "x.npy"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolvePath(tt.base, tt.path), "base=%q path=%q", tt.base, tt.path)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "nope")))
}
