package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CITYPLAN_CONFIG", "CITYPLAN_DB", "CITYPLAN_LOG_USE_CASES", "CITYPLAN_CURRENCY", "CITYPLAN_EXPORT_FORMAT"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, home, body string) string {
	t.Helper()
	path := DefaultPath(home)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFrom_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()

	cfg, err := LoadFrom(home)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".cityplan", "cityplan.db"), cfg.DBPath)
	assert.False(t, cfg.LogUseCases)
	assert.Equal(t, "$", cfg.Currency)
	assert.Equal(t, "json", cfg.ExportFormat)
	assert.Empty(t, cfg.Source)
}

func TestLoadFrom_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	path := writeConfig(t, home, "db_path: ~/plans/city.db\nlog_use_cases: true\ncurrency: \"€\"\n")

	cfg, err := LoadFrom(home)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "plans", "city.db"), cfg.DBPath)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, "€", cfg.Currency)
	assert.Equal(t, "json", cfg.ExportFormat, "unset keys keep their defaults")
	assert.Equal(t, path, cfg.Source)
}

func TestLoadFrom_EmptyValuesInFileFallBack(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	writeConfig(t, home, "db_path: \"\"\ncurrency: \"\"\n")

	cfg, err := LoadFrom(home)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".cityplan", "cityplan.db"), cfg.DBPath)
	assert.Equal(t, "$", cfg.Currency)
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	writeConfig(t, home, "currency: \"€\"\nlog_use_cases: true\n")

	t.Setenv("CITYPLAN_DB", ":memory:")
	t.Setenv("CITYPLAN_CURRENCY", "£")
	t.Setenv("CITYPLAN_LOG_USE_CASES", "false")
	t.Setenv("CITYPLAN_EXPORT_FORMAT", "yaml")

	cfg, err := LoadFrom(home)
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, "£", cfg.Currency)
	assert.False(t, cfg.LogUseCases)
	assert.Equal(t, "yaml", cfg.ExportFormat)
}

func TestLoadFrom_InvalidBoolEnvIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("CITYPLAN_LOG_USE_CASES", "sometimes")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.False(t, cfg.LogUseCases)
}

func TestLoadFrom_ExplicitConfigPath(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("export_format: yaml\n"), 0o644))
	t.Setenv("CITYPLAN_CONFIG", path)

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.ExportFormat)
	assert.Equal(t, path, cfg.Source)
}

func TestLoadFrom_ExplicitConfigMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv("CITYPLAN_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := LoadFrom(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read")
}

func TestLoadFrom_MalformedFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	writeConfig(t, home, "currency: [unterminated\n")

	_, err := LoadFrom(home)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: parse")
}

func TestLoadFrom_InvalidExportFormat(t *testing.T) {
	clearEnv(t)
	t.Setenv("CITYPLAN_EXPORT_FORMAT", "xml")

	_, err := LoadFrom(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export_format")
}
