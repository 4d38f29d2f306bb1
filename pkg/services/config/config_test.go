package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/open5nippet/Capstone-Project-1/pkg/models/domain"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "./data", cfg.InputDir)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "energy_dashboard.log", cfg.Log.File)
	assert.Equal(t, ".csv", cfg.Ingest.Extension)
	assert.Equal(t, 1, cfg.Ingest.Workers)
	assert.Equal(t, domain.DefaultUnknownSlot, cfg.Ingest.UnknownSlot)
	assert.Equal(t, []string{"building_name", "building"}, cfg.Columns.Building)
	assert.Equal(t, 0.125, cfg.Report.SavingsTarget)
	assert.Equal(t, domain.DefaultSchema(), cfg.Schema())
}

func TestLoad_ValidYAML_OverridesDefaults(t *testing.T) {
	// Given
	// No indentation inside the backtick block to avoid YAML parsing errors
	path := writeFile(t, "campus.yaml", `input_dir: /srv/meters
output_dir: /srv/reports
log:
  level: debug
ingest:
  workers: 4
  unknown_slot: n/a
columns:
  kwh: [energy_kwh, kwh]
report:
  savings_target: 0.1`)

	// When
	cfg, err := Load(New(), path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "/srv/meters", cfg.InputDir)
	assert.Equal(t, "/srv/reports", cfg.OutputDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Ingest.Workers)
	assert.Equal(t, 0.1, cfg.Report.SavingsTarget)

	schema := cfg.Schema()
	kwh, ok := schema.Column(domain.ColumnKWh)
	require.True(t, ok)
	assert.Equal(t, []string{"energy_kwh", "kwh"}, kwh.Aliases)
	assert.True(t, kwh.Required)
	assert.Equal(t, "n/a", schema.UnknownSlot)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "campus.yaml", "input_dir: /from/file\n")
	t.Setenv("CAMPUS_ENERGY_INPUT_DIR", "/from/env")
	t.Setenv("CAMPUS_ENERGY_LOG_LEVEL", "warn")

	cfg, err := Load(New(), path)

	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.InputDir)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingFile_ReturnsConfigurationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := Load(New(), path)

	var cfgErr *domain.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, path, cfgErr.Path)
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	path := writeFile(t, "bad.yaml", "input_dir: a: b: bad")

	_, err := Load(New(), path)

	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("CAMPUS_ENERGY_OUTPUT_DIR", "")
	require.NoError(t, os.Unsetenv("CAMPUS_ENERGY_OUTPUT_DIR"))
	path := writeFile(t, ".env", "CAMPUS_ENERGY_OUTPUT_DIR=/from/dotenv\n")

	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env"), path))

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "/from/dotenv", cfg.OutputDir)
}

func TestConfig_YAML(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	data, err := cfg.YAML()
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, *cfg, decoded)
	assert.Contains(t, string(data), "savings_target: 0.125")
}

func TestBuildingRegistry(t *testing.T) {
	path := writeFile(t, "buildings.ini", `[buildings]
sci_blk = Science Block
LIB = Main Library
empty =
`)

	registry, err := NewBuildingRegistry(path)
	require.NoError(t, err)

	name, ok := registry.Lookup("sci_blk")
	assert.True(t, ok)
	assert.Equal(t, "Science Block", name)

	name, ok = registry.Lookup("Lib")
	assert.True(t, ok)
	assert.Equal(t, "Main Library", name)

	_, ok = registry.Lookup("empty")
	assert.False(t, ok)
	_, ok = registry.Lookup("gym")
	assert.False(t, ok)

	assert.ElementsMatch(t, []string{"sci_blk", "lib", "empty"}, registry.Stems())
}

func TestBuildingRegistry_MissingFile(t *testing.T) {
	_, err := NewBuildingRegistry(filepath.Join(t.TempDir(), "nope.ini"))
	assert.Error(t, err)
}
