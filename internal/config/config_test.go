package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidinho/dash-leishmaniose/internal/aggregate"
	"github.com/tidinho/dash-leishmaniose/internal/model"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvSnapshotPath, "")
	dir := t.TempDir()

	cfg, info, err := LoadConfigWithInfo(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.False(t, info.FileFound)
	assert.False(t, info.PortSpecified)
	assert.Equal(t, 8501, cfg.Server.Port)
	assert.Equal(t, filepath.Join(dir, "mega_tratados.parquet"), cfg.Data.SnapshotPath)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.Data.DataDir)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	t.Setenv(EnvSnapshotPath, "")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[server]
port = 9000

[data]
snapshot_path = "/srv/casos.xlsx"
watch = false
debounce = "2s"

[dashboard]
top_n = 10
heatmap_radius = 30
indicator = "renda_media"
trend_line = false

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, info, err := LoadConfigWithInfo(path)
	require.NoError(t, err)
	assert.True(t, info.PortSpecified)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "/srv/casos.xlsx", cfg.Data.SnapshotPath)
	assert.False(t, cfg.Data.Watch)
	assert.Equal(t, 2*time.Second, cfg.Data.Debounce.Duration)
	assert.Equal(t, "debug", cfg.Log.Level)

	opts := cfg.ViewOptions()
	assert.Equal(t, 10, opts.TopN)
	assert.Equal(t, 30, opts.Heatmap.Radius)
	assert.Equal(t, aggregate.DefaultHeatBlur, opts.Heatmap.Blur)
	assert.Equal(t, model.IndicatorIncome, opts.Indicator)
	assert.False(t, opts.Trend)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverridesSnapshot(t *testing.T) {
	t.Setenv(EnvSnapshotPath, "/tmp/outro.parquet")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/outro.parquet", cfg.Data.SnapshotPath)
}

func TestValidate_Rejects(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dashboard.HeatmapBlur = 31
	assert.ErrorIs(t, cfg.Validate(), aggregate.ErrInvalidHeatmap)

	cfg = DefaultConfig()
	cfg.Dashboard.Indicator = "pib"
	assert.ErrorIs(t, cfg.Validate(), model.ErrUnknownIndicator)

	cfg = DefaultConfig()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	t.Setenv(EnvSnapshotPath, "")
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Server.Port = 8600
	cfg.Data.SnapshotPath = "/abs/casos.csv"
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8600, loaded.Server.Port)
	assert.Equal(t, "/abs/casos.csv", loaded.Data.SnapshotPath)
}
