package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/tidinho/dash-leishmaniose/internal/aggregate"
	"github.com/tidinho/dash-leishmaniose/internal/model"
)

// ConfigFileName default config file, next to the executable.
const ConfigFileName = "config.toml"

// EnvSnapshotPath overrides data.snapshot_path.
const EnvSnapshotPath = "LEISHDASH_SNAPSHOT_PATH"

// AppConfig application configuration.
type AppConfig struct {
	Server    ServerConfig    `toml:"server"`
	Data      DataConfig      `toml:"data"`
	Dashboard DashboardConfig `toml:"dashboard"`
	Log       LogConfig       `toml:"log"`
}

// ServerConfig HTTP server.
type ServerConfig struct {
	Port        int  `toml:"port"`
	DevMode     bool `toml:"dev_mode"`
	OpenBrowser bool `toml:"open_browser"`
}

// DataConfig snapshot file and data directory.
type DataConfig struct {
	DataDir      string        `toml:"data_dir"`
	SnapshotPath string        `toml:"snapshot_path"`
	Watch        bool          `toml:"watch"`
	Debounce     Duration `toml:"debounce"`
}

// Duration a time.Duration written as "500ms" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DashboardConfig defaults for the views.
type DashboardConfig struct {
	TopN          int    `toml:"top_n"`
	HeatmapRadius int    `toml:"heatmap_radius"`
	HeatmapBlur   int    `toml:"heatmap_blur"`
	Indicator     string `toml:"indicator"`
	TrendLine     bool   `toml:"trend_line"`
}

// LogConfig logging.
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// LoadConfigInfo what the file explicitly set.
type LoadConfigInfo struct {
	Path          string
	FileFound     bool
	PortSpecified bool
}

// DefaultConfig default configuration.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        8501,
			DevMode:     false,
			OpenBrowser: true,
		},
		Data: DataConfig{
			DataDir:      "data",
			SnapshotPath: "mega_tratados.parquet",
			Watch:        true,
			Debounce:     Duration{500 * time.Millisecond},
		},
		Dashboard: DashboardConfig{
			TopN:          aggregate.DefaultTopN,
			HeatmapRadius: aggregate.DefaultHeatRadius,
			HeatmapBlur:   aggregate.DefaultHeatBlur,
			Indicator:     string(model.IndicatorHDI),
			TrendLine:     true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks dashboard defaults.
func (c *AppConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("server.port must be within 1..65535")
	}
	if c.Dashboard.TopN <= 0 {
		return errors.New("dashboard.top_n must be positive")
	}
	if err := c.HeatmapSettings().Validate(); err != nil {
		return err
	}
	if _, err := model.ParseIndicator(c.Dashboard.Indicator); err != nil {
		return err
	}
	return nil
}

// HeatmapSettings default heatmap settings from config.
func (c *AppConfig) HeatmapSettings() aggregate.HeatmapSettings {
	return aggregate.HeatmapSettings{
		Radius:  c.Dashboard.HeatmapRadius,
		Blur:    c.Dashboard.HeatmapBlur,
		MaxZoom: aggregate.HeatMaxZoom,
	}
}

// ViewOptions default aggregation options from config.
func (c *AppConfig) ViewOptions() aggregate.Options {
	ind, err := model.ParseIndicator(c.Dashboard.Indicator)
	if err != nil {
		ind = model.IndicatorHDI
	}
	return aggregate.Options{
		TopN:      c.Dashboard.TopN,
		Heatmap:   c.HeatmapSettings(),
		Indicator: ind,
		Trend:     c.Dashboard.TrendLine,
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}
	serverAny, ok := raw["server"]
	if !ok {
		return false
	}
	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}
	_, ok = serverMap["port"]
	return ok
}

// GetExeDir directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultConfigPath config.toml next to the executable, or in the working directory.
func DefaultConfigPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, ConfigFileName)
}

// LoadConfigWithInfo loads path over the defaults. A missing file is not an error.
// Relative data paths are resolved against the config file's directory.
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	info := LoadConfigInfo{Path: path}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.FileFound = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, info, err
		}
	case os.IsNotExist(err):
	default:
		return nil, info, err
	}

	if v := os.Getenv(EnvSnapshotPath); v != "" {
		cfg.Data.SnapshotPath = v
	}

	baseDir := filepath.Dir(path)
	cfg.Data.DataDir = resolve(baseDir, cfg.Data.DataDir)
	cfg.Data.SnapshotPath = resolve(baseDir, cfg.Data.SnapshotPath)

	return cfg, info, nil
}

// LoadConfig loads path over the defaults.
func LoadConfig(path string) (*AppConfig, error) {
	cfg, _, err := LoadConfigWithInfo(path)
	return cfg, err
}

// SaveConfig writes cfg to path.
func SaveConfig(path string, cfg *AppConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EnsureDataDir creates the data directory and its exports subdirectory.
func EnsureDataDir(cfg *AppConfig) (string, error) {
	dataDir := cfg.Data.DataDir
	if err := os.MkdirAll(filepath.Join(dataDir, "exports"), 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// GetDataPath path inside the data directory.
func GetDataPath(cfg *AppConfig, subdir, filename string) string {
	return filepath.Join(cfg.Data.DataDir, subdir, filename)
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
