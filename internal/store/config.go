package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/tidinho/dash-leishmaniose/internal/aggregate"
	"github.com/tidinho/dash-leishmaniose/internal/model"
)

// Preference keys.
const (
	KeyHeatmapRadius = "heatmap_radius"
	KeyHeatmapBlur   = "heatmap_blur"
	KeyIndicator     = "indicator"
	KeyTrendLine     = "trend_line"
)

// ErrConfigNotFound is returned for unknown config keys.
var ErrConfigNotFound = errors.New("config key not found")

// GetConfig reads a config value.
func (s *Store) GetConfig(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, key)
		}
		return "", err
	}
	return value, nil
}

// GetConfigInt reads an integer config value.
func (s *Store) GetConfigInt(key string) (int, error) {
	value, err := s.GetConfig(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

// SetConfig upserts a config value.
func (s *Store) SetConfig(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
	`, key, value, value)
	return err
}

// SetConfigInt upserts an integer config value.
func (s *Store) SetConfigInt(key string, value int) error {
	return s.SetConfig(key, strconv.Itoa(value))
}

// Preferences dashboard settings remembered across restarts.
type Preferences struct {
	Heatmap   aggregate.HeatmapSettings `json:"heatmap"`
	Indicator model.Indicator           `json:"indicator"`
	Trend     bool                      `json:"trend"`
}

// GetPreferences returns saved preferences over defaults.
// Unparseable stored values fall back to the default.
func (s *Store) GetPreferences(defaults Preferences) (Preferences, error) {
	p := defaults
	if v, err := s.GetConfigInt(KeyHeatmapRadius); err == nil {
		p.Heatmap.Radius = v
	} else if !errors.Is(err, ErrConfigNotFound) && !isNumError(err) {
		return p, err
	}
	if v, err := s.GetConfigInt(KeyHeatmapBlur); err == nil {
		p.Heatmap.Blur = v
	} else if !errors.Is(err, ErrConfigNotFound) && !isNumError(err) {
		return p, err
	}
	if v, err := s.GetConfig(KeyIndicator); err == nil {
		if ind, perr := model.ParseIndicator(v); perr == nil {
			p.Indicator = ind
		}
	} else if !errors.Is(err, ErrConfigNotFound) {
		return p, err
	}
	if v, err := s.GetConfig(KeyTrendLine); err == nil {
		if b, perr := strconv.ParseBool(v); perr == nil {
			p.Trend = b
		}
	} else if !errors.Is(err, ErrConfigNotFound) {
		return p, err
	}
	if p.Heatmap.Validate() != nil {
		p.Heatmap = defaults.Heatmap
	}
	return p, nil
}

// SavePreferences validates and stores p.
func (s *Store) SavePreferences(p Preferences) error {
	if err := p.Heatmap.Validate(); err != nil {
		return err
	}
	if _, err := model.ParseIndicator(string(p.Indicator)); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	values := map[string]string{
		KeyHeatmapRadius: strconv.Itoa(p.Heatmap.Radius),
		KeyHeatmapBlur:   strconv.Itoa(p.Heatmap.Blur),
		KeyIndicator:     string(p.Indicator),
		KeyTrendLine:     strconv.FormatBool(p.Trend),
	}
	for k, v := range values {
		if _, err := tx.Exec(`
			INSERT INTO config (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
		`, k, v, v); err != nil {
			return fmt.Errorf("failed to save %s: %w", k, err)
		}
	}
	return tx.Commit()
}

func isNumError(err error) bool {
	var ne *strconv.NumError
	return errors.As(err, &ne)
}
