package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tidinho/dash-leishmaniose/internal/aggregate"
	"github.com/tidinho/dash-leishmaniose/internal/dataset"
	"github.com/tidinho/dash-leishmaniose/internal/filter"
	"github.com/tidinho/dash-leishmaniose/internal/model"
	"github.com/tidinho/dash-leishmaniose/internal/store"
)

// parseSelection reads repeated uf, municipio, unidade and ano query params.
func parseSelection(c *gin.Context) (filter.Selection, error) {
	sel := filter.Selection{
		States:         nonBlank(c.QueryArray("uf")),
		Municipalities: nonBlank(c.QueryArray("municipio")),
		Facilities:     nonBlank(c.QueryArray("unidade")),
	}
	for _, raw := range nonBlank(c.QueryArray("ano")) {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return filter.Selection{}, fmt.Errorf("invalid ano %q", raw)
		}
		sel.Years = append(sel.Years, year)
	}
	return sel, nil
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// preferences returns configured defaults overlaid with saved preferences.
func (h *Handler) preferences() aggregate.Options {
	opts := h.defaults
	if h.store == nil {
		return opts
	}
	p, err := h.store.GetPreferences(store.Preferences{
		Heatmap:   opts.Heatmap,
		Indicator: opts.Indicator,
		Trend:     opts.Trend,
	})
	if err != nil {
		h.logger.Warn("failed to read preferences", zap.Error(err))
		return opts
	}
	opts.Heatmap = p.Heatmap
	opts.Indicator = p.Indicator
	opts.Trend = p.Trend
	return opts
}

// viewOptions applies limit, radius, blur, indicator and trend query params.
func (h *Handler) viewOptions(c *gin.Context) (aggregate.Options, error) {
	opts := h.preferences()

	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return opts, fmt.Errorf("invalid limit %q", v)
		}
		opts.TopN = n
	}
	if v := c.Query("radius"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("invalid radius %q", v)
		}
		opts.Heatmap.Radius = n
	}
	if v := c.Query("blur"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("invalid blur %q", v)
		}
		opts.Heatmap.Blur = n
	}
	if err := opts.Heatmap.Validate(); err != nil {
		return opts, err
	}
	if v := c.Query("indicator"); v != "" {
		ind, err := model.ParseIndicator(v)
		if err != nil {
			return opts, err
		}
		opts.Indicator = ind
	}
	if v := c.Query("trend"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid trend %q", v)
		}
		opts.Trend = b
	}
	return opts, nil
}

// snapshot returns the current dataset or writes the error response.
func (h *Handler) snapshot(c *gin.Context) (*dataset.Snapshot, bool) {
	snap, err := h.data.Get(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dataset.ErrNoSnapshotPath) {
			status = http.StatusServiceUnavailable
		}
		h.logger.Error("dataset unavailable", zap.Error(err))
		c.JSON(status, gin.H{"error": err.Error()})
		return nil, false
	}
	return snap, true
}

// filtered parses the selection and runs the filter pipeline.
func (h *Handler) filtered(c *gin.Context) (*dataset.Snapshot, filter.Selection, filter.Result, bool) {
	sel, err := parseSelection(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, sel, filter.Result{}, false
	}
	snap, ok := h.snapshot(c)
	if !ok {
		return nil, sel, filter.Result{}, false
	}
	return snap, sel, filter.Apply(snap.Records, sel), true
}

// SnapshotInfo describes the loaded dataset.
type SnapshotInfo struct {
	ID              string   `json:"id"`
	Path            string   `json:"path"`
	Format          string   `json:"format"`
	LoadedAt        string   `json:"loadedAt"`
	DurationMs      int64    `json:"durationMs"`
	Rows            int      `json:"rows"`
	MissingOptional []string `json:"missingOptional,omitempty"`
}

func snapshotInfo(s *dataset.Snapshot) *SnapshotInfo {
	if s == nil {
		return nil
	}
	return &SnapshotInfo{
		ID:              s.ID,
		Path:            s.Path,
		Format:          string(s.Format),
		LoadedAt:        s.LoadedAt.Format("2006-01-02T15:04:05Z07:00"),
		DurationMs:      s.Duration.Milliseconds(),
		Rows:            s.Len(),
		MissingOptional: s.MissingOptional,
	}
}
