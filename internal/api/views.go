package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tidinho/dash-leishmaniose/internal/aggregate"
)

// GetFilters option domains for the current selection
// GET /api/filters
func (h *Handler) GetFilters(c *gin.Context) {
	_, sel, res, ok := h.filtered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"selection": sel,
		"options":   res.Options,
		"rows":      len(res.Records),
	})
}

// GetDashboard every view in one payload
// GET /api/dashboard
func (h *Handler) GetDashboard(c *gin.Context) {
	opts, err := h.viewOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	snap, sel, res, ok := h.filtered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"snapshot":  snapshotInfo(snap),
		"selection": sel,
		"options":   res.Options,
		"dashboard": aggregate.Build(res.Records, opts),
	})
}

// GetSummary headline counters
// GET /api/summary
func (h *Handler) GetSummary(c *gin.Context) {
	_, _, res, ok := h.filtered(c)
	if !ok {
		return
	}
	s := aggregate.Summarize(res.Records)
	c.JSON(http.StatusOK, gin.H{
		"summary": s,
		"metrics": s.Metrics(),
	})
}

// GetStates cases per state
// GET /api/states
func (h *Handler) GetStates(c *gin.Context) {
	_, _, res, ok := h.filtered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": aggregate.ByState(res.Records)})
}

// GetTopMunicipalities municipalities ranked by cases
// GET /api/municipalities/top?limit=20
func (h *Handler) GetTopMunicipalities(c *gin.Context) {
	opts, err := h.viewOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_, _, res, ok := h.filtered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"limit": opts.TopN,
		"items": aggregate.TopMunicipalities(res.Records, opts.TopN),
	})
}

// GetMapPoints circle markers
// GET /api/map/points
func (h *Handler) GetMapPoints(c *gin.Context) {
	_, _, res, ok := h.filtered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"view":  aggregate.DefaultMapView(),
		"items": aggregate.MapPoints(res.Records),
	})
}

// GetHeatmap weighted heat points
// GET /api/map/heat?radius=20&blur=15
func (h *Handler) GetHeatmap(c *gin.Context) {
	opts, err := h.viewOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_, _, res, ok := h.filtered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"view":     aggregate.DefaultMapView(),
		"settings": opts.Heatmap,
		"items":    aggregate.HeatPoints(res.Records),
	})
}

// GetIndicators per-municipality indicator table and correlation
// GET /api/indicators?indicator=idh&trend=true
func (h *Handler) GetIndicators(c *gin.Context) {
	opts, err := h.viewOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_, _, res, ok := h.filtered(c)
	if !ok {
		return
	}
	table := aggregate.IndicatorTable(res.Records)
	c.JSON(http.StatusOK, gin.H{
		"table":       table,
		"correlation": aggregate.Correlate(table, opts.Indicator, opts.Trend),
	})
}
