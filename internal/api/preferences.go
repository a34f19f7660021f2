package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tidinho/dash-leishmaniose/internal/model"
	"github.com/tidinho/dash-leishmaniose/internal/store"
)

// UpdatePreferencesRequest partial preference update
type UpdatePreferencesRequest struct {
	HeatmapRadius *int    `json:"heatmapRadius"`
	HeatmapBlur   *int    `json:"heatmapBlur"`
	Indicator     *string `json:"indicator"`
	Trend         *bool   `json:"trend"`
}

func preferencesFrom(opts store.Preferences) gin.H {
	return gin.H{
		"heatmap":   opts.Heatmap,
		"indicator": opts.Indicator,
		"label":     opts.Indicator.Label(),
		"trend":     opts.Trend,
	}
}

// GetPreferences current view preferences
// GET /api/preferences
func (h *Handler) GetPreferences(c *gin.Context) {
	opts := h.preferences()
	c.JSON(http.StatusOK, preferencesFrom(store.Preferences{
		Heatmap:   opts.Heatmap,
		Indicator: opts.Indicator,
		Trend:     opts.Trend,
	}))
}

// UpdatePreferences saves view preferences
// PATCH /api/preferences
func (h *Handler) UpdatePreferences(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "preferences unavailable"})
		return
	}
	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	opts := h.preferences()
	p := store.Preferences{Heatmap: opts.Heatmap, Indicator: opts.Indicator, Trend: opts.Trend}
	if req.HeatmapRadius != nil {
		p.Heatmap.Radius = *req.HeatmapRadius
	}
	if req.HeatmapBlur != nil {
		p.Heatmap.Blur = *req.HeatmapBlur
	}
	if req.Indicator != nil {
		ind, err := model.ParseIndicator(*req.Indicator)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		p.Indicator = ind
	}
	if req.Trend != nil {
		p.Trend = *req.Trend
	}

	if err := p.Heatmap.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.SavePreferences(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save preferences"})
		return
	}
	c.JSON(http.StatusOK, preferencesFrom(p))
}
