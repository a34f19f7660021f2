// Package api serves the dashboard views as JSON over gin.
package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tidinho/dash-leishmaniose/internal/aggregate"
	"github.com/tidinho/dash-leishmaniose/internal/dataset"
	"github.com/tidinho/dash-leishmaniose/internal/store"
)

// Handler dashboard API handler.
type Handler struct {
	data      *dataset.Store
	store     *store.Store
	defaults  aggregate.Options
	exportDir string
	logger    *zap.Logger
	downloads *exportDownloadStore
}

// NewHandler creates the API handler. st may be nil, in which case load
// history and saved preferences are unavailable.
func NewHandler(data *dataset.Store, st *store.Store, defaults aggregate.Options, exportDir string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		data:      data,
		store:     st,
		defaults:  defaults,
		exportDir: exportDir,
		logger:    logger,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// dataset lifecycle
	router.GET("/status", h.GetStatus)
	router.POST("/reload", h.Reload)
	router.GET("/loads", h.ListLoads)

	// filters and views
	router.GET("/filters", h.GetFilters)
	router.GET("/dashboard", h.GetDashboard)
	router.GET("/summary", h.GetSummary)
	router.GET("/states", h.GetStates)
	router.GET("/municipalities/top", h.GetTopMunicipalities)
	router.GET("/map/points", h.GetMapPoints)
	router.GET("/map/heat", h.GetHeatmap)
	router.GET("/indicators", h.GetIndicators)
	router.GET("/charts/:name", h.GetChart)

	// reference data
	router.GET("/capitals", h.ListCapitals)
	router.GET("/capitals/:uf", h.GetCapital)

	// preferences
	router.GET("/preferences", h.GetPreferences)
	router.PATCH("/preferences", h.UpdatePreferences)

	// export
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}
