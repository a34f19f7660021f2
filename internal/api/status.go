package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tidinho/dash-leishmaniose/internal/store"
)

// StatusResponse dataset status
type StatusResponse struct {
	Loaded       bool           `json:"loaded"`
	SnapshotPath string         `json:"snapshotPath"`
	Snapshot     *SnapshotInfo  `json:"snapshot"`
	LastLoad     *store.LoadLog `json:"lastLoad"`
}

// GetStatus reports the loaded snapshot without triggering a load
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	snap := h.data.Current()
	resp := StatusResponse{
		Loaded:       snap != nil,
		SnapshotPath: h.data.Path(),
		Snapshot:     snapshotInfo(snap),
	}
	if h.store != nil {
		last, err := h.store.LatestLoadLog()
		if err != nil {
			h.logger.Warn("failed to read load log", zap.Error(err))
		}
		resp.LastLoad = last
	}
	c.JSON(http.StatusOK, resp)
}

// Reload re-reads the snapshot file
// POST /api/reload
func (h *Handler) Reload(c *gin.Context) {
	snap, err := h.data.Reload(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshot": snapshotInfo(snap)})
}

// ListLoads load history, newest first
// GET /api/loads?limit=20
func (h *Handler) ListLoads(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "load history unavailable"})
		return
	}
	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit: " + v})
			return
		}
		limit = n
	}
	logs, err := h.store.ListLoadLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list loads"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": logs})
}
