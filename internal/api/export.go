package api

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tidinho/dash-leishmaniose/internal/aggregate"
	"github.com/tidinho/dash-leishmaniose/internal/exporter"
)

const exportTTL = 10 * time.Minute

// ExportResponse download handle for an xlsx export
type ExportResponse struct {
	Token       string    `json:"token"`
	DownloadURL string    `json:"downloadUrl"`
	Filename    string    `json:"filename"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func exportFilename(now time.Time) string {
	return fmt.Sprintf("leishmaniose-%s.xlsx", now.Format("20060102-150405"))
}

func buildExportContentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", filename, url.PathEscape(filename))
}

// Export writes the filtered views to xlsx and returns a one-shot download token
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	opts, err := h.viewOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	snap, sel, res, ok := h.filtered(c)
	if !ok {
		return
	}

	dir := h.exportDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create export dir"})
		return
	}

	now := time.Now()
	filename := exportFilename(now)
	path := filepath.Join(dir, fmt.Sprintf("export_%d_%d.xlsx", now.UnixNano(), os.Getpid()))

	exp := exporter.NewExporter()
	file, err := exp.Export(aggregate.Build(res.Records, opts), exporter.Meta{
		SnapshotID:  snap.ID,
		SnapshotAt:  snap.LoadedAt,
		GeneratedAt: now,
		Selection:   sel,
	}, func(p exporter.ProgressEvent) {
		h.logger.Debug("export progress", zap.Int("percent", p.Percent), zap.String("stage", p.Stage))
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed: " + err.Error()})
		return
	}
	defer file.Close()

	if err := file.SaveAs(path); err != nil {
		_ = os.Remove(path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write export file"})
		return
	}

	token, expiresAt, expired := h.downloads.put(path, filename, exportTTL)
	for _, p := range expired {
		_ = os.Remove(p)
	}

	prefix := strings.TrimSuffix(c.FullPath(), "/export")
	c.JSON(http.StatusOK, ExportResponse{
		Token:       token,
		DownloadURL: fmt.Sprintf("%s/export/download/%s", prefix, token),
		Filename:    filename,
		ExpiresAt:   expiresAt,
	})
}

// DownloadExport serves an exported file once
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download link expired"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "export file not found"})
		return
	}

	c.Header("Content-Disposition", buildExportContentDisposition(item.filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}
