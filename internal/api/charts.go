package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tidinho/dash-leishmaniose/internal/aggregate"
	"github.com/tidinho/dash-leishmaniose/internal/render"
)

// GetChart renders one view as PNG
// GET /api/charts/:name?width=1024&height=512
func (h *Handler) GetChart(c *gin.Context) {
	name := c.Param("name")
	switch name {
	case render.ChartStates, render.ChartMunicipalities, render.ChartIndicators:
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown chart: " + name})
		return
	}

	size := render.DefaultSize()
	for _, p := range []struct {
		key string
		dst *int
	}{{"width", &size.Width}, {"height", &size.Height}} {
		v := c.Query(p.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 100 || n > 4096 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + p.key + ": " + v})
			return
		}
		*p.dst = n
	}

	opts, err := h.viewOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_, _, res, ok := h.filtered(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.Render(&buf, name, aggregate.Build(res.Records, opts), size); err != nil {
		if errors.Is(err, render.ErrNoData) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
