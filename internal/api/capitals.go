package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tidinho/dash-leishmaniose/internal/geo"
)

// ListCapitals the 27 state capitals
// GET /api/capitals
func (h *Handler) ListCapitals(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": geo.Capitals()})
}

// GetCapital capital of one state
// GET /api/capitals/:uf
func (h *Handler) GetCapital(c *gin.Context) {
	capital, ok := geo.CapitalOf(c.Param("uf"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown uf: " + c.Param("uf")})
		return
	}
	c.JSON(http.StatusOK, capital)
}
