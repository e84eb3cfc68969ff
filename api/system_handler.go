package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"api_dealership/internal/db"
)

// systemHandler exposes store health and size statistics.
type systemHandler struct {
	gdb *gorm.DB
}

func newSystemHandler(gdb *gorm.DB) *systemHandler {
	return &systemHandler{gdb: gdb}
}

func (h *systemHandler) handleHealth(c *gin.Context) {
	stats, err := db.CollectStats(c.Request.Context(), h.gdb)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
