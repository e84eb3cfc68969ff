package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"api_dealership/internal/analytics"
)

// analyticsHandler exposes the derived quarterly views.
type analyticsHandler struct {
	svc *analytics.Service
}

func newAnalyticsHandler(svc *analytics.Service) *analyticsHandler {
	return &analyticsHandler{svc: svc}
}

func (h *analyticsHandler) handleQuarterly(c *gin.Context) {
	aggregates, err := h.svc.Quarterly(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, aggregates)
}

func (h *analyticsHandler) handleInsights(c *gin.Context) {
	insights, err := h.svc.Insights(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, insights)
}
