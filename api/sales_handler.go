package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"api_dealership/internal/sales"
)

// salesHandler implements the HTTP surface for sale transactions.
type salesHandler struct {
	svc    *sales.Service
	logger *zap.Logger
}

func newSalesHandler(svc *sales.Service, logger *zap.Logger) *salesHandler {
	return &salesHandler{svc: svc, logger: logger}
}

type recordSaleRequest struct {
	VehicleID  uint    `json:"vehicle_id" binding:"required"`
	ClientID   uint    `json:"client_id" binding:"required"`
	SalePrice  float64 `json:"sale_price" binding:"required,gt=0"`
	SaleDate   string  `json:"sale_date" binding:"required"`
	Commission float64 `json:"commission" binding:"gte=0"`
}

type updateSaleRequest struct {
	VehicleID  *uint    `json:"vehicle_id"`
	ClientID   *uint    `json:"client_id"`
	SalePrice  *float64 `json:"sale_price" binding:"omitempty,gt=0"`
	SaleDate   *string  `json:"sale_date"`
	Commission *float64 `json:"commission" binding:"omitempty,gte=0"`
}

func (h *salesHandler) handleList(c *gin.Context) {
	skip, limit := pagination(c)
	result, err := h.svc.List(c.Request.Context(), skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *salesHandler) handleGet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	sale, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *salesHandler) handleRecord(c *gin.Context) {
	var req recordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind sale payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	saleDate, err := time.Parse(time.DateOnly, req.SaleDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sale_date must be formatted as YYYY-MM-DD"})
		return
	}
	sale, err := h.svc.Record(c.Request.Context(), sales.RecordInput{
		VehicleID:  req.VehicleID,
		ClientID:   req.ClientID,
		SalePrice:  req.SalePrice,
		SaleDate:   saleDate,
		Commission: req.Commission,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *salesHandler) handleUpdate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind sale payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	in := sales.UpdateInput{
		VehicleID:  req.VehicleID,
		ClientID:   req.ClientID,
		SalePrice:  req.SalePrice,
		Commission: req.Commission,
	}
	if req.SaleDate != nil {
		saleDate, err := time.Parse(time.DateOnly, *req.SaleDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sale_date must be formatted as YYYY-MM-DD"})
			return
		}
		in.SaleDate = &saleDate
	}
	sale, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *salesHandler) handleDelete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
