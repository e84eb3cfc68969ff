package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"api_dealership/internal/inventory"
)

// vehiclesHandler implements the HTTP surface for vehicle inventory.
type vehiclesHandler struct {
	svc    *inventory.Service
	logger *zap.Logger
}

func newVehiclesHandler(svc *inventory.Service, logger *zap.Logger) *vehiclesHandler {
	return &vehiclesHandler{svc: svc, logger: logger}
}

type createVehicleRequest struct {
	VIN           string           `json:"vin" binding:"required,vin"`
	Make          string           `json:"make" binding:"required,max=50"`
	Model         string           `json:"model" binding:"required,max=100"`
	Year          int              `json:"year" binding:"required,gte=1900,lte=2030"`
	PurchasePrice float64          `json:"purchase_price" binding:"required,gt=0"`
	Status        inventory.Status `json:"status"`
}

type updateVehicleRequest struct {
	VIN           *string           `json:"vin" binding:"omitempty,vin"`
	Make          *string           `json:"make" binding:"omitempty,max=50"`
	Model         *string           `json:"model" binding:"omitempty,max=100"`
	Year          *int              `json:"year" binding:"omitempty,gte=1900,lte=2030"`
	PurchasePrice *float64          `json:"purchase_price" binding:"omitempty,gt=0"`
	Status        *inventory.Status `json:"status"`
}

func (h *vehiclesHandler) handleList(c *gin.Context) {
	skip, limit := pagination(c)
	vehicles, err := h.svc.List(c.Request.Context(), c.Query("status"), c.Query("make"), skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func (h *vehiclesHandler) handleGet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	vehicle, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (h *vehiclesHandler) handleCreate(c *gin.Context) {
	var req createVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind vehicle payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	vehicle, err := h.svc.Create(c.Request.Context(), inventory.CreateInput{
		VIN:           req.VIN,
		Make:          req.Make,
		Model:         req.Model,
		Year:          req.Year,
		PurchasePrice: req.PurchasePrice,
		Status:        req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

func (h *vehiclesHandler) handleUpdate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind vehicle payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	vehicle, err := h.svc.Update(c.Request.Context(), id, inventory.UpdateInput{
		VIN:           req.VIN,
		Make:          req.Make,
		Model:         req.Model,
		Year:          req.Year,
		PurchasePrice: req.PurchasePrice,
		Status:        req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (h *vehiclesHandler) handleDelete(c *gin.Context) {
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

// pathID parses the :id path parameter, writing a 400 on failure.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// pagination reads the skip/limit query parameters with the defaults the
// listing endpoints share.
func pagination(c *gin.Context) (int, int) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if skip < 0 {
		skip = 0
	}
	return skip, limit
}
