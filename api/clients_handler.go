package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"api_dealership/internal/clients"
)

// clientsHandler implements the HTTP surface for client records.
type clientsHandler struct {
	svc    *clients.Service
	logger *zap.Logger
}

func newClientsHandler(svc *clients.Service, logger *zap.Logger) *clientsHandler {
	return &clientsHandler{svc: svc, logger: logger}
}

type createClientRequest struct {
	FirstName     string          `json:"first_name" binding:"required,max=50"`
	LastName      string          `json:"last_name" binding:"required,max=50"`
	Email         string          `json:"email" binding:"required,email,max=120"`
	Phone         string          `json:"phone" binding:"max=20"`
	LifetimeValue float64         `json:"lifetime_value" binding:"gte=0"`
	VIPTier       clients.VIPTier `json:"vip_tier"`
}

type updateClientRequest struct {
	FirstName     *string          `json:"first_name" binding:"omitempty,max=50"`
	LastName      *string          `json:"last_name" binding:"omitempty,max=50"`
	Email         *string          `json:"email" binding:"omitempty,email,max=120"`
	Phone         *string          `json:"phone" binding:"omitempty,max=20"`
	LifetimeValue *float64         `json:"lifetime_value" binding:"omitempty,gte=0"`
	VIPTier       *clients.VIPTier `json:"vip_tier"`
}

func (h *clientsHandler) handleList(c *gin.Context) {
	skip, limit := pagination(c)
	result, err := h.svc.List(c.Request.Context(), c.Query("vip_tier"), skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *clientsHandler) handleGet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	client, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *clientsHandler) handleCreate(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind client payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	client, err := h.svc.Create(c.Request.Context(), clients.CreateInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		LifetimeValue: req.LifetimeValue,
		VIPTier:       req.VIPTier,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *clientsHandler) handleUpdate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind client payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	client, err := h.svc.Update(c.Request.Context(), id, clients.UpdateInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		LifetimeValue: req.LifetimeValue,
		VIPTier:       req.VIPTier,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *clientsHandler) handleDelete(c *gin.Context) {
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
