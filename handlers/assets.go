package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/milassets/backend/auth"
	"github.com/milassets/backend/errs"
	"github.com/milassets/backend/middleware"
	"github.com/milassets/backend/models"
	"github.com/milassets/backend/repository"
	"github.com/milassets/backend/services"
)

// Assets handles asset CRUD. Role gates run as middleware; base scoping is
// checked here through auth.CanAccess.
type Assets struct {
	assets *repository.Assets
	hub    *services.ActivityHub
	log    *zap.Logger
}

// NewAssets creates the asset handler group. hub may be nil when the
// activity stream is disabled.
func NewAssets(assets *repository.Assets, hub *services.ActivityHub, log *zap.Logger) *Assets {
	return &Assets{assets: assets, hub: hub, log: log}
}

type CreateAssetRequest struct {
	Name         string             `json:"name" binding:"required"`
	Type         models.AssetType   `json:"type" binding:"required"`
	SerialNumber *string            `json:"serialNumber"`
	Status       models.AssetStatus `json:"status"`
	Quantity     int                `json:"quantity" binding:"required,min=1"`
	Base         string             `json:"base" binding:"required"`
	Notes        string             `json:"notes"`
}

type UpdateAssetRequest struct {
	Name         *string             `json:"name"`
	Type         *models.AssetType   `json:"type"`
	SerialNumber *string             `json:"serialNumber"`
	Status       *models.AssetStatus `json:"status"`
	Quantity     *int                `json:"quantity"`
	Notes        *string             `json:"notes"`
}

// List handles GET /api/assets. Admin sees every base, others only their own.
func (h *Assets) List(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	assets, err := h.assets.ListForActor(actor)
	if err != nil {
		h.log.Error("list assets", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, assets)
}

// Get handles GET /api/assets/:id.
func (h *Assets) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	asset, err := h.assets.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
			return
		}
		h.log.Error("get asset", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	actor := middleware.CurrentUser(c)
	if !auth.CanAccess(actor, asset.Base) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	c.JSON(http.StatusOK, asset)
}

// Create handles POST /api/assets (admin/commander).
func (h *Assets) Create(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Type.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset type"})
		return
	}
	status := req.Status
	if status == "" {
		status = models.StatusAvailable
	}
	if !status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	actor := middleware.CurrentUser(c)
	if !auth.CanAccess(actor, req.Base) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	serial := req.SerialNumber
	if serial != nil && *serial == "" {
		serial = nil
	}

	asset := &models.Asset{
		Name:         req.Name,
		Type:         req.Type,
		SerialNumber: serial,
		Status:       status,
		Quantity:     req.Quantity,
		Base:         req.Base,
		Notes:        req.Notes,
	}

	if err := h.assets.Create(asset); err != nil {
		if errors.Is(err, errs.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Serial number already exists"})
			return
		}
		h.log.Error("create asset", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	h.publish(services.ActionCreated, asset, actor)
	c.JSON(http.StatusCreated, asset)
}

// Update handles PUT /api/assets/:id (admin/commander). Only supplied
// fields are applied.
func (h *Assets) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	asset, err := h.assets.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
			return
		}
		h.log.Error("get asset", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	actor := middleware.CurrentUser(c)
	if !auth.CanAccess(actor, asset.Base) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name cannot be empty"})
			return
		}
		asset.Name = *req.Name
	}
	if req.Type != nil {
		if !req.Type.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset type"})
			return
		}
		asset.Type = *req.Type
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		asset.Status = *req.Status
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be a positive number"})
			return
		}
		asset.Quantity = *req.Quantity
	}
	if req.SerialNumber != nil {
		if *req.SerialNumber == "" {
			asset.SerialNumber = nil
		} else {
			asset.SerialNumber = req.SerialNumber
		}
	}
	if req.Notes != nil {
		asset.Notes = *req.Notes
	}

	if err := h.assets.Save(asset); err != nil {
		if errors.Is(err, errs.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Serial number already exists"})
			return
		}
		h.log.Error("update asset", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	h.publish(services.ActionUpdated, asset, actor)
	c.JSON(http.StatusOK, asset)
}

// Delete handles DELETE /api/assets/:id (admin).
func (h *Assets) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	asset, err := h.assets.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
			return
		}
		h.log.Error("get asset", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if err := h.assets.Delete(asset.ID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
			return
		}
		h.log.Error("delete asset", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	h.publish(services.ActionDeleted, asset, middleware.CurrentUser(c))
	c.JSON(http.StatusOK, gin.H{"message": "Asset removed"})
}

func (h *Assets) publish(action string, asset *models.Asset, actor *models.User) {
	if h.hub == nil {
		return
	}
	if err := h.hub.Publish(services.NewAssetEvent(action, asset, actor)); err != nil {
		h.log.Warn("publish asset event", zap.Error(err))
	}
}
