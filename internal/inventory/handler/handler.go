package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/auth"
	"github.com/fekuna/omnipos-register-service/internal/inventory"
	"github.com/fekuna/omnipos-register-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/response"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

type adjustRequest struct {
	QuantityChange int    `json:"quantity_change"`
	Reason         string `json:"reason"`
	ReferenceID    string `json:"reference_id"`
	ReferenceType  string `json:"reference_type"`
}

func (h *InventoryHandler) RegisterRead(rg *gin.RouterGroup) {
	rg.GET("/inventory", h.ListInventory)
	rg.GET("/inventory/low-stock", h.ListLowStock)
	rg.GET("/inventory/movements", h.ListMovements)
	rg.GET("/inventory/products/:product_id", h.GetProductInventory)
}

func (h *InventoryHandler) RegisterWrite(rg *gin.RouterGroup) {
	rg.POST("/inventory/products/:product_id/adjust", h.AdjustInventory)
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))
	return page, pageSize
}

func (h *InventoryHandler) GetProductInventory(c *gin.Context) {
	level, err := h.uc.GetProductInventory(c.Request.Context(), c.Param("product_id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, level)
}

func (h *InventoryHandler) ListInventory(c *gin.Context) {
	page, pageSize := pageParams(c)
	items, count, err := h.uc.ListInventory(c.Request.Context(), &dto.InventoryFilters{
		CategoryID: c.Query("category_id"),
		LowStock:   c.Query("low_stock") == "true",
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": count})
}

func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	page, pageSize := pageParams(c)
	items, count, err := h.uc.ListLowStock(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": count})
}

func (h *InventoryHandler) AdjustInventory(c *gin.Context) {
	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	user, _ := auth.FromContext(c.Request.Context())

	level, err := h.uc.AdjustInventory(c.Request.Context(), &dto.AdjustInventoryInput{
		ProductID:      c.Param("product_id"),
		QuantityChange: req.QuantityChange,
		Reason:         req.Reason,
		ReferenceID:    req.ReferenceID,
		ReferenceType:  req.ReferenceType,
		UserID:         user.UserID,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, level)
}

// ListMovements accepts start and end as RFC 3339 timestamps.
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	page, pageSize := pageParams(c)
	filters := &dto.MovementFilters{
		ProductID:    c.Query("product_id"),
		MovementType: model.MovementType(c.Query("type")),
		Page:         page,
		PageSize:     pageSize,
	}
	for param, dst := range map[string]**time.Time{"start": &filters.StartDate, "end": &filters.EndDate} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.Error(c, h.logger, apperror.ErrInvalidDateRange.WithDetail("%s %q", param, raw))
			return
		}
		*dst = &ts
	}

	movements, count, err := h.uc.ListMovements(c.Request.Context(), filters)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"movements": movements, "total": count})
}
