package handler

import (
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-register-service/internal/product"
	"github.com/fekuna/omnipos-register-service/internal/product/dto"
	"github.com/fekuna/omnipos-register-service/internal/response"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

type productRequest struct {
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	CategoryID string          `json:"category_id"`
	ImageURL   string          `json:"image_url"`
	BuyPrice   decimal.Decimal `json:"buy_price"`
	SellPrice  decimal.Decimal `json:"sell_price"`
	Stock      int             `json:"stock"`
	MinStock   int             `json:"min_stock"`
	IsActive   *bool           `json:"is_active"`
}

type variantRequest struct {
	Name            string          `json:"name"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
}

type listResponse struct {
	Products interface{} `json:"products"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// RegisterRead mounts catalog reads, open to every signed-in role.
func (h *ProductHandler) RegisterRead(rg *gin.RouterGroup) {
	rg.GET("/products", h.ListProducts)
	rg.GET("/products/:id", h.GetProduct)
	rg.GET("/products/:id/variants", h.ListVariants)
}

// RegisterWrite mounts catalog writes; the caller guards them by role.
func (h *ProductHandler) RegisterWrite(rg *gin.RouterGroup) {
	rg.POST("/products", h.CreateProduct)
	rg.PUT("/products/:id", h.UpdateProduct)
	rg.DELETE("/products/:id", h.DeleteProduct)
	rg.POST("/products/:id/variants", h.AddVariant)
	rg.DELETE("/products/:id/variants/:variant_id", h.DeleteVariant)
	rg.POST("/search/reindex", h.Reindex)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), &dto.CreateProductInput{
		Name:       req.Name,
		SKU:        req.SKU,
		CategoryID: req.CategoryID,
		ImageURL:   req.ImageURL,
		BuyPrice:   req.BuyPrice,
		SellPrice:  req.SellPrice,
		Stock:      req.Stock,
		MinStock:   req.MinStock,
		IsActive:   req.IsActive,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	var isActive *bool
	if raw := c.Query("is_active"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(c, err)
			return
		}
		isActive = &b
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))

	filters := &dto.ProductFilters{
		CategoryID:  c.Query("category_id"),
		IsActive:    isActive,
		SearchQuery: c.Query("q"),
		SortBy:      c.Query("sort_by"),
		SortOrder:   c.Query("sort_order"),
		Page:        page,
		PageSize:    pageSize,
	}

	products, count, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, listResponse{Products: products, Total: count, Page: page, PageSize: pageSize})
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	p, err := h.uc.UpdateProduct(c.Request.Context(), &dto.UpdateProductInput{
		ID:         c.Param("id"),
		Name:       req.Name,
		SKU:        req.SKU,
		CategoryID: req.CategoryID,
		ImageURL:   req.ImageURL,
		BuyPrice:   req.BuyPrice,
		SellPrice:  req.SellPrice,
		MinStock:   req.MinStock,
		IsActive:   active,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) AddVariant(c *gin.Context) {
	var req variantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	v, err := h.uc.AddVariant(c.Request.Context(), &dto.CreateVariantInput{
		ProductID:       c.Param("id"),
		Name:            req.Name,
		PriceAdjustment: req.PriceAdjustment,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *ProductHandler) ListVariants(c *gin.Context) {
	variants, err := h.uc.ListVariants(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, variants)
}

func (h *ProductHandler) DeleteVariant(c *gin.Context) {
	if err := h.uc.DeleteVariant(c.Request.Context(), c.Param("id"), c.Param("variant_id")); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) Reindex(c *gin.Context) {
	if err := h.uc.Reindex(c.Request.Context()); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusAccepted)
}
