package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/auth"
	"github.com/fekuna/omnipos-register-service/internal/cart"
	"github.com/fekuna/omnipos-register-service/internal/cart/dto"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/response"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CartHandler serves the cart of the signed-in cashier. The session is the
// user id carried by the token.
type CartHandler struct {
	uc     cart.UseCase
	logger logger.ZapLogger
}

func NewCartHandler(uc cart.UseCase, log logger.ZapLogger) *CartHandler {
	return &CartHandler{uc: uc, logger: log}
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type qtyRequest struct {
	Qty int `json:"qty"`
}

type discountRequest struct {
	DiscountType  model.DiscountType `json:"discount_type" binding:"required"`
	DiscountValue decimal.Decimal    `json:"discount_value"`
}

type globalDiscountRequest struct {
	Percent decimal.Decimal `json:"percent"`
}

func (h *CartHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/cart", h.GetCart)
	rg.POST("/cart/items", h.AddItem)
	rg.PUT("/cart/items/:product_id", h.SetQty)
	rg.PUT("/cart/items/:product_id/discount", h.SetLineDiscount)
	rg.DELETE("/cart/items/:product_id", h.RemoveItem)
	rg.PUT("/cart/discount", h.SetGlobalDiscount)
	rg.DELETE("/cart", h.Clear)
}

func (h *CartHandler) session(c *gin.Context) (string, bool) {
	user, ok := auth.FromContext(c.Request.Context())
	if !ok {
		response.Error(c, h.logger, apperror.ErrUnauthenticated)
		return "", false
	}
	return user.UserID, true
}

func (h *CartHandler) reply(c *gin.Context, v *dto.CartView, err error) {
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *CartHandler) GetCart(c *gin.Context) {
	sid, ok := h.session(c)
	if !ok {
		return
	}
	v, err := h.uc.GetCart(c.Request.Context(), sid)
	h.reply(c, v, err)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	sid, ok := h.session(c)
	if !ok {
		return
	}
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	v, err := h.uc.AddItem(c.Request.Context(), sid, req.ProductID)
	h.reply(c, v, err)
}

func (h *CartHandler) SetQty(c *gin.Context) {
	sid, ok := h.session(c)
	if !ok {
		return
	}
	var req qtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	v, err := h.uc.SetQty(c.Request.Context(), sid, c.Param("product_id"), req.Qty)
	h.reply(c, v, err)
}

func (h *CartHandler) SetLineDiscount(c *gin.Context) {
	sid, ok := h.session(c)
	if !ok {
		return
	}
	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	v, err := h.uc.SetLineDiscount(c.Request.Context(), sid, c.Param("product_id"), req.DiscountType, req.DiscountValue)
	h.reply(c, v, err)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	sid, ok := h.session(c)
	if !ok {
		return
	}
	v, err := h.uc.RemoveItem(c.Request.Context(), sid, c.Param("product_id"))
	h.reply(c, v, err)
}

func (h *CartHandler) SetGlobalDiscount(c *gin.Context) {
	sid, ok := h.session(c)
	if !ok {
		return
	}
	var req globalDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	v, err := h.uc.SetGlobalDiscount(c.Request.Context(), sid, req.Percent)
	h.reply(c, v, err)
}

func (h *CartHandler) Clear(c *gin.Context) {
	sid, ok := h.session(c)
	if !ok {
		return
	}
	v, err := h.uc.Clear(c.Request.Context(), sid)
	h.reply(c, v, err)
}
