package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/auth"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/response"
	"github.com/fekuna/omnipos-register-service/internal/transaction"
	"github.com/fekuna/omnipos-register-service/internal/transaction/dto"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type TransactionHandler struct {
	uc     transaction.UseCase
	loc    *time.Location
	logger logger.ZapLogger
}

// NewTransactionHandler parses date filters in loc, the store timezone.
func NewTransactionHandler(uc transaction.UseCase, loc *time.Location, log logger.ZapLogger) *TransactionHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &TransactionHandler{uc: uc, loc: loc, logger: log}
}

type checkoutRequest struct {
	Payments []model.PaymentSplit `json:"payments"`
}

func (h *TransactionHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/checkout", h.Checkout)
	rg.GET("/transactions", h.ListTransactions)
	rg.GET("/transactions/:id", h.GetTransaction)
}

// Checkout commits the caller's cart. Cashier identity comes from the token.
func (h *TransactionHandler) Checkout(c *gin.Context) {
	user, ok := auth.FromContext(c.Request.Context())
	if !ok {
		response.Error(c, h.logger, apperror.ErrUnauthenticated)
		return
	}
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	txn, err := h.uc.Checkout(c.Request.Context(), &dto.CheckoutInput{
		SessionID: user.UserID,
		Cashier:   dto.Cashier{ID: user.UserID, Name: user.Name},
		Payments:  req.Payments,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// ListTransactions accepts from and to as YYYY-MM-DD; to is inclusive.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	filters := &dto.TransactionFilters{
		CashierID:     c.Query("cashier_id"),
		PaymentMethod: model.PaymentMethod(c.Query("payment_method")),
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.ParseInLocation(dateLayout, raw, h.loc)
		if err != nil {
			response.Error(c, h.logger, apperror.ErrInvalidDateRange.WithDetail("from %q", raw))
			return
		}
		filters.From = from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.ParseInLocation(dateLayout, raw, h.loc)
		if err != nil {
			response.Error(c, h.logger, apperror.ErrInvalidDateRange.WithDetail("to %q", raw))
			return
		}
		filters.To = to.AddDate(0, 0, 1)
	}
	filters.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filters.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "0"))

	txns, count, err := h.uc.ListTransactions(c.Request.Context(), filters)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"transactions": txns,
		"total":        count,
		"page":         filters.Page,
		"page_size":    filters.PageSize,
	})
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	txn, err := h.uc.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}
