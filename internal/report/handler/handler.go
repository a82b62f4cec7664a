package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/report"
	"github.com/fekuna/omnipos-register-service/internal/report/dto"
	"github.com/fekuna/omnipos-register-service/internal/response"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

const (
	dateLayout   = "2006-01-02"
	xlsxMIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ReportHandler struct {
	uc     report.UseCase
	loc    *time.Location
	logger logger.ZapLogger
}

func NewReportHandler(uc report.UseCase, loc *time.Location, log logger.ZapLogger) *ReportHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportHandler{uc: uc, loc: loc, logger: log}
}

func (h *ReportHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/reports")
	g.GET("/today", h.Today)
	g.GET("/top-products", h.TopProducts)
	g.GET("/low-stock", h.LowStock)
	g.GET("/summary", h.Summary)
	g.GET("/margins", h.Margins)
	g.GET("/export", h.Export)
}

// parseRange reads from and to as YYYY-MM-DD in the store timezone; to is
// inclusive.
func (h *ReportHandler) parseRange(c *gin.Context) (dto.Range, error) {
	var r dto.Range
	if raw := c.Query("from"); raw != "" {
		from, err := time.ParseInLocation(dateLayout, raw, h.loc)
		if err != nil {
			return r, apperror.ErrInvalidDateRange.WithDetail("from %q", raw)
		}
		r.From = from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.ParseInLocation(dateLayout, raw, h.loc)
		if err != nil {
			return r, apperror.ErrInvalidDateRange.WithDetail("to %q", raw)
		}
		r.To = to.AddDate(0, 0, 1)
	}
	return r, nil
}

func (h *ReportHandler) Today(c *gin.Context) {
	today, err := h.uc.Today(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, today)
}

func (h *ReportHandler) TopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	top, err := h.uc.TopProducts(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": top})
}

func (h *ReportHandler) LowStock(c *gin.Context) {
	products, err := h.uc.LowStock(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *ReportHandler) Summary(c *gin.Context) {
	r, err := h.parseRange(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	summary, err := h.uc.Summary(c.Request.Context(), r)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *ReportHandler) Margins(c *gin.Context) {
	margins, err := h.uc.ProductMargins(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"margins": margins})
}

// Export streams an XLSX workbook of the completed transactions in range.
func (h *ReportHandler) Export(c *gin.Context) {
	r, err := h.parseRange(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	var buf bytes.Buffer
	if err := h.uc.ExportTransactions(c.Request.Context(), r, &buf); err != nil {
		response.Error(c, h.logger, err)
		return
	}

	name := "transactions"
	if from := c.Query("from"); from != "" {
		name += "-" + from
	}
	if to := c.Query("to"); to != "" {
		name += "-" + to
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
	c.Data(http.StatusOK, xlsxMIMEType, buf.Bytes())
}
