package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-register-service/internal/printer"
	"github.com/fekuna/omnipos-register-service/internal/printer/dto"
	"github.com/fekuna/omnipos-register-service/internal/response"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type PrinterHandler struct {
	uc     printer.UseCase
	logger logger.ZapLogger
}

func NewPrinterHandler(uc printer.UseCase, log logger.ZapLogger) *PrinterHandler {
	return &PrinterHandler{uc: uc, logger: log}
}

func (h *PrinterHandler) RegisterRead(rg *gin.RouterGroup) {
	rg.GET("/printers", h.ListPrinters)
}

func (h *PrinterHandler) RegisterWrite(rg *gin.RouterGroup) {
	rg.POST("/printers", h.AddPrinter)
	rg.PUT("/printers/:id", h.UpdatePrinter)
	rg.POST("/printers/:id/default", h.SetDefault)
	rg.DELETE("/printers/:id", h.DeletePrinter)
}

func (h *PrinterHandler) ListPrinters(c *gin.Context) {
	printers, err := h.uc.ListPrinters(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"printers": printers})
}

func (h *PrinterHandler) AddPrinter(c *gin.Context) {
	var req dto.PrinterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	p, err := h.uc.AddPrinter(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PrinterHandler) UpdatePrinter(c *gin.Context) {
	var req dto.PrinterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	p, err := h.uc.UpdatePrinter(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PrinterHandler) SetDefault(c *gin.Context) {
	if err := h.uc.SetDefault(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PrinterHandler) DeletePrinter(c *gin.Context) {
	if err := h.uc.DeletePrinter(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
