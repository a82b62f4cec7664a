package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-register-service/internal/ingredient"
	"github.com/fekuna/omnipos-register-service/internal/ingredient/dto"
	"github.com/fekuna/omnipos-register-service/internal/response"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type IngredientHandler struct {
	uc     ingredient.UseCase
	logger logger.ZapLogger
}

func NewIngredientHandler(uc ingredient.UseCase, log logger.ZapLogger) *IngredientHandler {
	return &IngredientHandler{uc: uc, logger: log}
}

type ingredientRequest struct {
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
}

type recipeRequest struct {
	Lines []dto.RecipeLineInput `json:"lines"`
}

func (h *IngredientHandler) RegisterRead(rg *gin.RouterGroup) {
	rg.GET("/ingredients", h.ListIngredients)
	rg.GET("/ingredients/:id", h.GetIngredient)
	rg.GET("/products/:id/recipe", h.GetRecipe)
	rg.GET("/products/:id/hpp", h.GetProductHPP)
}

func (h *IngredientHandler) RegisterWrite(rg *gin.RouterGroup) {
	rg.POST("/ingredients", h.CreateIngredient)
	rg.PUT("/ingredients/:id", h.UpdateIngredient)
	rg.DELETE("/ingredients/:id", h.DeleteIngredient)
	rg.PUT("/products/:id/recipe", h.SetRecipe)
}

func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	ing, err := h.uc.CreateIngredient(c.Request.Context(), &dto.CreateIngredientInput{
		Name: req.Name, Unit: req.Unit, CostPerUnit: req.CostPerUnit,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, ing)
}

func (h *IngredientHandler) GetIngredient(c *gin.Context) {
	ing, err := h.uc.GetIngredient(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}

func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	all, err := h.uc.ListIngredients(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": all})
}

func (h *IngredientHandler) UpdateIngredient(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	ing, err := h.uc.UpdateIngredient(c.Request.Context(), &dto.UpdateIngredientInput{
		ID: c.Param("id"), Name: req.Name, Unit: req.Unit, CostPerUnit: req.CostPerUnit,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}

func (h *IngredientHandler) DeleteIngredient(c *gin.Context) {
	if err := h.uc.DeleteIngredient(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *IngredientHandler) GetRecipe(c *gin.Context) {
	view, err := h.uc.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *IngredientHandler) SetRecipe(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	view, err := h.uc.SetRecipe(c.Request.Context(), &dto.SetRecipeInput{ProductID: c.Param("id"), Lines: req.Lines})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *IngredientHandler) GetProductHPP(c *gin.Context) {
	m, err := h.uc.GetProductHPP(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, m)
}
