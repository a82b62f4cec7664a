package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/auth"
	"github.com/fekuna/omnipos-register-service/internal/auth/dto"
	"github.com/fekuna/omnipos-register-service/internal/response"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	uc     auth.UseCase
	logger logger.ZapLogger
}

func NewAuthHandler(uc auth.UseCase, log logger.ZapLogger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: log}
}

type loginRequest struct {
	Email string `json:"email"`
	PIN   string `json:"pin" binding:"required"`
}

// RegisterPublic mounts the routes that need no token.
func (h *AuthHandler) RegisterPublic(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
}

func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/refresh", h.Refresh)
	rg.GET("/auth/me", h.Me)
	rg.POST("/auth/logout", h.Logout)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	session, err := h.uc.Login(c.Request.Context(), &dto.LoginInput{Email: req.Email, PIN: req.PIN})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	user, ok := auth.FromContext(c.Request.Context())
	if !ok {
		response.Error(c, h.logger, apperror.ErrUnauthenticated)
		return
	}
	session, err := h.uc.Refresh(c.Request.Context(), user)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := auth.FromContext(c.Request.Context())
	if !ok {
		response.Error(c, h.logger, apperror.ErrUnauthenticated)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": user.UserID, "name": user.Name, "role": user.Role})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := auth.FromContext(c.Request.Context())
	if !ok {
		response.Error(c, h.logger, apperror.ErrUnauthenticated)
		return
	}
	if err := h.uc.Logout(c.Request.Context(), user); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
