package response

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/pkg/i18n"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func StatusOf(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindUnauthorized:
		return http.StatusUnauthorized
	case apperror.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as a localized JSON error and aborts the chain. Errors
// that are not *apperror.Error are logged and hidden behind a generic 500.
func Error(c *gin.Context, log logger.ZapLogger, err error) {
	lang := c.GetHeader("Accept-Language")

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errorBody{
			Code:    "internal_error",
			Message: i18n.Localize(lang, "internal_error", "internal server error"),
		}})
		return
	}

	c.AbortWithStatusJSON(StatusOf(appErr.Kind), gin.H{"error": errorBody{
		Code:    appErr.Code,
		Message: i18n.Localize(lang, appErr.Code, appErr.Message),
		Detail:  appErr.Detail,
	}})
}

// BadRequest reports a body or query that failed to bind.
func BadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errorBody{
		Code:    "invalid_request",
		Message: i18n.Localize(c.GetHeader("Accept-Language"), "invalid_request", "invalid request"),
		Detail:  err.Error(),
	}})
}
