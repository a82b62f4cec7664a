package middleware

import (
	"strings"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/auth"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/response"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a valid "Bearer <token>" header and stores the
// user in the request context.
func AuthMiddleware(tokens *auth.TokenManager, log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			response.Error(c, log, apperror.ErrUnauthenticated)
			return
		}

		user, err := tokens.Validate(token)
		if err != nil {
			response.Error(c, log, apperror.ErrUnauthenticated.WithDetail("%v", err))
			return
		}

		c.Request = c.Request.WithContext(auth.WithUser(c.Request.Context(), user))
		c.Next()
	}
}

// RequireRole lets the request through only for the listed roles. It must
// run after AuthMiddleware.
func RequireRole(log logger.ZapLogger, roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.FromContext(c.Request.Context())
		if !ok {
			response.Error(c, log, apperror.ErrUnauthenticated)
			return
		}
		if !user.HasRole(roles...) {
			response.Error(c, log, apperror.ErrForbidden)
			return
		}
		c.Next()
	}
}
