package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unifiedui/docsession/internal/api/dto"
	domainerrors "github.com/unifiedui/docsession/internal/domain/errors"
)

// Recovery returns a gin middleware that turns panics into 500 responses.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := GetRequestLogger(c)
				logger.Error().
					Interface("error", err).
					Str("path", c.Request.URL.Path).
					Str("method", c.Request.Method).
					Msg("panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Code:    domainerrors.ErrCodeInternal,
					Message: "internal server error",
				})
			}
		}()
		c.Next()
	}
}

// HandleError writes the HTTP response for err. Domain errors keep their
// code and status; anything else becomes a 500.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	if domainErr, ok := domainerrors.GetDomainError(err); ok {
		if domainErr.HTTPStatus >= http.StatusInternalServerError {
			logger := GetRequestLogger(c)
			logger.Error().Err(err).Msg("request failed")
		}
		c.AbortWithStatusJSON(domainErr.HTTPStatus, dto.ErrorResponse{
			Code:    domainErr.Code,
			Message: domainErr.Message,
			Details: domainErr.Details,
		})
		return
	}

	logger := GetRequestLogger(c)
	logger.Error().Err(err).Msg("unhandled error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
		Code:    domainerrors.ErrCodeInternal,
		Message: "internal server error",
	})
}

// NotFound returns a 404 handler for unknown routes.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Code:    domainerrors.ErrCodeNotFound,
			Message: "route not found",
			Details: c.Request.URL.Path,
		})
	}
}
