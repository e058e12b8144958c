package middleware

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/contextutil"
	"go-workforce/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler renders the last error attached by a handler through the
// shared status table. Panics become an unexpected 500.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("http.error")

	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				contextutil.GetLogger(c.Request.Context(), logger).Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				if !c.Writer.Written() {
					response.Fail(c, http.StatusInternalServerError, apperror.MessageUnexpected)
				}
			}
		}()

		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}

		httpErr := apperror.ToHTTP(last.Err)
		fields := []zap.Field{
			zap.String("request_id", contextutil.GetRequestID(c.Request.Context())),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
			zap.Error(last.Err),
		}
		if httpErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed", fields...)
		} else {
			logger.Warn("request rejected", fields...)
		}

		if c.Writer.Written() {
			return
		}
		response.Fail(c, httpErr.Status, httpErr.Message)
	}
}
