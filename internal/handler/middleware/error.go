package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"payment-gateway/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last public error for handlers that recorded one
// without writing a body themselves.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		if last := c.Errors.ByType(gin.ErrorTypePublic).Last(); last != nil {
			if resp, ok := last.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}
		resp := httperr.NewResponse(c, http.StatusInternalServerError, "Internal server error", nil)
		c.JSON(resp.Status, resp)
	}
}

// Recovery turns a panic into a 500 with the standard error body.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("recovered from panic",
					"panic", fmt.Sprint(rec),
					"request_id", GetRequestID(c),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()))

				resp := httperr.NewResponse(c, http.StatusInternalServerError, "Internal server error", nil)
				c.AbortWithStatusJSON(resp.Status, resp)
			}
		}()
		c.Next()
	}
}
