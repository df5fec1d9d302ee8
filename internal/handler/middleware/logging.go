package middleware

import (
	"log/slog"
	"os"
	"time"

	"payment-gateway/internal/handler/httperr"
	"payment-gateway/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader      = "X-Request-ID"
	IdempotencyKeyHeader = "X-Idempotency-Key"
	// ReplayedHeader is set on responses served from the idempotency cache.
	ReplayedHeader = "Idempotent-Replayed"

	maxRequestIDLength = 128
)

// NewLogger builds the process logger and installs it as the slog default.
// Release mode logs JSON; every other mode logs text.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	zone := time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.In(zone).Format(cfg.TimeFormat))
				}
			}
			return a
		},
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if gin.Mode() == gin.ReleaseMode {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// RequestLogger assigns every request an id (reusing a sane client-supplied
// one) and logs one line per request once the response is known.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}
		c.Set(httperr.RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("client_ip", c.ClientIP()),
			slog.Int("status_code", status),
			slog.Duration("duration", time.Since(start)),
		}
		if key := c.GetHeader(IdempotencyKeyHeader); key != "" {
			attrs = append(attrs, slog.String("idempotency_key", key))
		}
		if c.Writer.Header().Get(ReplayedHeader) != "" {
			attrs = append(attrs, slog.Bool("replayed", true))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		logger.LogAttrs(c.Request.Context(), levelForStatus(status), "request completed", attrs...)
	}
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(httperr.RequestIDKey)
}
