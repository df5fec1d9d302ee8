package middleware

import (
	"log/slog"
	"slices"

	"payment-gateway/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Clients must be able to send and read these regardless of configuration.
var (
	requiredAllowHeaders  = []string{IdempotencyKeyHeader, RequestIDHeader}
	requiredExposeHeaders = []string{ReplayedHeader, RequestIDHeader}
)

func NewCORSMiddleware(cfg config.CORSConfig, logger *slog.Logger) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     withHeaders(cfg.AllowHeaders, requiredAllowHeaders),
		ExposeHeaders:    withHeaders(cfg.ExposeHeaders, requiredExposeHeaders),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	logger.Info("CORS middleware initialized", "allow_origins", cfg.AllowOrigins)
	return cors.New(corsCfg)
}

func withHeaders(configured, required []string) []string {
	out := slices.Clone(configured)
	for _, h := range required {
		if !slices.Contains(out, h) {
			out = append(out, h)
		}
	}
	return out
}
