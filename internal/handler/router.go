package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"payment-gateway/internal/handler/api"
	"payment-gateway/internal/handler/httperr"
	"payment-gateway/internal/handler/middleware"
	"payment-gateway/internal/pkg/config"
)

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, paymentHandler *api.PaymentHandler) {
	// Recovery is outermost so it also catches panics raised by other middleware.
	engine.Use(
		middleware.Recovery(logger),
		middleware.NewCORSMiddleware(cfg.CORS, logger),
		middleware.RequestLogger(logger),
		middleware.ErrorHandler(),
	)

	engine.GET("/health", healthCheck)
	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	payments := engine.Group("/api/v1/payments")
	payments.POST("", paymentHandler.ProcessPayment)
	payments.GET("/:transactionId", paymentHandler.GetPayment)

	engine.NoRoute(func(c *gin.Context) {
		resp := httperr.NewResponse(c, http.StatusNotFound, "Route not found", nil)
		c.JSON(resp.Status, resp)
	})
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}
