package api

import (
	"github.com/bobbyohyeah/skyebot-support/internal/api/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter sets up the Gin router
func SetupRouter(handler *Handler, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS([]string{"*"}))

	r.GET("/health", handler.Health)
	r.POST("/webhook", handler.Inquire)

	return r
}
