package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/verimail/verimail/internal/ratelimit"
	"github.com/verimail/verimail/internal/transport/http/handler"
	"github.com/verimail/verimail/internal/transport/http/middleware"
)

func NewRouter(logger *slog.Logger, verificationHandler *handler.VerificationHandler, limiter *ratelimit.Limiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	verification := r.Group("/api/verification")
	verification.POST("/generate", middleware.RateLimit(limiter), verificationHandler.Generate)
	verification.POST("/verify", verificationHandler.Verify)
	verification.POST("/status", verificationHandler.Status)

	return r
}
