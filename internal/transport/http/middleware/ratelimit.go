package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/verimail/verimail/internal/domain"
	"github.com/verimail/verimail/internal/metrics"
	"github.com/verimail/verimail/internal/ratelimit"
)

// RateLimit throttles issuance per email with the injected limiter.
// Requests without an email in the body pass through uncounted: only
// identified requests are throttled, and malformed bodies are left for
// the handler's binding to reject with a proper 400.
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Email string `json:"email"`
		}
		// Body is cached on the context so the handler can bind it again.
		if err := c.ShouldBindBodyWithJSON(&body); err != nil {
			c.Next()
			return
		}

		res := limiter.Admit(body.Email)
		if !res.Allowed {
			metrics.RateLimitedTotal.Inc()
			derr := domain.RateLimitError()
			c.Header("Retry-After", strconv.Itoa(res.RetryAfter))
			c.AbortWithStatusJSON(derr.Status, gin.H{
				"success":    false,
				"error":      derr.Message,
				"retryAfter": res.RetryAfter,
			})
			return
		}

		if !res.ResetAt.IsZero() {
			c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			c.Header("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
		}
		c.Next()
	}
}
