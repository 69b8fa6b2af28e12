package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/verimail/verimail/internal/ratelimit"
	"github.com/verimail/verimail/internal/transport/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLimitedRouter(window time.Duration, max int) *gin.Engine {
	r := gin.New()
	r.POST("/generate", middleware.RateLimit(ratelimit.New(window, max)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_AdmitsUpToMaxThen429(t *testing.T) {
	r := newLimitedRouter(5*time.Minute, 3)

	for i := 0; i < 3; i++ {
		w := post(r, `{"email":"a@x.com"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, w.Code)
		}
	}

	w := post(r, `{"email":"a@x.com"}`)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if !strings.Contains(w.Body.String(), "retryAfter") {
		t.Errorf("429 body missing retryAfter: %s", w.Body.String())
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("429 response missing Retry-After header")
	}
}

func TestRateLimit_SetsBudgetHeadersOnAdmission(t *testing.T) {
	r := newLimitedRouter(5*time.Minute, 10)

	w := post(r, `{"email":"a@x.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Header().Get("X-RateLimit-Limit") != "10" {
		t.Errorf("X-RateLimit-Limit = %q, want 10", w.Header().Get("X-RateLimit-Limit"))
	}
	if w.Header().Get("X-RateLimit-Remaining") != "9" {
		t.Errorf("X-RateLimit-Remaining = %q, want 9", w.Header().Get("X-RateLimit-Remaining"))
	}
	if w.Header().Get("X-RateLimit-Reset") == "" {
		t.Error("X-RateLimit-Reset not set")
	}
}

func TestRateLimit_MissingEmailBypasses(t *testing.T) {
	r := newLimitedRouter(5*time.Minute, 1)

	for i := 0; i < 5; i++ {
		w := post(r, `{}`)
		if w.Code != http.StatusOK {
			t.Fatalf("bypass request %d: status = %d, want 200", i+1, w.Code)
		}
	}
}

func TestRateLimit_HandlerCanStillBindBody(t *testing.T) {
	r := gin.New()
	r.POST("/generate", middleware.RateLimit(ratelimit.New(time.Minute, 5)), func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required,email"`
		}
		if err := c.ShouldBindBodyWithJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": req.Email})
	})

	w := post(r, `{"email":"a@x.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "a@x.com") {
		t.Errorf("handler did not see the body: %s", w.Body.String())
	}
}
