package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"

	"schedule-planner/pkg/log"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := newRateLimiter(20) // burst 2

	if err := rl.Allow("a"); err != nil {
		t.Fatalf("first request rejected: %v", err)
	}
	if err := rl.Allow("a"); err != nil {
		t.Fatalf("second request rejected: %v", err)
	}
	if err := rl.Allow("a"); err == nil {
		t.Error("third request should exceed the burst")
	}
	if err := rl.Allow("b"); err != nil {
		t.Errorf("other clients have their own bucket: %v", err)
	}
}

func TestRateLimiter_ConcurrentFirstRequests(t *testing.T) {
	rl := newRateLimiter(30) // burst 3

	var (
		wg      sync.WaitGroup
		allowed int32
		start   = make(chan struct{})
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if rl.Allow("10.0.0.9") == nil {
				atomic.AddInt32(&allowed, 1)
			}
		}()
	}
	close(start)
	wg.Wait()

	// A racing lookup-or-create would hand out one fresh bucket per goroutine.
	if got := atomic.LoadInt32(&allowed); got != 3 {
		t.Errorf("allowed = %d, want the burst of 3", got)
	}
	if rl.limiters.Len() != 1 {
		t.Errorf("tracked clients = %d, want 1", rl.limiters.Len())
	}
}

func TestRateLimit_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(perMin int) *gin.Engine {
		r := gin.New()
		mw := New(log.NewNop(), Config{RateLimitPerMin: perMin})
		r.GET("/", mw.RateLimit(), func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	do := func(r *gin.Engine) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		return w.Code
	}

	limited := newRouter(1)
	if code := do(limited); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if code := do(limited); code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", code)
	}

	unlimited := newRouter(0)
	for i := 0; i < 5; i++ {
		if code := do(unlimited); code != http.StatusOK {
			t.Fatalf("disabled limiter rejected request %d", i)
		}
	}
}
