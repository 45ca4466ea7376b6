package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func newLimitedRouter(rl *RateLimiter, pre ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Identity("user-1"))
	r.Use(pre...)
	r.Use(rl.Handler())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hit(r *gin.Engine, user string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if user != "" {
		req.Header.Set(HeaderUserID, user)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	r := newLimitedRouter(NewRateLimiter(1, 1, KeyByUserOrIP()))

	if w := hit(r, ""); w.Code != http.StatusOK {
		t.Fatalf("first request = %d", w.Code)
	}
	w := hit(r, "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request = %d; want 429", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "1" {
		t.Fatalf("Retry-After = %q; want 1", got)
	}
	if !strings.Contains(w.Body.String(), `"too_many_requests"`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestRateLimiter_SeparateBucketsPerUser(t *testing.T) {
	r := newLimitedRouter(NewRateLimiter(1, 1, KeyByUserOrIP()))
	if hit(r, "user-2").Code != http.StatusOK || hit(r, "user-3").Code != http.StatusOK {
		t.Fatal("different users should not share a bucket")
	}
	if hit(r, "user-2").Code != http.StatusTooManyRequests {
		t.Fatal("user-2 should be limited on the second request")
	}
}

func TestRateLimiter_ReplayBypass(t *testing.T) {
	bypass := func(c *gin.Context) { c.Set(ctxKeyRateBypass, true); c.Next() }
	r := newLimitedRouter(NewRateLimiter(1, 1, KeyByUserOrIP()), bypass)
	for i := 0; i < 5; i++ {
		if w := hit(r, ""); w.Code != http.StatusOK {
			t.Fatalf("replay %d limited: %d", i, w.Code)
		}
	}
}

func TestKeyByUserOrIP_FallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "203.0.113.7:1234"
	if got := KeyByUserOrIP()(c); got != "ip:203.0.113.7" {
		t.Fatalf("key = %q", got)
	}
	c.Set(ctxKeyUserID, "user-4")
	if got := KeyByUserOrIP()(c); got != "user:user-4" {
		t.Fatalf("key = %q", got)
	}
}

func TestRateLimiter_EvictsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(1, 1, KeyByUserOrIP())
	rl.cleanupMax = 1

	first := rl.getVisitor("stale")
	rl.mu.Lock()
	rl.visitors["stale"].lastSeen = time.Now().Add(-time.Hour)
	rl.mu.Unlock()

	_ = rl.getVisitor("fresh")
	rl.mu.Lock()
	_, stale := rl.visitors["stale"]
	n := len(rl.visitors)
	rl.mu.Unlock()
	if stale || n != 1 {
		t.Fatalf("stale bucket kept: stale=%v size=%d", stale, n)
	}
	if rl.getVisitor("stale") == first {
		t.Fatal("evicted bucket was reused")
	}
}

func TestRetryAfter(t *testing.T) {
	cases := []struct {
		limit rate.Limit
		want  int
	}{
		{0, 1},
		{0.5, 2},
		{1, 1},
		{20, 1},
	}
	for _, tc := range cases {
		if got := retryAfter(rate.NewLimiter(tc.limit, 1)); got != tc.want {
			t.Fatalf("retryAfter(%v) = %d; want %d", tc.limit, got, tc.want)
		}
	}
}

func TestNewRateLimiter_CoercesBurst(t *testing.T) {
	if rl := NewRateLimiter(1, 0, KeyByUserOrIP()); rl.burst != 1 {
		t.Fatalf("burst = %d; want 1", rl.burst)
	}
}
