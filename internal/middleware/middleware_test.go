package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/workshop-hub-api/internal/models"
	appErrors "github.com/noah-isme/workshop-hub-api/pkg/errors"
)

type stubPasses struct{}

func (stubPasses) Validate(token string) (*models.PassClaims, error) {
	if token == "good" {
		return &models.PassClaims{RegistrationID: "reg-1"}, nil
	}
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid attendee pass")
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		if claims := PassFromContext(c); claims != nil {
			c.String(http.StatusOK, claims.RegistrationID)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	r.GET("/", handlers...)
	return r
}

func serve(r *gin.Engine, auth string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequirePass(t *testing.T) {
	r := newRouter(RequirePass(stubPasses{}))
	assert.Equal(t, http.StatusUnauthorized, serve(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "Basic good").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "Bearer bad").Code)

	rec := serve(r, "Bearer good")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "reg-1", rec.Body.String())
}

func TestOptionalPass(t *testing.T) {
	r := newRouter(OptionalPass(stubPasses{}))
	assert.Equal(t, "anonymous", serve(r, "").Body.String())
	assert.Equal(t, "anonymous", serve(r, "Bearer bad").Body.String())
	assert.Equal(t, "reg-1", serve(r, "bearer good").Body.String())
}

func TestRateLimiterBurst(t *testing.T) {
	l := NewRateLimiter(1, 2)
	frozen := time.Unix(1700000000, 0)
	l.now = func() time.Time { return frozen }

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))

	frozen = frozen.Add(time.Second)
	assert.True(t, l.Allow("a"))
}

func TestRateLimiterEvictsIdleVisitors(t *testing.T) {
	l := NewRateLimiter(1, 1)
	frozen := time.Unix(1700000000, 0)
	l.now = func() time.Time { return frozen }
	l.Allow("a")
	frozen = frozen.Add(time.Hour)
	l.Allow("b")
	assert.Len(t, l.visitors, 2)

	assert.Equal(t, 1, l.Sweep())
	assert.Len(t, l.visitors, 1)
	assert.Contains(t, l.visitors, "b")
}

func TestRateLimiterRunSweepsUntilCancelled(t *testing.T) {
	l := NewRateLimiter(1, 1)
	frozen := time.Unix(1700000000, 0)
	var clockMu sync.Mutex
	l.now = func() time.Time {
		clockMu.Lock()
		defer clockMu.Unlock()
		return frozen
	}
	l.Allow("a")
	clockMu.Lock()
	frozen = frozen.Add(time.Hour)
	clockMu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		l.mu.Lock()
		defer l.mu.Unlock()
		return len(l.visitors) == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newRouter(RateLimit(NewRateLimiter(0.001, 1)))
	assert.Equal(t, http.StatusOK, serve(r, "").Code)
	rec := serve(r, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestResponseMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	assert.Nil(t, ExtractMeta(c))

	WithResponseMeta()(c)
	SetCacheHit(c, true)
	SetMeta(c, "message", "done")
	meta := ExtractMeta(c)
	require.NotNil(t, meta)
	assert.Equal(t, true, meta["cache_hit"])
	assert.Equal(t, "done", meta["message"])
	assert.Contains(t, meta, "processing_time_ms")
}

func TestBearerToken(t *testing.T) {
	_, ok := bearerToken("Bearer ")
	assert.False(t, ok)
	token, ok := bearerToken("  Bearer abc ")
	assert.True(t, ok)
	assert.Equal(t, "abc", token)
}
