package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

func newLimitedRouter(store Store, clock *fakeClock, limit int) *gin.Engine {
	rl := NewRateLimiter(store, RateLimitConfig{
		Window: 15 * time.Minute,
		Limit:  limit,
		Now:    clock.Now,
	}, zap.NewNop())

	r := gin.New()
	r.Use(rl.RateLimitMiddleware())
	r.GET("/", okHandler)
	return r
}

func requestFrom(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = ip + ":40000"
	return req
}

func stores(t *testing.T) map[string]Store {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  NewRedisStore(client),
	}
}

func TestRateLimitFixedWindow(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 1, 0, 0, time.UTC)}
			r := newLimitedRouter(store, clock, 100)

			for i := 1; i <= 100; i++ {
				w := perform(t, r, requestFrom("192.0.2.10"))
				require.Equal(t, http.StatusOK, w.Code, "request %d", i)
				assert.Equal(t, strconv.Itoa(100-i), w.Header().Get("X-RateLimit-Remaining"))
			}

			rejectsBefore := testutil.ToFloat64(rateLimitRejects)
			w := perform(t, r, requestFrom("192.0.2.10"))
			assert.Equal(t, http.StatusTooManyRequests, w.Code)
			assert.Equal(t, "100", w.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
			// window is 12:00-12:15, so 14 minutes are left
			assert.Equal(t, "840", w.Header().Get("Retry-After"))
			assert.Equal(t, rejectsBefore+1, testutil.ToFloat64(rateLimitRejects))

			// other clients have their own budget
			w = perform(t, r, requestFrom("192.0.2.11"))
			assert.Equal(t, http.StatusOK, w.Code)

			// a new window starts from zero
			clock.now = clock.now.Add(15 * time.Minute)
			w = perform(t, r, requestFrom("192.0.2.10"))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "99", w.Header().Get("X-RateLimit-Remaining"))
		})
	}
}

type failingStore struct{}

func (failingStore) Increment(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("store unavailable")
}

func TestRateLimitFailsOpen(t *testing.T) {
	r := newLimitedRouter(failingStore{}, &fakeClock{now: time.Now()}, 1)

	for i := 0; i < 3; i++ {
		w := perform(t, r, requestFrom("192.0.2.10"))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
	}
}

func TestMemoryStoreExpiresEntries(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	s := NewMemoryStore()
	s.now = clock.Now
	ctx := context.Background()

	n, err := s.Increment(ctx, "a", time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, _ = s.Increment(ctx, "a", time.Minute)
	assert.EqualValues(t, 2, n)

	clock.now = clock.now.Add(time.Minute)
	n, _ = s.Increment(ctx, "b", time.Minute)
	assert.EqualValues(t, 1, n)
	assert.NotContains(t, s.entries, "a", "expired entries are swept")

	n, _ = s.Increment(ctx, "a", time.Minute)
	assert.EqualValues(t, 1, n)
}

func TestRedisStoreSetsExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	s := NewRedisStore(client)
	n, err := s.Increment(context.Background(), "rate_limit:ip:1", 15*time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Equal(t, 15*time.Minute, mr.TTL("rate_limit:ip:1"))

	mr.FastForward(15 * time.Minute)
	assert.False(t, mr.Exists("rate_limit:ip:1"))
}
