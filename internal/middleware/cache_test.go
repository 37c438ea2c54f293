package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/timelazy/timelazy-server/internal/config"
)

func testCacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{http.MethodGet: true},
		TTL:          time.Minute,
		KeyStrategy:  "user_route_query",
		Prefix:       "test:cache",
		MaxBodyBytes: 1 << 20,
	}
}

func TestCacheKey(t *testing.T) {
	cfg := testCacheConfig()

	a := CacheKey(cfg, http.MethodGet, "/v1/exams/1/seating", "", "7")
	require.Equal(t, a, CacheKey(cfg, http.MethodGet, "/v1/exams/1/seating", "", "7"))
	require.NotEqual(t, a, CacheKey(cfg, http.MethodGet, "/v1/exams/2/seating", "", "7"))
	require.NotEqual(t, a, CacheKey(cfg, http.MethodGet, "/v1/exams/1/seating", "", "8"))
	require.NotEqual(t, a, CacheKey(cfg, http.MethodGet, "/v1/exams/1/seating", "x=1", "7"))
	require.Regexp(t, `^test:cache:[0-9a-f]{40}$`, a)

	cfg.KeyStrategy = "route"
	require.Equal(t,
		CacheKey(cfg, http.MethodGet, "/v1/exams/1/seating", "x=1", "7"),
		CacheKey(cfg, http.MethodGet, "/v1/exams/1/seating", "", "8"))
}

func TestPayloadCodec(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"ok":true}`))
	require.NoError(t, err)

	status, gotHdr, body, ok := decodePayload(bs)
	require.True(t, ok)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	require.Equal(t, `{"ok":true}`, string(body))

	_, _, _, ok = decodePayload([]byte{0, 1})
	require.False(t, ok)
	_, _, _, ok = decodePayload([]byte{0, 0, 0, 200, 0, 0, 1, 0})
	require.False(t, ok)
}

func TestCaptureWriterLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
	_, _ = cw.Write([]byte("abc"))
	require.False(t, cw.truncated())
	_, _ = cw.Write([]byte("def"))
	require.True(t, cw.truncated())
	require.Equal(t, "abcd", cw.buf.String())
	require.Equal(t, "abcdef", rec.Body.String())
}

func TestNewRedisCachePassThroughWithoutClient(t *testing.T) {
	e := echo.New()
	calls := 0
	e.GET("/x", func(c echo.Context) error {
		calls++
		return c.String(http.StatusOK, "x")
	}, NewRedisCache(testCacheConfig(), nil))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("X-Cache"))
	}
	require.Equal(t, 2, calls)
	require.NoError(t, NewCachePurger(testCacheConfig(), nil).Purge(context.Background(), "7", "/x"))
}

// testRedis connects to TEST_REDIS_ADDR or skips the test.
func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, rdb.Ping(context.Background()).Err())
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestNewRedisCacheHitAndPurge(t *testing.T) {
	rdb := testRedis(t)
	cfg := testCacheConfig()
	cfg.Prefix = "test:cache:" + time.Now().Format("150405.000000")

	e := echo.New()
	calls := 0
	e.GET("/v1/exams/:id/seating", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id")})
	}, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ctxUserID, "7")
			return next(c)
		}
	}, NewRedisCache(cfg, rdb))

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	first := get("/v1/exams/1/seating")
	require.Equal(t, "MISS", first.Header().Get("X-Cache"))
	second := get("/v1/exams/1/seating")
	require.Equal(t, "HIT", second.Header().Get("X-Cache"))
	require.JSONEq(t, first.Body.String(), second.Body.String())
	require.Equal(t, 1, calls)

	other := get("/v1/exams/2/seating")
	require.Equal(t, "MISS", other.Header().Get("X-Cache"))
	require.JSONEq(t, `{"id":"2"}`, other.Body.String())

	require.NoError(t, NewCachePurger(cfg, rdb).Purge(context.Background(), "7", "/v1/exams/1/seating"))
	require.Equal(t, "MISS", get("/v1/exams/1/seating").Header().Get("X-Cache"))
	require.Equal(t, 3, calls)
}
