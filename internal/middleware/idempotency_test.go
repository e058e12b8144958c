package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-workforce/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func idempotentEngine(t *testing.T, calls *int) (*gin.Engine, redismock.ClientMock) {
	t.Helper()
	rdb, mock := redismock.NewClientMock()

	r := newEngine(middleware.ErrorHandler(zap.NewNop()))
	r.POST("/api/employees", middleware.Idempotency(rdb, time.Hour), func(c *gin.Context) {
		*calls++
		c.Header("Location", "/api/employees/e-1")
		c.JSON(http.StatusCreated, gin.H{"status": http.StatusCreated, "data": gin.H{"id": "e-1"}})
	})

	t.Cleanup(func() { assert.NoError(t, mock.ExpectationsWereMet()) })
	return r, mock
}

func postWithKey(key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/employees", nil)
	if key != "" {
		req.Header.Set(middleware.HeaderIdempotencyKey, key)
	}
	return req
}

func TestIdempotency(t *testing.T) {
	cacheKey := middleware.IdempotencyCacheKey("/api/employees", "k-1")
	lockKey := cacheKey + ":lock"

	t.Run("first request runs handler and stores response", func(t *testing.T) {
		calls := 0
		r, mock := idempotentEngine(t, &calls)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.Regexp().ExpectSet(cacheKey, `.*`, time.Hour).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		w := serve(r, postWithKey("k-1"))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("replay returns stored response without running handler", func(t *testing.T) {
		calls := 0
		r, mock := idempotentEngine(t, &calls)

		stored, err := json.Marshal(map[string]any{
			"status":   http.StatusCreated,
			"location": "/api/employees/e-1",
			"body":     []byte(`{"status":201,"data":{"id":"e-1"}}`),
		})
		require.NoError(t, err)
		mock.ExpectGet(cacheKey).SetVal(string(stored))

		w := serve(r, postWithKey("k-1"))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get(middleware.HeaderIdempotentReplayed))
		assert.Equal(t, "/api/employees/e-1", w.Header().Get("Location"))
		assert.JSONEq(t, `{"status":201,"data":{"id":"e-1"}}`, w.Body.String())
		assert.Zero(t, calls)
	})

	t.Run("in-flight duplicate is a conflict", func(t *testing.T) {
		calls := 0
		r, mock := idempotentEngine(t, &calls)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		w := serve(r, postWithKey("k-1"))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Zero(t, calls)
	})

	t.Run("redis failure degrades to a normal request", func(t *testing.T) {
		calls := 0
		r, mock := idempotentEngine(t, &calls)

		mock.ExpectGet(cacheKey).SetErr(errors.New("connection refused"))

		w := serve(r, postWithKey("k-1"))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("no key passes through", func(t *testing.T) {
		calls := 0
		r, _ := idempotentEngine(t, &calls)

		w := serve(r, postWithKey(""))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
	})
}
