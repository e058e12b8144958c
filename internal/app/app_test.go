package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-workforce/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newPingableGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return gdb, mock
}

func TestRegisterModules_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb, _ := newPingableGorm(t)

	r := gin.New()
	registerModules(r, &config.Config{}, gdb, nil, zap.NewNop())

	var got []string
	for _, route := range r.Routes() {
		got = append(got, route.Method+" "+route.Path)
	}

	assert.ElementsMatch(t, []string{
		"GET /api/employees",
		"GET /api/employees/:id",
		"POST /api/employees",
		"PUT /api/employees/:id",
		"PATCH /api/employees/:id",
		"DELETE /api/employees/:id",
	}, got)
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("database up", func(t *testing.T) {
		gdb, mock := newPingableGorm(t)
		mock.ExpectPing()

		r := gin.New()
		r.GET("/healthz", healthHandler(gdb))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database down", func(t *testing.T) {
		gdb, mock := newPingableGorm(t)
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		r := gin.New()
		r.GET("/healthz", healthHandler(gdb))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "Database unavailable")
	})
}
