package logger

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-backend/internal/platform/config"
)

func TestMiddlewareLogsRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, hook := test.NewNullLogger()

	r := gin.New()
	r.Use(Middleware(log))
	r.GET("/api/projects/:id", func(c *gin.Context) {
		_ = c.Error(errors.New("mongo timeout"))
		c.Status(http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/projects/abc", nil))

	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	require.Len(t, hook.Entries, 1)
	e := hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, e.Level)
	assert.Equal(t, "/api/projects/:id", e.Data["route"])
	assert.Equal(t, http.StatusInternalServerError, e.Data["status"])
	assert.Contains(t, e.Data["errors"], "mongo timeout")
}

func TestMiddlewareKeepsIncomingRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, hook := test.NewNullLogger()

	r := gin.New()
	r.Use(Middleware(log))
	r.GET("/healthz", func(c *gin.Context) {
		assert.Equal(t, "abc-123", RequestID(c))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	log, cleanup, err := New(config.LogConfig{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
	assert.FileExists(t, path)
}
