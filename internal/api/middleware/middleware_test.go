package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/media-monitor/internal/api/middleware"
)

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetRequestID(c))
	})

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(middleware.REQUEST_ID_HEADER)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.REQUEST_ID_HEADER, "upstream-42")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, "upstream-42", rec.Header().Get(middleware.REQUEST_ID_HEADER))
		assert.Equal(t, "upstream-42", rec.Body.String())
	})

	t.Run("oversized header replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.REQUEST_ID_HEADER, strings.Repeat("x", middleware.MAX_REQUEST_ID_LENGTH+1))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		_, err := uuid.Parse(rec.Header().Get(middleware.REQUEST_ID_HEADER))
		assert.NoError(t, err)
	})
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Recovery())
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(middleware.REQUEST_ID_HEADER, "req-9")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"internal_error","message":"Internal server error","request_id":"req-9"}}`, rec.Body.String())
}
