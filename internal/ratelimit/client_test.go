package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/media-monitor/internal/adapter"
	"github.com/feral-file/media-monitor/internal/logger"
	"github.com/feral-file/media-monitor/internal/mocks"
	"github.com/feral-file/media-monitor/internal/ratelimit"
)

func init() {
	_ = logger.Initialize(logger.Config{Debug: true})
}

func TestNewHTTPClient_NoLimitsReturnsInner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mocks.NewMockHTTPClient(ctrl)
	assert.Same(t, inner, ratelimit.NewHTTPClient(inner, nil))
	assert.Same(t, inner, ratelimit.NewHTTPClient(inner, map[string]ratelimit.Limit{
		"broken": {Host: "", RequestsPerSecond: 1},
	}))
}

func TestClient_ThrottlesMatchingHost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mocks.NewMockHTTPClient(ctrl)
	client := ratelimit.NewHTTPClient(inner, map[string]ratelimit.Limit{
		"gdelt": {Host: "api.gdeltproject.org", RequestsPerSecond: 0.001, Burst: 1},
	})

	// The burst token is granted immediately
	inner.EXPECT().Fetch(gomock.Any(), "https://api.gdeltproject.org/api/v2/doc/doc?query=a", nil).
		Return(&adapter.Response{StatusCode: 200}, nil)
	resp, err := client.Fetch(context.Background(), "https://api.gdeltproject.org/api/v2/doc/doc?query=a", nil)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	// The next token is far beyond the deadline
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.Fetch(ctx, "https://api.gdeltproject.org/api/v2/doc/doc?query=b", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to acquire rate limit token for gdelt")
}

func TestClient_OtherHostsPassThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mocks.NewMockHTTPClient(ctrl)
	client := ratelimit.NewHTTPClient(inner, map[string]ratelimit.Limit{
		"gemini": {Host: "googleapis.com", RequestsPerSecond: 0.001, Burst: 1},
	})

	inner.EXPECT().Get(gomock.Any(), "https://kompas.com/rss", gomock.Any()).Return(nil).Times(3)
	for i := 0; i < 3; i++ {
		require.NoError(t, client.Get(context.Background(), "https://kompas.com/rss", nil))
	}

	// Subdomains share the parent limiter
	inner.EXPECT().Post(gomock.Any(), "https://generativelanguage.googleapis.com/v1beta/models/m:generateContent", "application/json", []byte("{}")).
		Return([]byte("ok"), nil)
	body, err := client.Post(context.Background(), "https://generativelanguage.googleapis.com/v1beta/models/m:generateContent", "application/json", []byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), body)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.Post(ctx, "https://generativelanguage.googleapis.com/v1beta/models/m:generateContent", "application/json", []byte("{}"))
	assert.Error(t, err)
}
