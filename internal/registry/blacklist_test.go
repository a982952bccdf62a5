package registry_test

import (
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/mocks"
	"github.com/feral-file/media-monitor/internal/registry"
)

func TestBlacklistRegistryLoader_Load(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		setupMocks   func(*mocks.MockFileSystem, *mocks.MockJSON)
		expectedErr  string // Error message to assert, empty means no error expected
		validateFunc func(t *testing.T, reg registry.BlacklistRegistry)
	}{
		{
			name: "successful load with valid JSON",
			path: "blacklist.json",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("blacklist.json").
					Return([]byte(`{
					"gdelt": ["spam.example", "Clickbait.COM"],
					"*": ["blocked.net"]
				}`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(data []byte, v interface{}) error {
						return json.Unmarshal(data, v)
					})
			},
			validateFunc: func(t *testing.T, reg registry.BlacklistRegistry) {
				assert.True(t, reg.IsBlacklisted(domain.PlatformGDELT, "spam.example"))
				assert.True(t, reg.IsBlacklisted(domain.PlatformGDELT, "clickbait.com"))
				assert.False(t, reg.IsBlacklisted(domain.PlatformRSS, "spam.example"))
				assert.True(t, reg.IsBlacklisted(domain.PlatformRSS, "blocked.net"))
				assert.True(t, reg.IsBlacklisted(domain.PlatformYouTube, "www.blocked.net"))
			},
		},
		{
			name: "empty path yields empty blacklist",
			path: "",
			validateFunc: func(t *testing.T, reg registry.BlacklistRegistry) {
				assert.False(t, reg.IsBlacklisted(domain.PlatformGDELT, "anything.com"))
			},
		},
		{
			name: "file read error",
			path: "blacklist.json",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("blacklist.json").
					Return(nil, assert.AnError)
			},
			expectedErr: "failed to read blacklist file",
		},
		{
			name: "JSON parse error",
			path: "blacklist.json",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("blacklist.json").
					Return([]byte(`invalid`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					Return(assert.AnError)
			},
			expectedErr: "failed to parse blacklist JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFS := mocks.NewMockFileSystem(ctrl)
			mockJSON := mocks.NewMockJSON(ctrl)

			if tt.setupMocks != nil {
				tt.setupMocks(mockFS, mockJSON)
			}

			loader := registry.NewBlacklistRegistryLoader(mockFS, mockJSON)
			reg, err := loader.Load(tt.path)

			if tt.expectedErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				assert.Nil(t, reg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, reg)
				if tt.validateFunc != nil {
					tt.validateFunc(t, reg)
				}
			}
		})
	}
}

func TestBlacklistRegistry_IsURLBlacklisted(t *testing.T) {
	reg := registry.NewBlacklistRegistry(registry.BlacklistData{
		"rss": {"ads.example.com"},
	})

	tests := []struct {
		name     string
		platform domain.Platform
		url      string
		expected bool
	}{
		{"exact host", domain.PlatformRSS, "https://ads.example.com/a", true},
		{"subdomain", domain.PlatformRSS, "https://x.ads.example.com/a?b=c", true},
		{"parent is not blacklisted", domain.PlatformRSS, "https://example.com/a", false},
		{"other platform", domain.PlatformMediaStack, "https://ads.example.com/a", false},
		{"empty url", domain.PlatformRSS, "", false},
		{"unparseable url", domain.PlatformRSS, "://bad", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, reg.IsURLBlacklisted(tt.platform, tt.url))
		})
	}
}
