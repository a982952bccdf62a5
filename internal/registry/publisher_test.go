package registry_test

import (
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/media-monitor/internal/mocks"
	"github.com/feral-file/media-monitor/internal/registry"
)

func TestPublisherRegistryLoader_Load(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		setupMocks   func(*mocks.MockFileSystem, *mocks.MockJSON)
		expectedErr  string // Error message to assert, empty means no error expected
		validateFunc func(t *testing.T, registry registry.PublisherRegistry)
	}{
		{
			name: "successful load extends defaults",
			path: "test.json",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("test.json").
					Return([]byte(`{
					"version": 1,
					"publishers": {
						"republika.co.id": "republika",
						"Tempo.co": "tempo-override"
					}
				}`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(data []byte, v interface{}) error {
						return json.Unmarshal(data, v)
					})
			},
			validateFunc: func(t *testing.T, reg registry.PublisherRegistry) {
				assert.Equal(t, "republika", reg.LookupPublisher("republika.co.id"))
				assert.Equal(t, "republika", reg.LookupPublisher("news.republika.co.id"))
				assert.Equal(t, "tempo-override", reg.LookupPublisher("tempo.co"))
				assert.Equal(t, "kompas", reg.LookupPublisher("kompas.com"))
			},
		},
		{
			name: "empty path uses defaults without reading",
			path: "",
			validateFunc: func(t *testing.T, reg registry.PublisherRegistry) {
				assert.Equal(t, "detik", reg.LookupPublisher("news.detik.com"))
			},
		},
		{
			name: "file read error",
			path: "test.json",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("test.json").
					Return(nil, assert.AnError)
			},
			expectedErr: "failed to read registry file",
		},
		{
			name: "JSON parse error",
			path: "test.json",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				publisherJSON := []byte(`invalid json`)
				mockFS.
					EXPECT().
					ReadFile("test.json").
					Return(publisherJSON, nil)
				mockJSON.
					EXPECT().
					Unmarshal(publisherJSON, gomock.Any()).
					Return(assert.AnError)
			},
			expectedErr: "failed to parse registry JSON",
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

			loader := registry.NewPublisherRegistryLoader(mockFS, mockJSON)
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

func TestPublisherRegistry_LookupPublisher(t *testing.T) {
	reg := registry.NewPublisherRegistry(map[string]string{
		"kompas.id": "kompas",
	})

	tests := []struct {
		host     string
		expected string
	}{
		{"kompas.com", "kompas"},
		{"nasional.kompas.com", "kompas"},
		{"regional.kompas.com", "kompas"},
		{"KOMPAS.COM", "kompas"},
		{"www.antaranews.com", "antara"},
		{"nasional.tempo.co", "tempo"},
		{"kompas.id", "kompas"},
		{"www.cnnindonesia.com", "cnnindonesia"},
		{"www.jakartapost.com", "jakartapost"},
		{"bbc.co.uk", "co"},
		{"localhost", "localhost"},
		{"", "unknown"},
		{"   ", "unknown"},
		{"notkompas.com", "notkompas"},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.expected, reg.LookupPublisher(tt.host))
		})
	}
}

func TestPublisherRegistry_IgnoresBlankOverrides(t *testing.T) {
	reg := registry.NewPublisherRegistry(map[string]string{
		"":          "nobody",
		"tempo.co":  "   ",
		"suara.com": "suara",
	})

	assert.Equal(t, "tempo", reg.LookupPublisher("tempo.co"))
	assert.Equal(t, "suara", reg.LookupPublisher("www.suara.com"))
}
