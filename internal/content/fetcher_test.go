package content_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/media-monitor/internal/adapter"
	"github.com/feral-file/media-monitor/internal/content"
	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/mocks"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Berita</title><script>var x = 1;</script></head>
<body>
  <nav><p>Beranda Nasional Ekonomi Olahraga Hiburan Teknologi Otomotif</p></nav>
  <article>
    <h1>Judul</h1>
    <p>Presiden menghadiri rapat kabinet di Istana Merdeka pada Senin pagi bersama para menteri.</p>
    <p>Singkat.</p>
    <div class="ads"><p>Iklan: beli sekarang juga dengan diskon besar untuk semua produk kami.</p></div>
    <p>Rapat   membahas
       anggaran negara untuk tahun depan serta program prioritas pemerintah.</p>
  </article>
  <footer><p>Hak cipta dilindungi undang-undang dan seluruh isi situs ini milik redaksi.</p></footer>
</body>
</html>`

func TestFetcher_Fetch(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		response       *adapter.Response
		err            error
		expectedStatus domain.ContentStatus
		expectedText   string
		reasonContains string
	}{
		{
			name: "extracts article paragraphs",
			url:  "https://example.com/a",
			response: &adapter.Response{
				StatusCode: http.StatusOK,
				Header:     http.Header{"Content-Type": []string{"text/html; charset=utf-8"}},
				Body:       []byte(articleHTML),
			},
			expectedStatus: domain.ContentStatusOK,
			expectedText: "Presiden menghadiri rapat kabinet di Istana Merdeka pada Senin pagi bersama para menteri.\n" +
				"Rapat membahas anggaran negara untuk tahun depan serta program prioritas pemerintah.",
		},
		{
			name:           "forbidden is blocked",
			url:            "https://example.com/paywall",
			response:       &adapter.Response{StatusCode: http.StatusForbidden, Header: http.Header{}},
			expectedStatus: domain.ContentStatusBlocked,
			reasonContains: "403",
		},
		{
			name:           "not found is an error",
			url:            "https://example.com/missing",
			response:       &adapter.Response{StatusCode: http.StatusNotFound, Header: http.Header{}},
			expectedStatus: domain.ContentStatusError,
			reasonContains: "404",
		},
		{
			name: "pdf is skipped",
			url:  "https://example.com/doc.pdf",
			response: &adapter.Response{
				StatusCode: http.StatusOK,
				Header:     http.Header{"Content-Type": []string{"application/pdf"}},
				Body:       []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj"),
			},
			expectedStatus: domain.ContentStatusSkipped,
			reasonContains: "application/pdf",
		},
		{
			name:           "transport error",
			url:            "https://example.com/timeout",
			err:            assert.AnError,
			expectedStatus: domain.ContentStatusError,
			reasonContains: assert.AnError.Error(),
		},
		{
			name: "html without text",
			url:  "https://example.com/empty",
			response: &adapter.Response{
				StatusCode: http.StatusOK,
				Header:     http.Header{"Content-Type": []string{"text/html"}},
				Body:       []byte(`<html><body><script>app()</script></body></html>`),
			},
			expectedStatus: domain.ContentStatusError,
			reasonContains: "no extractable text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			httpClient := mocks.NewMockHTTPClient(ctrl)
			httpClient.
				EXPECT().
				Fetch(gomock.Any(), tt.url, gomock.Any()).
				Return(tt.response, tt.err)

			result := content.NewFetcher(httpClient).Fetch(context.Background(), tt.url)

			assert.Equal(t, tt.expectedStatus, result.Status)
			assert.Equal(t, tt.expectedText, result.Text)
			if tt.reasonContains != "" {
				assert.Contains(t, result.Reason, tt.reasonContains)
			}
			assert.Equal(t, tt.expectedStatus == domain.ContentStatusOK, result.OK())
		})
	}
}

func TestFetcher_EmptyURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No HTTP expectation: an empty url never reaches the network
	httpClient := mocks.NewMockHTTPClient(ctrl)

	result := content.NewFetcher(httpClient).Fetch(context.Background(), "  ")
	assert.Equal(t, domain.ContentStatusSkipped, result.Status)
	assert.Equal(t, "empty url", result.Reason)
}

func TestExtractText_FallsBackToBody(t *testing.T) {
	text, err := content.ExtractText([]byte(`<html><body><div>Teks pendek tanpa paragraf</div></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "Teks pendek tanpa paragraf", text)
}

func TestExtractText_PrefersMain(t *testing.T) {
	long := strings.Repeat("kata ", 12)
	html := `<html><body><div><p>` + long + `luar</p></div><main><p>` + long + `dalam</p></main></body></html>`

	text, err := content.ExtractText([]byte(html))
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(long)+" dalam", text)
}
