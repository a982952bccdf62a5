package content

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/feral-file/media-monitor/internal/adapter"
	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/logger"
)

// Result is the outcome of a content fetch. Text is only set when Status is ok;
// Reason explains every other status.
type Result struct {
	Text   string
	Status domain.ContentStatus
	Reason string
}

// OK reports whether the fetch produced usable text
func (r Result) OK() bool {
	return r.Status == domain.ContentStatusOK && r.Text != ""
}

// Fetcher defines the interface for fetching the full text of an article
//
//go:generate mockgen -source=fetcher.go -destination=../mocks/content_fetcher.go -package=mocks -mock_names=Fetcher=MockContentFetcher
type Fetcher interface {
	// Fetch downloads a page and extracts its main text. It never returns an error;
	// failures are reported through the result status and reason.
	Fetch(ctx context.Context, url string) Result
}

// noiseSelectors are removed before text extraction
const noiseSelectors = "script, style, noscript, template, svg, nav, header, footer, aside, form, iframe, figure figcaption, .advertisement, .ads, .share, .related"

// minParagraphRunes drops short fragments such as captions and bylines
const minParagraphRunes = 40

type fetcher struct {
	httpClient adapter.HTTPClient
}

// NewFetcher creates a new content fetcher
func NewFetcher(httpClient adapter.HTTPClient) Fetcher {
	return &fetcher{httpClient: httpClient}
}

// Fetch downloads a page and extracts its main text
func (f *fetcher) Fetch(ctx context.Context, url string) Result {
	if strings.TrimSpace(url) == "" {
		return Result{Status: domain.ContentStatusSkipped, Reason: "empty url"}
	}

	resp, err := f.httpClient.Fetch(ctx, url, map[string]string{
		"Accept": "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8",
	})
	if err != nil {
		logger.DebugCtx(ctx, "content fetch failed", zap.String("url", url), zap.Error(err))
		return Result{Status: domain.ContentStatusError, Reason: err.Error()}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusPaymentRequired,
		resp.StatusCode == http.StatusUnavailableForLegalReasons:
		return Result{Status: domain.ContentStatusBlocked, Reason: fmt.Sprintf("status code %d", resp.StatusCode)}
	case !resp.OK():
		return Result{Status: domain.ContentStatusError, Reason: fmt.Sprintf("status code %d", resp.StatusCode)}
	}

	if !isHTML(resp) {
		return Result{
			Status: domain.ContentStatusSkipped,
			Reason: fmt.Sprintf("non-HTML content: %s", mimetype.Detect(resp.Body).String()),
		}
	}

	text, err := ExtractText(resp.Body)
	if err != nil {
		return Result{Status: domain.ContentStatusError, Reason: err.Error()}
	}
	if text == "" {
		return Result{Status: domain.ContentStatusError, Reason: "no extractable text"}
	}

	return Result{Text: text, Status: domain.ContentStatusOK}
}

// isHTML sniffs the body and falls back to the declared content type for
// documents that do not open with a recognizable tag
func isHTML(resp *adapter.Response) bool {
	detected := mimetype.Detect(resp.Body)
	if detected.Is("text/html") || detected.Is("application/xhtml+xml") {
		return true
	}
	declared := strings.ToLower(resp.ContentType())
	return detected.Is("text/plain") && strings.Contains(declared, "html")
}

// ExtractText returns the main text of an HTML document, one paragraph per line.
// The article element is preferred, then main, then the whole body.
func ExtractText(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	doc.Find(noiseSelectors).Remove()

	root := doc.Find("article").First()
	if root.Length() == 0 {
		root = doc.Find("main").First()
	}
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}

	var paragraphs []string
	root.Find("p, h2, h3, li, blockquote").Each(func(_ int, s *goquery.Selection) {
		// Nested matches are collected through their ancestor
		if s.ParentsFiltered("p, li, blockquote").Length() > 0 {
			return
		}
		text := strings.Join(strings.Fields(s.Text()), " ")
		if len([]rune(text)) >= minParagraphRunes {
			paragraphs = append(paragraphs, text)
		}
	})

	if len(paragraphs) == 0 {
		text := strings.Join(strings.Fields(root.Text()), " ")
		return text, nil
	}

	return strings.Join(paragraphs, "\n"), nil
}
