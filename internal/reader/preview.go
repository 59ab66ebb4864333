// Package reader turns an external web page into draft-prefill material for
// the editorial form: a candidate title, a short summary, and the readable
// body text.
package reader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "codeberg.org/readeck/go-readability/v2"
)

const (
	DefaultFetchTimeout  = 12 * time.Second
	DefaultBodyByteLimit = 2 * 1024 * 1024
	DefaultSummaryChars  = 300

	defaultUserAgent = "BBI-DraftPreview/1.0"
)

// Preview is draft-prefill material extracted from one page.
type Preview struct {
	Judul     string `json:"judul"`
	Ringkasan string `json:"ringkasan"`
	IsiKonten string `json:"isi_konten"`
	SourceURL string `json:"source_url"`
}

// FetchOptions controls HTTP behavior for preview extraction.
type FetchOptions struct {
	Timeout       time.Duration
	BodyByteLimit int64
	UserAgent     string
	HTTPClient    *http.Client
}

// FetchPreview retrieves pageURL and extracts readable content from it.
func FetchPreview(ctx context.Context, pageURL string) (*Preview, error) {
	return FetchPreviewWithOptions(ctx, pageURL, FetchOptions{})
}

func FetchPreviewWithOptions(ctx context.Context, pageURL string, opts FetchOptions) (*Preview, error) {
	page := strings.TrimSpace(pageURL)
	if page == "" {
		return nil, fmt.Errorf("url is required")
	}
	parsed, err := url.Parse(page)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("url must be absolute http or https")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	bodyLimit := opts.BodyByteLimit
	if bodyLimit <= 0 {
		bodyLimit = DefaultBodyByteLimit
	}

	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, page, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, bodyLimit))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var text string
	contentType := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Type")))
	if strings.HasPrefix(contentType, "text/plain") {
		text = CleanText(string(body))
	} else {
		article, err := readability.FromReader(bytes.NewReader(body), parsed)
		if err != nil {
			return nil, fmt.Errorf("readability parse: %w", err)
		}
		var rendered bytes.Buffer
		if err := article.RenderText(&rendered); err != nil {
			return nil, fmt.Errorf("render readability text: %w", err)
		}
		text = CleanText(rendered.String())
		if text == "" {
			text = CleanText(article.Excerpt())
		}
	}
	if text == "" {
		return nil, fmt.Errorf("extracted empty content")
	}

	return buildPreview(text, page), nil
}

// buildPreview splits extracted text into form fields. The first paragraph
// becomes the candidate title, a clipped prefix the summary, and everything
// the body.
func buildPreview(text, sourceURL string) *Preview {
	paragraphs := strings.SplitN(text, "\n\n", 2)
	judul := paragraphs[0]
	if clipped, truncated := TruncateText(judul, 120); truncated {
		judul = clipped
	}

	ringkasan, _ := TruncateText(strings.ReplaceAll(text, "\n\n", " "), DefaultSummaryChars)

	return &Preview{
		Judul:     judul,
		Ringkasan: ringkasan,
		IsiKonten: text,
		SourceURL: sourceURL,
	}
}

// CleanText normalizes line endings and collapses extra in-line whitespace.
func CleanText(raw string) string {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	lines := strings.Split(normalized, "\n")
	paragraphs := make([]string, 0, len(lines))
	for _, line := range lines {
		clean := strings.Join(strings.Fields(strings.TrimSpace(line)), " ")
		if clean == "" {
			continue
		}
		paragraphs = append(paragraphs, clean)
	}

	return strings.TrimSpace(strings.Join(paragraphs, "\n\n"))
}

// TruncateText clips text to maxChars runes and appends an ellipsis rune
// when something was cut.
func TruncateText(raw string, maxChars int) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	if maxChars <= 0 {
		return trimmed, false
	}

	runes := []rune(trimmed)
	if len(runes) <= maxChars {
		return trimmed, false
	}
	if maxChars == 1 {
		return "…", true
	}

	clipped := strings.TrimSpace(string(runes[:maxChars-1]))
	if clipped == "" {
		return "…", true
	}
	return clipped + "…", true
}
