package translation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// LibreProvider is the primary provider: a self-hosted or public
// LibreTranslate-compatible endpoint.
type LibreProvider struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type libreResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error,omitempty"`
}

func NewLibreProvider(baseURL, apiKey string, timeout time.Duration) *LibreProvider {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &LibreProvider{
		client:  resty.New().SetTimeout(timeout),
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
	}
}

func (p *LibreProvider) Name() string {
	return "libre"
}

func (p *LibreProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}
	target := normalizeLangCode(req.TargetLang)
	if target == "" {
		return nil, fmt.Errorf("target language is required")
	}
	format := req.Format
	if format == "" {
		format = FormatText
	}

	started := time.Now()
	var parsed libreResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(libreRequest{
			Q:      text,
			Source: "auto",
			Target: target,
			Format: format,
			APIKey: p.apiKey,
		}).
		SetResult(&parsed).
		SetError(&parsed).
		Post(p.baseURL + "/translate")
	if err != nil {
		return nil, fmt.Errorf("send translate request: %w", err)
	}
	if resp.IsError() {
		msg := strings.TrimSpace(parsed.Error)
		if msg == "" {
			msg = resp.Status()
		}
		return nil, fmt.Errorf("translate endpoint status %d: %s", resp.StatusCode(), msg)
	}

	translated := strings.TrimSpace(parsed.TranslatedText)
	if translated == "" {
		return nil, fmt.Errorf("translate response was empty")
	}

	return &TranslateResponse{
		Text:         translated,
		ProviderName: p.Name(),
		LatencyMs:    time.Since(started).Milliseconds(),
	}, nil
}
