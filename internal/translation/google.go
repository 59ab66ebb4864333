package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultGoogleEndpoint = "https://translate.googleapis.com/translate_a/single"

// GoogleProvider is the fallback provider: the public gtx endpoint. Its
// response is a nested array whose first element holds translated segments.
type GoogleProvider struct {
	client   *resty.Client
	endpoint string
}

func NewGoogleProvider(timeout time.Duration) *GoogleProvider {
	return NewGoogleProviderWithEndpoint(defaultGoogleEndpoint, timeout)
}

func NewGoogleProviderWithEndpoint(endpoint string, timeout time.Duration) *GoogleProvider {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	if strings.TrimSpace(endpoint) == "" {
		endpoint = defaultGoogleEndpoint
	}
	return &GoogleProvider{
		client:   resty.New().SetTimeout(timeout),
		endpoint: endpoint,
	}
}

func (p *GoogleProvider) Name() string {
	return "google"
}

func (p *GoogleProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}
	target := normalizeLangCode(req.TargetLang)
	if target == "" {
		return nil, fmt.Errorf("target language is required")
	}

	started := time.Now()
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", "Mozilla/5.0").
		SetQueryParams(map[string]string{
			"client": "gtx",
			"sl":     "auto",
			"tl":     target,
			"dt":     "t",
			"q":      text,
		}).
		Get(p.endpoint)
	if err != nil {
		return nil, fmt.Errorf("send translate request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("translate endpoint status %d", resp.StatusCode())
	}

	translated, err := parseGoogleBody(resp.Body())
	if err != nil {
		return nil, err
	}
	if translated == "" {
		return nil, fmt.Errorf("translate response was empty")
	}

	return &TranslateResponse{
		Text:         translated,
		ProviderName: p.Name(),
		LatencyMs:    time.Since(started).Milliseconds(),
	}, nil
}

// parseGoogleBody concatenates the first element of every segment in the
// outer array's first entry: [[["hello","halo",…],["world","dunia",…]],…].
func parseGoogleBody(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode translate response: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("translate response missing segments")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("decode translate segments: %w", err)
	}

	var b strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(segment[0], &part); err != nil {
			continue
		}
		b.WriteString(part)
	}
	return b.String(), nil
}
