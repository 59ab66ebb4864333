// Package translation populates the English-language fields of published
// content by calling external translation endpoints, degrading to the
// original text whenever both endpoints fail.
package translation

import "context"

const (
	// FormatText marks plain-text payloads (titles, summaries).
	FormatText = "text"
	// FormatHTML marks markup payloads (article bodies).
	FormatHTML = "html"
)

// Provider translates free-form text into a target language.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error)
	Name() string
}

// TranslateRequest describes one translation request. The source language is
// always auto-detected by the provider.
type TranslateRequest struct {
	Text       string
	TargetLang string
	Format     string // FormatText or FormatHTML
}

// TranslateResponse contains translated text and provider metadata.
type TranslateResponse struct {
	Text         string
	ProviderName string
	LatencyMs    int64
}
