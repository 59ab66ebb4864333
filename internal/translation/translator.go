package translation

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/muhtegaralfikri/bbi-backend/internal/config"
	"github.com/muhtegaralfikri/bbi-backend/internal/langdetect"
)

// Translator tries the primary provider, then the fallback provider, and
// finally returns the input unchanged. It never reports an error upward:
// translation enrichment must not fail the operation that triggered it.
type Translator struct {
	primary  Provider
	fallback Provider
	logger   zerolog.Logger

	// detectLang short-circuits provider calls when the text is already in
	// the target language. Injectable for tests.
	detectLang func(string) string
}

func NewTranslator(primary, fallback Provider, logger zerolog.Logger) *Translator {
	return &Translator{
		primary:    primary,
		fallback:   fallback,
		logger:     logger,
		detectLang: langdetect.DetectISO6391,
	}
}

// NewTranslatorFromConfig wires the default provider pair: a LibreTranslate
// endpoint first, the public gtx endpoint as fallback.
func NewTranslatorFromConfig(cfg *config.Config, logger zerolog.Logger) *Translator {
	return NewTranslator(
		NewLibreProvider(cfg.TranslateAPIURL, cfg.TranslateAPIKey, cfg.TranslateTimeout),
		NewGoogleProvider(cfg.TranslateTimeout),
		logger,
	)
}

// TranslateText translates text into targetLang, returning the input
// unchanged when it is blank, already in the target language, or when both
// providers fail.
func (t *Translator) TranslateText(ctx context.Context, text, targetLang, format string) string {
	if t == nil {
		return text
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return text
	}

	target := normalizeLangCode(targetLang)
	if target == "" {
		return text
	}
	if t.detectLang != nil && t.detectLang(trimmed) == target {
		return text
	}

	for _, provider := range []Provider{t.primary, t.fallback} {
		if provider == nil {
			continue
		}
		started := time.Now()
		resp, err := provider.Translate(ctx, TranslateRequest{
			Text:       trimmed,
			TargetLang: target,
			Format:     format,
		})
		if err != nil {
			t.logger.Warn().
				Err(err).
				Str("provider", provider.Name()).
				Dur("elapsed", time.Since(started)).
				Msg("translation attempt failed")
			continue
		}
		if translated := strings.TrimSpace(resp.Text); translated != "" {
			return translated
		}
		t.logger.Warn().
			Str("provider", provider.Name()).
			Msg("translation attempt returned empty text")
	}

	return text
}

// Fields carries the translatable parts of one article.
type Fields struct {
	Judul     string
	Ringkasan string
	IsiKonten string
}

// EnrichFields translates every non-empty field concurrently. Fields whose
// translation fails keep their original text, so the result never contains
// empty values for inputs that were set.
func (t *Translator) EnrichFields(ctx context.Context, in Fields, targetLang string) Fields {
	out := in

	var wg sync.WaitGroup
	translate := func(dst *string, text, format string) {
		if strings.TrimSpace(text) == "" {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			*dst = t.TranslateText(ctx, text, targetLang, format)
		}()
	}

	translate(&out.Judul, in.Judul, FormatText)
	translate(&out.Ringkasan, in.Ringkasan, FormatText)
	translate(&out.IsiKonten, in.IsiKonten, FormatHTML)
	wg.Wait()

	return out
}
