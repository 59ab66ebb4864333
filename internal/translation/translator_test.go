package translation

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
)

type fakeProvider struct {
	name   string
	result string
	err    error
	calls  int
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Translate(_ context.Context, req TranslateRequest) (*TranslateResponse, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &TranslateResponse{Text: p.result, ProviderName: p.name}, nil
}

func newTestTranslator(primary, fallback Provider) *Translator {
	t := NewTranslator(primary, fallback, zerolog.Nop())
	t.detectLang = func(string) string { return "" }
	return t
}

func TestTranslateTextUsesPrimary(t *testing.T) {
	primary := &fakeProvider{name: "libre", result: "hello"}
	fallback := &fakeProvider{name: "google", result: "unused"}
	tr := newTestTranslator(primary, fallback)

	got := tr.TranslateText(context.Background(), "halo", "en", FormatText)
	if got != "hello" {
		t.Fatalf("TranslateText = %q, want %q", got, "hello")
	}
	if fallback.calls != 0 {
		t.Fatalf("fallback called %d times, want 0", fallback.calls)
	}
}

func TestTranslateTextFallsBack(t *testing.T) {
	primary := &fakeProvider{name: "libre", err: fmt.Errorf("timeout")}
	fallback := &fakeProvider{name: "google", result: "hello"}
	tr := newTestTranslator(primary, fallback)

	got := tr.TranslateText(context.Background(), "halo", "en", FormatText)
	if got != "hello" {
		t.Fatalf("TranslateText = %q, want %q", got, "hello")
	}
	if primary.calls != 1 || fallback.calls != 1 {
		t.Fatalf("calls primary=%d fallback=%d, want 1/1", primary.calls, fallback.calls)
	}
}

func TestTranslateTextEmptyPrimaryResultFallsBack(t *testing.T) {
	primary := &fakeProvider{name: "libre", result: "   "}
	fallback := &fakeProvider{name: "google", result: "hello"}
	tr := newTestTranslator(primary, fallback)

	if got := tr.TranslateText(context.Background(), "halo", "en", FormatText); got != "hello" {
		t.Fatalf("TranslateText = %q, want %q", got, "hello")
	}
}

func TestTranslateTextDegradesToIdentity(t *testing.T) {
	primary := &fakeProvider{name: "libre", err: fmt.Errorf("down")}
	fallback := &fakeProvider{name: "google", err: fmt.Errorf("down too")}
	tr := newTestTranslator(primary, fallback)

	original := "teks asli yang tidak berubah"
	if got := tr.TranslateText(context.Background(), original, "en", FormatText); got != original {
		t.Fatalf("TranslateText = %q, want original back", got)
	}
}

func TestTranslateTextBlankInputSkipsProviders(t *testing.T) {
	primary := &fakeProvider{name: "libre", result: "x"}
	tr := newTestTranslator(primary, nil)

	if got := tr.TranslateText(context.Background(), "   ", "en", FormatText); got != "   " {
		t.Fatalf("TranslateText = %q, want input unchanged", got)
	}
	if primary.calls != 0 {
		t.Fatalf("provider called %d times for blank input, want 0", primary.calls)
	}
}

func TestTranslateTextSkipsWhenAlreadyTargetLanguage(t *testing.T) {
	primary := &fakeProvider{name: "libre", result: "x"}
	tr := NewTranslator(primary, nil, zerolog.Nop())
	tr.detectLang = func(string) string { return "en" }

	original := "already english text"
	if got := tr.TranslateText(context.Background(), original, "en", FormatText); got != original {
		t.Fatalf("TranslateText = %q, want original", got)
	}
	if primary.calls != 0 {
		t.Fatalf("provider called %d times, want 0", primary.calls)
	}
}

func TestEnrichFieldsPartialFailureKeepsOriginal(t *testing.T) {
	// The primary translates short texts but fails on the body.
	primary := &translateByLength{limit: 20}
	tr := newTestTranslator(primary, nil)

	in := Fields{
		Judul:     "judul",
		Ringkasan: "ringkasan",
		IsiKonten: "isi konten yang sangat panjang sekali melebihi batas",
	}
	out := tr.EnrichFields(context.Background(), in, "en")

	if out.Judul != "translated:judul" {
		t.Errorf("Judul = %q, want translated", out.Judul)
	}
	if out.Ringkasan != "translated:ringkasan" {
		t.Errorf("Ringkasan = %q, want translated", out.Ringkasan)
	}
	if out.IsiKonten != in.IsiKonten {
		t.Errorf("IsiKonten = %q, want original retained", out.IsiKonten)
	}
}

func TestEnrichFieldsSkipsEmptyFields(t *testing.T) {
	primary := &fakeProvider{name: "libre", result: "translated"}
	tr := newTestTranslator(primary, nil)

	out := tr.EnrichFields(context.Background(), Fields{Judul: "judul"}, "en")
	if out.Judul != "translated" {
		t.Errorf("Judul = %q, want translated", out.Judul)
	}
	if out.Ringkasan != "" || out.IsiKonten != "" {
		t.Errorf("empty fields were filled: %+v", out)
	}
	if primary.calls != 1 {
		t.Errorf("provider calls = %d, want 1", primary.calls)
	}
}

type translateByLength struct {
	limit int
}

func (p *translateByLength) Name() string { return "by-length" }

func (p *translateByLength) Translate(_ context.Context, req TranslateRequest) (*TranslateResponse, error) {
	if len(req.Text) > p.limit {
		return nil, fmt.Errorf("text too long")
	}
	return &TranslateResponse{Text: "translated:" + req.Text, ProviderName: p.Name()}, nil
}
