package translation

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLibreProviderTranslate(t *testing.T) {
	var gotBody libreRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/translate" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"translatedText": "Latest News"})
	}))
	defer srv.Close()

	p := NewLibreProvider(srv.URL, "secret", 2*time.Second)
	resp, err := p.Translate(context.Background(), TranslateRequest{
		Text:       "Berita Terbaru",
		TargetLang: "en",
		Format:     FormatText,
	})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if resp.Text != "Latest News" {
		t.Fatalf("Text = %q, want %q", resp.Text, "Latest News")
	}
	if gotBody.Q != "Berita Terbaru" || gotBody.Source != "auto" || gotBody.Target != "en" || gotBody.Format != "text" {
		t.Fatalf("request body = %+v", gotBody)
	}
	if gotBody.APIKey != "secret" {
		t.Fatalf("api_key = %q, want %q", gotBody.APIKey, "secret")
	}
}

func TestLibreProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "upstream down"})
	}))
	defer srv.Close()

	p := NewLibreProvider(srv.URL, "", 2*time.Second)
	if _, err := p.Translate(context.Background(), TranslateRequest{Text: "halo", TargetLang: "en"}); err == nil {
		t.Fatal("Translate returned nil error for 502 response")
	}
}

func TestGoogleProviderTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("client") != "gtx" || q.Get("sl") != "auto" || q.Get("tl") != "en" || q.Get("dt") != "t" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		// Two segments concatenate into the full translation.
		_, _ = w.Write([]byte(`[[["Hello ","Halo ",null,null],["world","dunia",null,null]],null,"id"]`))
	}))
	defer srv.Close()

	p := NewGoogleProviderWithEndpoint(srv.URL, 2*time.Second)
	resp, err := p.Translate(context.Background(), TranslateRequest{Text: "Halo dunia", TargetLang: "en"})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if resp.Text != "Hello world" {
		t.Fatalf("Text = %q, want %q", resp.Text, "Hello world")
	}
}

func TestParseGoogleBody(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{name: "single segment", body: `[[["Hi","Hai",null]],null,"id"]`, want: "Hi"},
		{name: "empty outer array", body: `[]`, wantErr: true},
		{name: "not json", body: `<html>`, wantErr: true},
		{name: "empty segments", body: `[[],null,"id"]`, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseGoogleBody([]byte(tc.body))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parseGoogleBody(%q) returned nil error", tc.body)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseGoogleBody: %v", err)
			}
			if got != tc.want {
				t.Fatalf("parseGoogleBody = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizeLangCode(t *testing.T) {
	cases := map[string]string{
		"en":     "en",
		" EN ":   "en",
		"en-US":  "en",
		"id_ID":  "id",
		"":       "",
		"e":      "",
		"x1":     "",
		"english": "",
	}
	for raw, want := range cases {
		if got := normalizeLangCode(raw); got != want {
			t.Errorf("normalizeLangCode(%q) = %q, want %q", raw, got, want)
		}
	}
}
