package importer

import (
	"strings"
	"testing"
)

func TestParsePayloadValid(t *testing.T) {
	t.Parallel()

	payload, err := ParsePayload([]byte(`{
		"payload_version": "v1",
		"items": [
			{"judul": "Berita Satu", "ringkasan": "r", "isi_konten": "isi"},
			{"judul": "Berita Dua", "ringkasan": "r2", "isi_konten": "isi2",
			 "status": "published", "galeri": ["/uploads/a.jpg"]}
		]
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(payload.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(payload.Items))
	}
	if payload.Items[1].Status != "published" || len(payload.Items[1].Galeri) != 1 {
		t.Fatalf("second item = %+v", payload.Items[1])
	}
}

func TestParsePayloadRejectsBadDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "not json", raw: "bukan json"},
		{name: "trailing content", raw: `{"payload_version":"v1","items":[{"judul":"a","ringkasan":"r","isi_konten":"i"}]} extra`},
		{name: "wrong version", raw: `{"payload_version":"v2","items":[{"judul":"a","ringkasan":"r","isi_konten":"i"}]}`},
		{name: "no items", raw: `{"payload_version":"v1","items":[]}`},
		{name: "missing judul", raw: `{"payload_version":"v1","items":[{"ringkasan":"r","isi_konten":"i"}]}`},
		{name: "bad status", raw: `{"payload_version":"v1","items":[{"judul":"a","ringkasan":"r","isi_konten":"i","status":"archived"}]}`},
		{name: "unknown field", raw: `{"payload_version":"v1","items":[{"judul":"a","ringkasan":"r","isi_konten":"i","penulis":"x"}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParsePayload([]byte(tc.raw)); err == nil {
				t.Fatalf("expected rejection")
			}
		})
	}
}

func TestParsePayloadErrorNamesSchema(t *testing.T) {
	t.Parallel()

	_, err := ParsePayload([]byte(`{"payload_version":"v1"}`))
	if err == nil || !strings.Contains(err.Error(), "schema validation failed") {
		t.Fatalf("err = %v, want schema validation failure", err)
	}
}
