// Package importer loads a batch of articles from a JSON payload, validating
// it against an embedded schema before anything touches the database.
package importer

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/muhtegaralfikri/bbi-backend/internal/berita"
)

//go:embed berita_import.schema.json
var importSchemaJSON string

// Payload is the decoded import document after schema validation.
type Payload struct {
	PayloadVersion string `json:"payload_version"`
	Items          []Item `json:"items"`
}

type Item struct {
	Judul          string   `json:"judul"`
	JudulEn        string   `json:"judul_en"`
	Ringkasan      string   `json:"ringkasan"`
	RingkasanEn    string   `json:"ringkasan_en"`
	IsiKonten      string   `json:"isi_konten"`
	IsiKontenEn    string   `json:"isi_konten_en"`
	GambarUtamaURL string   `json:"gambar_utama_url"`
	Status         string   `json:"status"`
	Galeri         []string `json:"galeri"`
}

// ItemResult records the outcome for one payload item, in payload order.
type ItemResult struct {
	Index int    `json:"index"`
	Judul string `json:"judul"`
	ID    string `json:"id,omitempty"`
	Slug  string `json:"slug,omitempty"`
	Error string `json:"error,omitempty"`
}

type Summary struct {
	Imported int          `json:"imported"`
	Failed   int          `json:"failed"`
	Results  []ItemResult `json:"results"`
}

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

// ParsePayload validates raw against the import schema and decodes it.
func ParsePayload(raw []byte) (*Payload, error) {
	value, err := decodeStrictJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("decode payload JSON: %w", err)
	}

	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	normalized, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("normalize payload JSON: %w", err)
	}
	var payload Payload
	if err := json.Unmarshal(normalized, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return &payload, nil
}

// Importer feeds validated items through the publication pipeline one by one
// so each item gets the same slug, enrichment, and cache treatment as a
// hand-created article.
type Importer struct {
	service   *berita.Service
	logger    zerolog.Logger
	penulisID string
}

func New(service *berita.Service, logger zerolog.Logger, penulisID string) *Importer {
	return &Importer{service: service, logger: logger, penulisID: penulisID}
}

// Run imports every item, continuing past per-item failures.
func (im *Importer) Run(ctx context.Context, payload *Payload) (*Summary, error) {
	if payload == nil {
		return nil, fmt.Errorf("payload is nil")
	}

	summary := &Summary{Results: make([]ItemResult, 0, len(payload.Items))}
	for i, item := range payload.Items {
		result := ItemResult{Index: i, Judul: strings.TrimSpace(item.Judul)}

		row, err := im.service.Create(ctx, berita.CreateInput{
			Judul:          item.Judul,
			JudulEn:        item.JudulEn,
			Ringkasan:      item.Ringkasan,
			RingkasanEn:    item.RingkasanEn,
			IsiKonten:      item.IsiKonten,
			IsiKontenEn:    item.IsiKontenEn,
			GambarUtamaURL: item.GambarUtamaURL,
			Status:         item.Status,
			Galeri:         item.Galeri,
		}, im.penulisID)
		if err != nil {
			result.Error = err.Error()
			summary.Failed++
			im.logger.Warn().Err(err).Int("index", i).Str("judul", result.Judul).Msg("import item failed")
		} else {
			result.ID = row.ID
			result.Slug = row.Slug
			summary.Imported++
		}
		summary.Results = append(summary.Results, result)
	}

	im.logger.Info().
		Int("imported", summary.Imported).
		Int("failed", summary.Failed).
		Msg("bulk import finished")
	return summary, nil
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("berita_import.schema.json", strings.NewReader(importSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, err := compiler.Compile("berita_import.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}
		compiledSchema = schema
	})

	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	if compiledSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return compiledSchema, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("payload is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("payload contains trailing content")
	}
	return value, nil
}
