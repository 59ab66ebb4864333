package httpapi

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/muhtegaralfikri/bbi-backend/internal/berita"
	"github.com/muhtegaralfikri/bbi-backend/internal/db"
)

const (
	maxListLimit = 100
	maxListPage  = 1_000_000
)

type submitKomentarRequest struct {
	Nama  string `json:"nama" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Isi   string `json:"isi" validate:"required"`
}

func (s *Server) handlePublicBeritaList(c echo.Context) error {
	page, err := parsePositiveInt(c.QueryParam("page"), berita.DefaultPage, 1, maxListPage)
	if err != nil {
		return failValidation(c, map[string]string{"page": err.Error()})
	}
	limit, err := parsePositiveInt(c.QueryParam("limit"), berita.DefaultLimit, 1, maxListLimit)
	if err != nil {
		return failValidation(c, map[string]string{"limit": err.Error()})
	}

	result, err := s.berita.FindAllPublic(c.Request().Context(), page, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("list public berita failed")
		return internalError(c, "Failed to load berita")
	}
	return success(c, result)
}

func (s *Server) handlePublicBeritaDetail(c echo.Context) error {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		return failValidation(c, map[string]string{"slug": "is required"})
	}

	detail, err := s.berita.FindOnePublic(c.Request().Context(), slug)
	if err != nil {
		if errors.Is(err, berita.ErrBeritaNotFound) {
			return failNotFound(c, "Berita tidak ditemukan")
		}
		s.logger.Error().Err(err).Str("slug", slug).Msg("load public berita failed")
		return internalError(c, "Failed to load berita")
	}
	return success(c, detail)
}

func (s *Server) handlePublicKomentarList(c echo.Context) error {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		return failValidation(c, map[string]string{"slug": "is required"})
	}

	komentar, err := s.berita.KomentarPublik(c.Request().Context(), slug)
	if err != nil {
		if errors.Is(err, berita.ErrBeritaNotFound) {
			return failNotFound(c, "Berita tidak ditemukan")
		}
		s.logger.Error().Err(err).Str("slug", slug).Msg("list komentar failed")
		return internalError(c, "Failed to load komentar")
	}
	return success(c, map[string]any{"items": komentar})
}

func (s *Server) handleSubmitKomentar(c echo.Context) error {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		return failValidation(c, map[string]string{"slug": "is required"})
	}

	var req submitKomentarRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}
	if fieldErrors := validateStruct(req); fieldErrors != nil {
		return failValidation(c, fieldErrors)
	}

	result, err := s.berita.SubmitKomentar(c.Request().Context(), slug, berita.KomentarInput{
		Nama:  req.Nama,
		Email: req.Email,
		Isi:   req.Isi,
	})
	if err != nil {
		if errors.Is(err, berita.ErrBeritaNotFound) {
			return failNotFound(c, "Berita tidak ditemukan")
		}
		if validationErr, ok := berita.AsValidation(err); ok {
			return failValidation(c, validationErr.Fields)
		}
		s.logger.Error().Err(err).Str("slug", slug).Msg("submit komentar failed")
		return internalError(c, "Failed to submit komentar")
	}
	return successWithStatus(c, 201, result)
}

// adminBeritaResponse is the full editorial view of one article, drafts
// included.
type adminBeritaResponse struct {
	ID             string               `json:"id"`
	Judul          string               `json:"judul"`
	JudulEn        *string              `json:"judul_en"`
	Ringkasan      string               `json:"ringkasan"`
	RingkasanEn    *string              `json:"ringkasan_en"`
	IsiKonten      string               `json:"isi_konten"`
	IsiKontenEn    *string              `json:"isi_konten_en"`
	Slug           string               `json:"slug"`
	GambarUtamaURL string               `json:"gambar_utama_url"`
	Status         string               `json:"status"`
	PublishedAt    *time.Time           `json:"published_at"`
	PenulisID      string               `json:"penulis_id"`
	Galeri         []berita.GalleryImage `json:"galeri,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

func buildAdminBeritaResponse(row *db.Berita) adminBeritaResponse {
	resp := adminBeritaResponse{
		ID:             row.ID,
		Judul:          row.Judul,
		JudulEn:        row.JudulEn,
		Ringkasan:      row.Ringkasan,
		RingkasanEn:    row.RingkasanEn,
		IsiKonten:      row.IsiKonten,
		IsiKontenEn:    row.IsiKontenEn,
		Slug:           row.Slug,
		GambarUtamaURL: row.GambarUtamaURL,
		Status:         row.Status,
		PublishedAt:    row.PublishedAt,
		PenulisID:      row.PenulisID,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	for _, image := range row.Galeri {
		resp.Galeri = append(resp.Galeri, berita.GalleryImage{
			ID:       image.ID,
			ImageURL: image.ImageURL,
			Urutan:   image.Urutan,
		})
	}
	return resp
}
