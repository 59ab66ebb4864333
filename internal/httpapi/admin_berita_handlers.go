package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/muhtegaralfikri/bbi-backend/internal/berita"
	"github.com/muhtegaralfikri/bbi-backend/internal/importer"
	"github.com/muhtegaralfikri/bbi-backend/internal/reader"
)

type createBeritaRequest struct {
	Judul          string   `json:"judul" validate:"required"`
	JudulEn        string   `json:"judul_en"`
	Ringkasan      string   `json:"ringkasan"`
	RingkasanEn    string   `json:"ringkasan_en"`
	IsiKonten      string   `json:"isi_konten"`
	IsiKontenEn    string   `json:"isi_konten_en"`
	GambarUtamaURL string   `json:"gambar_utama_url"`
	Status         string   `json:"status" validate:"omitempty,oneof=draft published"`
	Galeri         []string `json:"galeri"`
}

type updateBeritaRequest struct {
	Judul          *string  `json:"judul"`
	JudulEn        *string  `json:"judul_en"`
	Ringkasan      *string  `json:"ringkasan"`
	RingkasanEn    *string  `json:"ringkasan_en"`
	IsiKonten      *string  `json:"isi_konten"`
	IsiKontenEn    *string  `json:"isi_konten_en"`
	GambarUtamaURL *string  `json:"gambar_utama_url"`
	Status         *string  `json:"status" validate:"omitempty,oneof=draft published"`
	Galeri         []string `json:"galeri"`
}

type previewRequest struct {
	URL string `json:"url" validate:"required,url"`
}

func (s *Server) handleAdminBeritaList(c echo.Context) error {
	rows, err := s.berita.FindAllAdmin(c.Request().Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list admin berita failed")
		return internalError(c, "Failed to load berita")
	}

	items := make([]adminBeritaResponse, 0, len(rows))
	for i := range rows {
		items = append(items, buildAdminBeritaResponse(&rows[i]))
	}
	return success(c, map[string]any{"items": items})
}

func (s *Server) handleAdminBeritaDetail(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return failValidation(c, map[string]string{"id": "is required"})
	}

	row, err := s.berita.FindOneAdmin(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, berita.ErrBeritaNotFound) {
			return failNotFound(c, "Berita tidak ditemukan")
		}
		s.logger.Error().Err(err).Str("id", id).Msg("load admin berita failed")
		return internalError(c, "Failed to load berita")
	}
	return success(c, buildAdminBeritaResponse(row))
}

func (s *Server) handleAdminBeritaCreate(c echo.Context) error {
	principal, ok := principalFromContext(c)
	if !ok {
		return unauthorizedResponse(c)
	}

	var req createBeritaRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}
	if fieldErrors := validateStruct(req); fieldErrors != nil {
		return failValidation(c, fieldErrors)
	}

	row, err := s.berita.Create(c.Request().Context(), berita.CreateInput{
		Judul:          req.Judul,
		JudulEn:        req.JudulEn,
		Ringkasan:      req.Ringkasan,
		RingkasanEn:    req.RingkasanEn,
		IsiKonten:      req.IsiKonten,
		IsiKontenEn:    req.IsiKontenEn,
		GambarUtamaURL: req.GambarUtamaURL,
		Status:         req.Status,
		Galeri:         req.Galeri,
	}, principal.AdminID)
	if err != nil {
		return s.beritaWriteError(c, err, "create berita failed")
	}
	return successWithStatus(c, http.StatusCreated, buildAdminBeritaResponse(row))
}

func (s *Server) handleAdminBeritaUpdate(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return failValidation(c, map[string]string{"id": "is required"})
	}

	// Decode twice: once to learn which keys the caller sent, once typed.
	bodyBytes, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return failValidation(c, map[string]string{"body": "invalid JSON body"})
	}
	sentKeys, err := decodeSentKeys(bodyBytes)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	var req updateBeritaRequest
	if err := decodeJSONInto(bodyBytes, &req); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}
	if fieldErrors := validateStruct(req); fieldErrors != nil {
		return failValidation(c, fieldErrors)
	}

	_, galeriSet := sentKeys["galeri"]
	row, err := s.berita.Update(c.Request().Context(), id, berita.UpdateInput{
		Judul:          req.Judul,
		JudulEn:        req.JudulEn,
		Ringkasan:      req.Ringkasan,
		RingkasanEn:    req.RingkasanEn,
		IsiKonten:      req.IsiKonten,
		IsiKontenEn:    req.IsiKontenEn,
		GambarUtamaURL: req.GambarUtamaURL,
		Status:         req.Status,
		Galeri:         req.Galeri,
		GaleriSet:      galeriSet,
	})
	if err != nil {
		return s.beritaWriteError(c, err, "update berita failed")
	}
	return success(c, buildAdminBeritaResponse(row))
}

func (s *Server) handleAdminBeritaDelete(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return failValidation(c, map[string]string{"id": "is required"})
	}

	if err := s.berita.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, berita.ErrBeritaNotFound) {
			return failNotFound(c, "Berita tidak ditemukan")
		}
		s.logger.Error().Err(err).Str("id", id).Msg("delete berita failed")
		return internalError(c, "Failed to delete berita")
	}
	return success(c, map[string]any{"deleted": true})
}

func (s *Server) handleAdminBeritaImport(c echo.Context) error {
	principal, ok := principalFromContext(c)
	if !ok {
		return unauthorizedResponse(c)
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return failValidation(c, map[string]string{"body": "invalid JSON body"})
	}
	payload, err := importer.ParsePayload(bodyBytes)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	summary, err := importer.New(s.berita, s.logger, principal.AdminID).Run(c.Request().Context(), payload)
	if err != nil {
		s.logger.Error().Err(err).Msg("bulk import failed")
		return internalError(c, "Failed to import berita")
	}
	return success(c, summary)
}

func (s *Server) handleAdminBeritaPreview(c echo.Context) error {
	var req previewRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}
	if fieldErrors := validateStruct(req); fieldErrors != nil {
		return failValidation(c, fieldErrors)
	}

	preview, err := reader.FetchPreview(c.Request().Context(), req.URL)
	if err != nil {
		s.logger.Warn().Err(err).Str("url", req.URL).Msg("draft preview failed")
		return fail(c, http.StatusBadGateway, "Failed to extract content from URL", nil)
	}
	return success(c, preview)
}

func (s *Server) beritaWriteError(c echo.Context, err error, logMessage string) error {
	if errors.Is(err, berita.ErrBeritaNotFound) {
		return failNotFound(c, "Berita tidak ditemukan")
	}
	if validationErr, ok := berita.AsValidation(err); ok {
		return failValidation(c, validationErr.Fields)
	}
	if conflictErr, ok := berita.AsConflict(err); ok {
		return failConflict(c, conflictErr.Message, map[string]any{
			"field": conflictErr.Field,
		})
	}
	s.logger.Error().Err(err).Msg(logMessage)
	return internalError(c, "Failed to save berita")
}
