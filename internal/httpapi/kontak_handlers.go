package httpapi

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/muhtegaralfikri/bbi-backend/internal/db"
)

type profilStore interface {
	GetInfoPerusahaan(ctx context.Context) (*db.InfoPerusahaan, error)
	UpsertInfoPerusahaan(ctx context.Context, info *db.InfoPerusahaan) error
	ListCabang(ctx context.Context) ([]db.InfoCabang, error)
	GetCabang(ctx context.Context, id string) (*db.InfoCabang, error)
	CreateCabang(ctx context.Context, cabang *db.InfoCabang) error
	SaveCabang(ctx context.Context, cabang *db.InfoCabang) error
	DeleteCabang(ctx context.Context, id string) error
}

func (s *Server) profilDataStore() profilStore {
	if s.profilStore != nil {
		return s.profilStore
	}
	return s.pool
}

type kontakResponse struct {
	AlamatKantor    string    `json:"alamat_kantor"`
	NoHP            string    `json:"no_hp"`
	Email           string    `json:"email"`
	GoogleMapsEmbed string    `json:"google_maps_embed"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type putKontakRequest struct {
	AlamatKantor    string `json:"alamat_kantor" validate:"required"`
	NoHP            string `json:"no_hp" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	GoogleMapsEmbed string `json:"google_maps_embed"`
}

type cabangResponse struct {
	ID     string `json:"id"`
	Nama   string `json:"nama"`
	Alamat string `json:"alamat"`
	NoTelp string `json:"no_telp"`
}

type cabangRequest struct {
	Nama   string `json:"nama" validate:"required"`
	Alamat string `json:"alamat" validate:"required"`
	NoTelp string `json:"no_telp"`
}

func (s *Server) handleGetKontak(c echo.Context) error {
	info, err := s.profilDataStore().GetInfoPerusahaan(c.Request().Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("load kontak failed")
		return internalError(c, "Failed to load kontak")
	}
	return success(c, buildKontakResponse(info))
}

func (s *Server) handlePutKontak(c echo.Context) error {
	var req putKontakRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}
	if fieldErrors := validateStruct(req); fieldErrors != nil {
		return failValidation(c, fieldErrors)
	}

	info := &db.InfoPerusahaan{
		ID:              db.InfoPerusahaanID,
		AlamatKantor:    strings.TrimSpace(req.AlamatKantor),
		NoHP:            strings.TrimSpace(req.NoHP),
		Email:           strings.TrimSpace(req.Email),
		GoogleMapsEmbed: strings.TrimSpace(req.GoogleMapsEmbed),
	}
	if err := s.profilDataStore().UpsertInfoPerusahaan(c.Request().Context(), info); err != nil {
		s.logger.Error().Err(err).Msg("save kontak failed")
		return internalError(c, "Failed to save kontak")
	}
	return success(c, buildKontakResponse(info))
}

func (s *Server) handleListCabang(c echo.Context) error {
	rows, err := s.profilDataStore().ListCabang(c.Request().Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list cabang failed")
		return internalError(c, "Failed to load cabang")
	}

	items := make([]cabangResponse, 0, len(rows))
	for i := range rows {
		items = append(items, buildCabangResponse(&rows[i]))
	}
	return success(c, map[string]any{"items": items})
}

func (s *Server) handleGetCabang(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return failValidation(c, map[string]string{"id": "is required"})
	}

	cabang, err := s.profilDataStore().GetCabang(c.Request().Context(), id)
	if err != nil {
		if db.IsNoRows(err) {
			return failNotFound(c, "Cabang tidak ditemukan")
		}
		s.logger.Error().Err(err).Str("cabang_id", id).Msg("load cabang failed")
		return internalError(c, "Failed to load cabang")
	}
	return success(c, buildCabangResponse(cabang))
}

func (s *Server) handleCreateCabang(c echo.Context) error {
	var req cabangRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}
	if fieldErrors := validateStruct(req); fieldErrors != nil {
		return failValidation(c, fieldErrors)
	}

	cabang := &db.InfoCabang{
		Nama:   strings.TrimSpace(req.Nama),
		Alamat: strings.TrimSpace(req.Alamat),
		NoTelp: strings.TrimSpace(req.NoTelp),
	}
	if err := s.profilDataStore().CreateCabang(c.Request().Context(), cabang); err != nil {
		s.logger.Error().Err(err).Msg("create cabang failed")
		return internalError(c, "Failed to create cabang")
	}
	return successWithStatus(c, 201, buildCabangResponse(cabang))
}

func (s *Server) handleUpdateCabang(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return failValidation(c, map[string]string{"id": "is required"})
	}

	var req cabangRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}
	if fieldErrors := validateStruct(req); fieldErrors != nil {
		return failValidation(c, fieldErrors)
	}

	store := s.profilDataStore()
	cabang, err := store.GetCabang(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return failNotFound(c, "Cabang tidak ditemukan")
		}
		s.logger.Error().Err(err).Str("id", id).Msg("load cabang failed")
		return internalError(c, "Failed to load cabang")
	}

	cabang.Nama = strings.TrimSpace(req.Nama)
	cabang.Alamat = strings.TrimSpace(req.Alamat)
	cabang.NoTelp = strings.TrimSpace(req.NoTelp)
	if err := store.SaveCabang(c.Request().Context(), cabang); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("save cabang failed")
		return internalError(c, "Failed to save cabang")
	}
	return success(c, buildCabangResponse(cabang))
}

func (s *Server) handleDeleteCabang(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return failValidation(c, map[string]string{"id": "is required"})
	}

	if err := s.profilDataStore().DeleteCabang(c.Request().Context(), id); err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return failNotFound(c, "Cabang tidak ditemukan")
		}
		s.logger.Error().Err(err).Str("id", id).Msg("delete cabang failed")
		return internalError(c, "Failed to delete cabang")
	}
	return success(c, map[string]any{"deleted": true})
}

func buildKontakResponse(info *db.InfoPerusahaan) kontakResponse {
	if info == nil {
		return kontakResponse{}
	}
	return kontakResponse{
		AlamatKantor:    info.AlamatKantor,
		NoHP:            info.NoHP,
		Email:           info.Email,
		GoogleMapsEmbed: info.GoogleMapsEmbed,
		UpdatedAt:       info.UpdatedAt,
	}
}

func buildCabangResponse(cabang *db.InfoCabang) cabangResponse {
	return cabangResponse{
		ID:     cabang.ID,
		Nama:   cabang.Nama,
		Alamat: cabang.Alamat,
		NoTelp: cabang.NoTelp,
	}
}
