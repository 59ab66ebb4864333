package httpapi

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/muhtegaralfikri/bbi-backend/internal/berita"
)

type komentarStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

func (s *Server) handleAdminKomentarList(c echo.Context) error {
	status := strings.TrimSpace(c.QueryParam("status"))

	items, err := s.berita.FindKomentarAdmin(c.Request().Context(), status)
	if err != nil {
		if validationErr, ok := berita.AsValidation(err); ok {
			return failValidation(c, validationErr.Fields)
		}
		s.logger.Error().Err(err).Str("status", status).Msg("list komentar failed")
		return internalError(c, "Failed to load komentar")
	}
	return success(c, map[string]any{"items": items})
}

func (s *Server) handleAdminKomentarStatus(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return failValidation(c, map[string]string{"id": "is required"})
	}

	var req komentarStatusRequest
	if err := decodeJSONBody(c, &req); err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}
	if fieldErrors := validateStruct(req); fieldErrors != nil {
		return failValidation(c, fieldErrors)
	}

	item, err := s.berita.UpdateKomentarStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, berita.ErrKomentarNotFound) {
			return failNotFound(c, "Komentar tidak ditemukan")
		}
		if validationErr, ok := berita.AsValidation(err); ok {
			return failValidation(c, validationErr.Fields)
		}
		s.logger.Error().Err(err).Str("id", id).Msg("update komentar status failed")
		return internalError(c, "Failed to update komentar")
	}
	return success(c, item)
}
