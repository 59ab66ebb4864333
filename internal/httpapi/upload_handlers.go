package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleUpload(c echo.Context) error {
	if s.uploads == nil {
		return fail(c, http.StatusServiceUnavailable, "Uploads are not configured", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return failValidation(c, map[string]string{"file": "is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.logger.Error().Err(err).Msg("open uploaded file failed")
		return internalError(c, "Failed to read upload")
	}
	defer file.Close()

	name, err := s.uploads.Save(fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		return failValidation(c, map[string]string{"file": err.Error()})
	}

	return successWithStatus(c, http.StatusCreated, map[string]any{
		"filename": name,
		"url":      "/uploads/" + name,
	})
}
