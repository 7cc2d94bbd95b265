package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/voicepost-team/voicepost/errors"
	"github.com/voicepost-team/voicepost/internal/usecase/ingest"
)

// Memo handles voice memo upload endpoints
type Memo struct {
	ingest *ingest.Service
	logger *zap.Logger
}

// NewMemo creates a new memo handler
func NewMemo(svc *ingest.Service, logger *zap.Logger) *Memo {
	return &Memo{ingest: svc, logger: logger}
}

// Upload accepts a multipart audio file, stores it, and returns the memo
// with its transcript.
func (h *Memo) Upload(c echo.Context) error {
	userID, err := uuid.Parse(c.FormValue("user_id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("user_id is not a valid UUID"))
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("audio file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrMemoUpload(err))
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	memo, err := h.ingest.Ingest(c.Request().Context(), userID, fileHeader.Filename, file, contentType)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, memo)
}
