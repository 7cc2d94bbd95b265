package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/voicepost-team/voicepost/errors"
	styledto "github.com/voicepost-team/voicepost/internal/adapter/dto/style"
	usecase "github.com/voicepost-team/voicepost/internal/usecase/style"
)

// Style handles style fingerprinting endpoints
type Style struct {
	extractor *usecase.Extractor
	logger    *zap.Logger
}

// NewStyle creates a new style handler
func NewStyle(extractor *usecase.Extractor, logger *zap.Logger) *Style {
	return &Style{extractor: extractor, logger: logger}
}

// Analyze fingerprints one reference post
func (h *Style) Analyze(c echo.Context) error {
	var req styledto.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation(err.Error()))
	}

	fp, err := h.extractor.Analyze(c.Request().Context(), req.Content)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, fp)
}
