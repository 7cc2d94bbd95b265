package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/voicepost-team/voicepost/errors"
	draftdto "github.com/voicepost-team/voicepost/internal/adapter/dto/draft"
	"github.com/voicepost-team/voicepost/internal/domain/entities"
	"github.com/voicepost-team/voicepost/internal/usecase/generation"
)

// Draft handles transcript structuring and draft generation endpoints
type Draft struct {
	orchestrator *generation.Orchestrator
	logger       *zap.Logger
}

// NewDraft creates a new draft handler
func NewDraft(orchestrator *generation.Orchestrator, logger *zap.Logger) *Draft {
	return &Draft{orchestrator: orchestrator, logger: logger}
}

// Structure segments a raw transcript into discrete ideas
func (h *Draft) Structure(c echo.Context) error {
	var req draftdto.StructureRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation(err.Error()))
	}

	result, err := h.orchestrator.Structure(c.Request().Context(), req.Transcript)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, result)
}

// Generate produces one draft, or one draft per segment when segments are
// provided.
func (h *Draft) Generate(c echo.Context) error {
	var req draftdto.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation(err.Error()))
	}

	genReq, err := toGenerationRequest(&req)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if len(req.Segments) > 0 {
		segments := make([]entities.TranscriptSegment, 0, len(req.Segments))
		for _, s := range req.Segments {
			segments = append(segments, entities.TranscriptSegment{ID: s.ID, Content: s.Content})
		}
		results := h.orchestrator.GenerateSeries(c.Request().Context(), genReq, segments)
		return HandleSuccess(h.logger, c, map[string]interface{}{"segments": results})
	}

	result, err := h.orchestrator.Generate(c.Request().Context(), genReq)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, result)
}

func toGenerationRequest(req *draftdto.GenerateRequest) (*generation.Request, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, errors.ErrInvalidArgument("user_id is not a valid UUID")
	}

	genReq := &generation.Request{
		UserID:     userID,
		VoiceType:  req.VoiceType,
		SourceText: req.SourceText,
		DraftType:  entities.DraftType(req.DraftType),
		Mode:       entities.GenerationMode(req.Mode),
	}

	if req.StyleReference != nil {
		ids := make([]uuid.UUID, 0, len(req.StyleReference.InspirationIDs))
		for _, raw := range req.StyleReference.InspirationIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, errors.ErrInvalidArgument("inspiration_ids contains an invalid UUID")
			}
			ids = append(ids, id)
		}
		genReq.StyleReference = &generation.StyleReference{
			InspirationIDs: ids,
			ApplyAs:        entities.StyleApplyAs(req.StyleReference.ApplyAs),
		}
	}

	return genReq, nil
}
