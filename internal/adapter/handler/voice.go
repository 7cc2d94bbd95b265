package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/voicepost-team/voicepost/errors"
	voicedto "github.com/voicepost-team/voicepost/internal/adapter/dto/voice"
	"github.com/voicepost-team/voicepost/internal/domain/repositories"
)

// Voice handles voice settings endpoints
type Voice struct {
	voices repositories.VoiceContextRepository
	logger *zap.Logger
}

// NewVoice creates a new voice handler
func NewVoice(voices repositories.VoiceContextRepository, logger *zap.Logger) *Voice {
	return &Voice{voices: voices, logger: logger}
}

// GetSettings returns settings for a (user, voice_type) pair, creating
// defaults on first access.
func (h *Voice) GetSettings(c echo.Context) error {
	userID, err := uuid.Parse(c.QueryParam("user_id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("user_id is not a valid UUID"))
	}
	voiceType := c.QueryParam("voice_type")
	if voiceType == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("voice_type is required"))
	}

	settings, err := h.voices.GetSettings(c.Request().Context(), userID, voiceType)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	return HandleSuccess(h.logger, c, settings)
}

// UpdateSettings applies a partial settings update
func (h *Voice) UpdateSettings(c echo.Context) error {
	var req voicedto.UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation(err.Error()))
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("user_id is not a valid UUID"))
	}

	ctx := c.Request().Context()
	settings, err := h.voices.GetSettings(ctx, userID, req.VoiceType)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	if req.OptimizationAuthenticity != nil {
		settings.OptimizationAuthenticity = *req.OptimizationAuthenticity
	}
	if req.ToneFormalCasual != nil {
		settings.ToneFormalCasual = *req.ToneFormalCasual
	}
	if req.EnergyCalmPunchy != nil {
		settings.EnergyCalmPunchy = *req.EnergyCalmPunchy
	}
	if req.StanceNeutralOpinionated != nil {
		settings.StanceNeutralOpinionated = *req.StanceNeutralOpinionated
	}
	if req.LengthMode != nil {
		settings.LengthMode = *req.LengthMode
	}
	if req.DirectnessMode != nil {
		settings.DirectnessMode = *req.DirectnessMode
	}
	if req.HumorMode != nil {
		settings.HumorMode = *req.HumorMode
	}
	if req.EmojiMode != nil {
		settings.EmojiMode = *req.EmojiMode
	}
	if req.QuestionRate != nil {
		settings.QuestionRate = *req.QuestionRate
	}
	if req.DisagreementMode != nil {
		settings.DisagreementMode = *req.DisagreementMode
	}
	if req.AvoidWords != nil {
		settings.AvoidWords = datatypes.NewJSONSlice(req.AvoidWords)
	}
	if req.AvoidTopics != nil {
		settings.AvoidTopics = datatypes.NewJSONSlice(req.AvoidTopics)
	}
	if req.CustomRules != nil {
		settings.CustomRules = datatypes.NewJSONSlice(req.CustomRules)
	}
	if req.SpecialNotes != nil {
		settings.SpecialNotes = req.SpecialNotes
	}
	if req.MaxExampleTokens != nil {
		settings.MaxExampleTokens = *req.MaxExampleTokens
	}
	if req.MaxInspirationTokens != nil {
		settings.MaxInspirationTokens = *req.MaxInspirationTokens
	}

	if err := h.voices.UpdateSettings(ctx, settings); err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	return HandleSuccess(h.logger, c, settings)
}
