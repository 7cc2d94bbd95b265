package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/voicepost-team/voicepost/internal/domain/entities"
)

// VoiceContextRepository provides the per-user voice context the prompt
// assembler consumes: settings, writing examples, and inspiration records.
type VoiceContextRepository interface {
	// GetSettings returns settings for a (user, voice_type) pair, creating
	// defaults on first access.
	GetSettings(ctx context.Context, userID uuid.UUID, voiceType string) (*entities.VoiceSettings, error)
	UpdateSettings(ctx context.Context, settings *entities.VoiceSettings) error
	ListExamples(ctx context.Context, userID uuid.UUID, voiceType string) ([]entities.VoiceExample, error)
	ListInspirations(ctx context.Context, userID uuid.UUID, voiceType string) ([]entities.InspirationRecord, error)
	GetInspirationsByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]entities.InspirationRecord, error)
}
