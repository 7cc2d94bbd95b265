package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/voicepost-team/voicepost/internal/domain/entities"
)

// VoiceContextRepository implements the voice context repository interface
// using GORM.
type VoiceContextRepository struct {
	db *gorm.DB
}

// NewVoiceContextRepository creates a new voice context repository
func NewVoiceContextRepository(db *gorm.DB) *VoiceContextRepository {
	return &VoiceContextRepository{
		db: db,
	}
}

// GetSettings returns settings for a (user, voice_type) pair. First access
// creates and persists the defaults so every caller sees the same row.
func (r *VoiceContextRepository) GetSettings(ctx context.Context, userID uuid.UUID, voiceType string) (*entities.VoiceSettings, error) {
	var settings entities.VoiceSettings
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND voice_type = ?", userID, voiceType).
		First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		defaults := entities.NewVoiceSettings(userID, voiceType)
		if err := r.db.WithContext(ctx).Create(defaults).Error; err != nil {
			return nil, fmt.Errorf("failed to create default voice settings: %w", err)
		}
		return defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find voice settings: %w", err)
	}
	return &settings, nil
}

// UpdateSettings persists modified settings
func (r *VoiceContextRepository) UpdateSettings(ctx context.Context, settings *entities.VoiceSettings) error {
	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		return fmt.Errorf("failed to update voice settings: %w", err)
	}
	return nil
}

// ListExamples returns all writing examples for a (user, voice_type) pair
func (r *VoiceContextRepository) ListExamples(ctx context.Context, userID uuid.UUID, voiceType string) ([]entities.VoiceExample, error) {
	var examples []entities.VoiceExample
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND voice_type = ?", userID, voiceType).
		Order("created_at DESC").
		Find(&examples).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list voice examples: %w", err)
	}
	return examples, nil
}

// ListInspirations returns all inspiration records for a (user, voice_type) pair
func (r *VoiceContextRepository) ListInspirations(ctx context.Context, userID uuid.UUID, voiceType string) ([]entities.InspirationRecord, error) {
	var records []entities.InspirationRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND voice_type = ?", userID, voiceType).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list inspiration records: %w", err)
	}
	return records, nil
}

// GetInspirationsByIDs returns the named inspiration records, scoped to the
// owning user. Unknown IDs are silently absent from the result.
func (r *VoiceContextRepository) GetInspirationsByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]entities.InspirationRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var records []entities.InspirationRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find inspiration records: %w", err)
	}
	return records, nil
}
