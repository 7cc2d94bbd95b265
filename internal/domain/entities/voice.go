package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GenerationMode selects which kind of content is being generated, and
// therefore which examples are eligible during prompt assembly.
type GenerationMode string

const (
	ModePost  GenerationMode = "post"
	ModeReply GenerationMode = "reply"
)

// Categorical voice modes. Each value maps to exactly one fixed instruction
// sentence in the prompt assembler; there is no interpolation.
const (
	LengthModeShort  = "short"
	LengthModeMedium = "medium"
	LengthModeLong   = "long"

	DirectnessModeSoft   = "soft"
	DirectnessModeDirect = "direct"
	DirectnessModeBlunt  = "blunt"

	HumorModeNone = "none"
	HumorModeDry  = "dry"
	HumorModeOpen = "open"

	EmojiModeNever      = "never"
	EmojiModeSparing    = "sparing"
	EmojiModeExpressive = "expressive"

	QuestionRateRare       = "rare"
	QuestionRateOccasional = "occasional"
	QuestionRateFrequent   = "frequent"

	DisagreementModeAvoid    = "avoid"
	DisagreementModeMeasured = "measured"
	DisagreementModeWilling  = "willing"
)

// VoiceSettings is owned by a (user, voice_type) pair. It is mutated only
// through explicit update calls and is strictly read-only during prompt
// assembly, so concurrent generations may share it without locking.
type VoiceSettings struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_voice_settings_owner"`
	VoiceType string    `json:"voice_type" gorm:"type:varchar(50);not null;uniqueIndex:idx_voice_settings_owner"`

	// Continuous sliders, 0-100
	OptimizationAuthenticity int `json:"optimization_authenticity" gorm:"not null;default:50"`
	ToneFormalCasual         int `json:"tone_formal_casual" gorm:"not null;default:50"`
	EnergyCalmPunchy         int `json:"energy_calm_punchy" gorm:"not null;default:50"`
	StanceNeutralOpinionated int `json:"stance_neutral_opinionated" gorm:"not null;default:50"`

	// Categorical modes
	LengthMode       string `json:"length_mode" gorm:"type:varchar(20);not null;default:'medium'"`
	DirectnessMode   string `json:"directness_mode" gorm:"type:varchar(20);not null;default:'direct'"`
	HumorMode        string `json:"humor_mode" gorm:"type:varchar(20);not null;default:'none'"`
	EmojiMode        string `json:"emoji_mode" gorm:"type:varchar(20);not null;default:'never'"`
	QuestionRate     string `json:"question_rate" gorm:"type:varchar(20);not null;default:'rare'"`
	DisagreementMode string `json:"disagreement_mode" gorm:"type:varchar(20);not null;default:'measured'"`

	// Guardrails
	AvoidWords  datatypes.JSONSlice[string] `json:"avoid_words" gorm:"type:jsonb"`
	AvoidTopics datatypes.JSONSlice[string] `json:"avoid_topics" gorm:"type:jsonb"`
	CustomRules datatypes.JSONSlice[string] `json:"custom_rules" gorm:"type:jsonb"`

	SpecialNotes *string `json:"special_notes,omitempty" gorm:"type:text"`

	// Token budgets for assembled prompt sections
	MaxExampleTokens     int `json:"max_example_tokens" gorm:"not null;default:800"`
	MaxInspirationTokens int `json:"max_inspiration_tokens" gorm:"not null;default:600"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for VoiceSettings
func (VoiceSettings) TableName() string {
	return "voice_settings"
}

// NewVoiceSettings creates settings with defaults for a (user, voice_type) pair
func NewVoiceSettings(userID uuid.UUID, voiceType string) *VoiceSettings {
	return &VoiceSettings{
		ID:                       uuid.New(),
		UserID:                   userID,
		VoiceType:                voiceType,
		OptimizationAuthenticity: 50,
		ToneFormalCasual:         50,
		EnergyCalmPunchy:         50,
		StanceNeutralOpinionated: 50,
		LengthMode:               LengthModeMedium,
		DirectnessMode:           DirectnessModeDirect,
		HumorMode:                HumorModeNone,
		EmojiMode:                EmojiModeNever,
		QuestionRate:             QuestionRateRare,
		DisagreementMode:         DisagreementModeMeasured,
		MaxExampleTokens:         800,
		MaxInspirationTokens:     600,
	}
}

// VoiceExample is a captured past post or reply used to demonstrate the
// user's voice. Read-only during assembly.
type VoiceExample struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID          uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index:idx_voice_examples_owner"`
	VoiceType       string         `json:"voice_type" gorm:"type:varchar(50);not null;index:idx_voice_examples_owner"`
	ContentText     string         `json:"content_text" gorm:"type:text;not null"`
	ContentType     GenerationMode `json:"content_type" gorm:"type:varchar(20);not null;default:'post'"`
	PinnedRank      *int           `json:"pinned_rank,omitempty"`
	EngagementScore float64        `json:"engagement_score" gorm:"not null;default:0"`
	IsExcluded      bool           `json:"is_excluded" gorm:"not null;default:false"`
	CreatedAt       time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for VoiceExample
func (VoiceExample) TableName() string {
	return "voice_examples"
}

// InspirationRecord is previously captured third-party content used to bias
// voice and/or format of new output.
type InspirationRecord struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_inspirations_owner"`
	VoiceType      string    `json:"voice_type" gorm:"type:varchar(50);not null;index:idx_inspirations_owner"`
	ContentText    string    `json:"content_text" gorm:"type:text;not null"`
	SourceAuthor   *string   `json:"source_author,omitempty" gorm:"type:varchar(255)"`
	RelevanceScore float64   `json:"relevance_score" gorm:"not null;default:0"`
	IsPinned       bool      `json:"is_pinned" gorm:"not null;default:false"`
	PinnedRank     *int      `json:"pinned_rank,omitempty"`
	IsExcluded     bool      `json:"is_excluded" gorm:"not null;default:false"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for InspirationRecord
func (InspirationRecord) TableName() string {
	return "inspiration_records"
}
