package voice

// UpdateSettingsRequest updates tunable voice settings. Pointer fields are
// optional; absent fields keep their current value.
type UpdateSettingsRequest struct {
	UserID    string `json:"user_id" validate:"required,uuid"`
	VoiceType string `json:"voice_type" validate:"required"`

	OptimizationAuthenticity *int `json:"optimization_authenticity" validate:"omitempty,min=0,max=100"`
	ToneFormalCasual         *int `json:"tone_formal_casual" validate:"omitempty,min=0,max=100"`
	EnergyCalmPunchy         *int `json:"energy_calm_punchy" validate:"omitempty,min=0,max=100"`
	StanceNeutralOpinionated *int `json:"stance_neutral_opinionated" validate:"omitempty,min=0,max=100"`

	LengthMode       *string `json:"length_mode" validate:"omitempty,oneof=short medium long"`
	DirectnessMode   *string `json:"directness_mode" validate:"omitempty,oneof=soft direct blunt"`
	HumorMode        *string `json:"humor_mode" validate:"omitempty,oneof=none dry open"`
	EmojiMode        *string `json:"emoji_mode" validate:"omitempty,oneof=never sparing expressive"`
	QuestionRate     *string `json:"question_rate" validate:"omitempty,oneof=rare occasional frequent"`
	DisagreementMode *string `json:"disagreement_mode" validate:"omitempty,oneof=avoid measured willing"`

	AvoidWords   []string `json:"avoid_words" validate:"omitempty"`
	AvoidTopics  []string `json:"avoid_topics" validate:"omitempty"`
	CustomRules  []string `json:"custom_rules" validate:"omitempty"`
	SpecialNotes *string  `json:"special_notes" validate:"omitempty"`

	MaxExampleTokens     *int `json:"max_example_tokens" validate:"omitempty,min=0"`
	MaxInspirationTokens *int `json:"max_inspiration_tokens" validate:"omitempty,min=0"`
}
