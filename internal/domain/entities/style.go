package entities

// StyleApplyAs selects which halves of a style reference bias generation
type StyleApplyAs string

const (
	ApplyVoiceAndFormat StyleApplyAs = "voice_and_format"
	ApplyVoiceOnly      StyleApplyAs = "voice_only"
	ApplyFormatOnly     StyleApplyAs = "format_only"
)

// VoiceFingerprint captures how a reference post sounds
type VoiceFingerprint struct {
	Tone             []string `json:"tone"`
	SentenceStyle    string   `json:"sentence_style"`
	Vocabulary       string   `json:"vocabulary"`
	Perspective      string   `json:"perspective"`
	Patterns         []string `json:"patterns"`
	SignaturePhrases []string `json:"signature_phrases"`
}

// FormatFingerprint captures how a reference post is laid out.
// Length is the approximate character count of the post body.
type FormatFingerprint struct {
	Structure      string `json:"structure"`
	Length         int    `json:"length"`
	LineBreakUsage string `json:"line_break_usage"`
	ParagraphStyle string `json:"paragraph_style"`
	UsesLists      bool   `json:"uses_lists"`
	OpeningStyle   string `json:"opening_style"`
	ClosingStyle   string `json:"closing_style"`
}

// StyleFingerprint is produced once per reference post. Reference content is
// immutable once captured, so fingerprints are cacheable indefinitely.
type StyleFingerprint struct {
	Voice  VoiceFingerprint  `json:"voice"`
	Format FormatFingerprint `json:"format"`
}
