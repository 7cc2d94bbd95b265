package entities

// DraftType tags which output shape was requested from the completion
// capability: a single post ({text}) or a thread ({tweets}).
type DraftType string

const (
	DraftTypePost   DraftType = "post"
	DraftTypeThread DraftType = "thread"
)

// GeneratedDraft is a shape-validated completion. Exactly one of Text or
// Tweets is populated, matching Type. StyleWarnings lists guardrail hits
// (banned words, avoid_words) found in the draft; the pipeline flags them
// but never rewrites or rejects a shape-valid draft.
type GeneratedDraft struct {
	Type          DraftType `json:"type"`
	Text          string    `json:"text,omitempty"`
	Tweets        []string  `json:"tweets,omitempty"`
	StyleWarnings []string  `json:"style_warnings,omitempty"`
}
