package draft

// StructureRequest submits a raw transcript for segmentation
type StructureRequest struct {
	Transcript string `json:"transcript" validate:"required"`
}

// StyleReferencePayload points at inspiration records to bias generation
type StyleReferencePayload struct {
	InspirationIDs []string `json:"inspiration_ids" validate:"required,min=1,dive,uuid"`
	ApplyAs        string   `json:"apply_as" validate:"omitempty,oneof=voice_and_format voice_only format_only"`
}

// SegmentPayload names one segment for series generation
type SegmentPayload struct {
	ID      string `json:"id" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// GenerateRequest requests one draft, or one draft per segment when
// Segments is non-empty.
type GenerateRequest struct {
	UserID         string                 `json:"user_id" validate:"required,uuid"`
	VoiceType      string                 `json:"voice_type" validate:"required"`
	SourceText     string                 `json:"source_text" validate:"required_without=Segments"`
	DraftType      string                 `json:"draft_type" validate:"required,oneof=post thread"`
	Mode           string                 `json:"mode" validate:"omitempty,oneof=post reply"`
	StyleReference *StyleReferencePayload `json:"style_reference,omitempty" validate:"omitempty"`
	Segments       []SegmentPayload       `json:"segments,omitempty" validate:"omitempty,dive"`
}
