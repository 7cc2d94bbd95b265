package style

// AnalyzeRequest submits one reference post for style fingerprinting
type AnalyzeRequest struct {
	Content string `json:"content" validate:"required"`
}
