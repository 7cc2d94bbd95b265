package entities

// PromptBreakdown reports estimated token counts per prompt section.
// Diagnostic only; no consumer relies on it for correctness.
type PromptBreakdown struct {
	Base        int `json:"base"`
	Controls    int `json:"controls"`
	Examples    int `json:"examples"`
	Inspiration int `json:"inspiration"`
}

// AssembledPrompt is the fully rendered system prompt plus accounting.
// It is ephemeral: recomputed on every call, never diffed against a prior
// version. Given identical inputs the SystemPrompt is byte-identical.
type AssembledPrompt struct {
	SystemPrompt         string          `json:"system_prompt"`
	TotalTokens          int             `json:"total_tokens"`
	Breakdown            PromptBreakdown `json:"breakdown"`
	ExamplesIncluded     int             `json:"examples_included"`
	ExamplesOmitted      int             `json:"examples_omitted"`
	InspirationsIncluded int             `json:"inspirations_included"`
	InspirationsOmitted  int             `json:"inspirations_omitted"`
}
