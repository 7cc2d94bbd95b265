package entities

// ContentDensity measures how much usable substance a segment holds
type ContentDensity string

const (
	DensityLean ContentDensity = "lean"
	DensityRich ContentDensity = "rich"
)

// Completeness measures whether a segment reads as a finished thought
type Completeness string

const (
	CompletenessComplete Completeness = "complete"
	CompletenessFragment Completeness = "fragment"
	CompletenessNote     Completeness = "note"
)

// IntentType is the communicative intent behind a segment
type IntentType string

const (
	IntentInsight     IntentType = "insight"
	IntentBuildUpdate IntentType = "build_update"
	IntentTutorial    IntentType = "tutorial"
	IntentOpinion     IntentType = "opinion"
	IntentStory       IntentType = "story"
)

// SuggestedFormat is the output format the analyzer recommends
type SuggestedFormat string

const (
	FormatPost     SuggestedFormat = "post"
	FormatThread   SuggestedFormat = "thread"
	FormatFragment SuggestedFormat = "fragment"
)

// ExtractedDetails holds concrete specifics pulled out of a segment.
// Every field is optional; absent categories are simply omitted.
type ExtractedDetails struct {
	Numbers    []string `json:"numbers,omitempty"`
	Tools      []string `json:"tools,omitempty"`
	Timeframes []string `json:"timeframes,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

// AnalysisResult is the structured output of the classification capability
// for one segment (or the full transcript when structure is single_idea).
// ContentDensity, SuggestedFormat, and CoreIdea are mandatory; their absence
// is a fatal contract violation, never silently defaulted.
type AnalysisResult struct {
	ContentDensity     ContentDensity    `json:"content_density"`
	Completeness       Completeness      `json:"completeness"`
	IntentType         IntentType        `json:"intent_type"`
	SuggestedFormat    SuggestedFormat   `json:"suggested_format"`
	SuggestedFramework FrameworkKey      `json:"suggested_framework"`
	CoreIdea           string            `json:"core_idea"`
	SupportingPoints   []string          `json:"supporting_points"`
	ExtractedDetails   *ExtractedDetails `json:"extracted_details,omitempty"`
	Confidence         float64           `json:"confidence"`
	Reasoning          string            `json:"reasoning"`
}
