package entities

// StructureType classifies the overall shape of a raw transcript
type StructureType string

const (
	StructureSingleIdea      StructureType = "single_idea"
	StructureThreadOutline   StructureType = "thread_outline"
	StructureMultiPostSeries StructureType = "multi_post_series"
	StructureIdeaDump        StructureType = "idea_dump"
)

// SuggestedType is the content type a segment is best suited for
type SuggestedType string

const (
	SuggestedTypePost   SuggestedType = "post"
	SuggestedTypeThread SuggestedType = "thread"
	SuggestedTypeScript SuggestedType = "script"
	SuggestedTypeNote   SuggestedType = "note"
)

// SegmentRelationship describes how a segment relates to its siblings
type SegmentRelationship string

const (
	RelationshipStandalone   SegmentRelationship = "standalone"
	RelationshipPartOfSeries SegmentRelationship = "part_of_series"
	RelationshipPartOfThread SegmentRelationship = "part_of_thread"
)

// SegmentDepth estimates how much substance a segment carries
type SegmentDepth string

const (
	DepthShallow SegmentDepth = "shallow"
	DepthMedium  SegmentDepth = "medium"
	DepthDeep    SegmentDepth = "deep"
)

// SuggestedAction tells the caller what to do with a StructureResult
type SuggestedAction string

const (
	ActionProceedDirectly SuggestedAction = "proceed_directly"
	ActionSelectSegments  SuggestedAction = "select_segments"
	ActionReviewSplit     SuggestedAction = "review_split"
)

// TranscriptSegment is a contiguous, self-contained idea extracted verbatim
// from a larger transcript. Content is never a paraphrase: it must be a
// substring of the source.
type TranscriptSegment struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Content        string              `json:"content"`
	SuggestedType  SuggestedType       `json:"suggested_type"`
	Relationship   SegmentRelationship `json:"relationship"`
	EstimatedDepth SegmentDepth        `json:"estimated_depth"`
	KeyTopics      []string            `json:"key_topics"`
	Order          int                 `json:"order"`
}

// Recommendation carries the segmenter's advice to the caller
type Recommendation struct {
	Message         string          `json:"message"`
	SuggestedAction SuggestedAction `json:"suggested_action"`
}

// StructureResult is produced once per raw-transcript submission and is not
// persisted beyond the request.
type StructureResult struct {
	Structure      StructureType       `json:"structure"`
	Segments       []TranscriptSegment `json:"segments"`
	Summary        string              `json:"summary"`
	Recommendation Recommendation      `json:"recommendation"`
}
