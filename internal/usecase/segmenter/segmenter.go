// Package segmenter splits a raw transcript into discrete idea segments.
package segmenter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/voicepost-team/voicepost/errors"
	"github.com/voicepost-team/voicepost/internal/domain/entities"
	"github.com/voicepost-team/voicepost/pkg/ai"
	"github.com/voicepost-team/voicepost/pkg/config"
)

// minCoverageRatio is the fraction of the source that returned segments must
// cover before the conformance check logs a warning.
const minCoverageRatio = 0.6

// Segmenter turns raw transcripts into StructureResults
type Segmenter struct {
	client ai.CompletionClient
	cfg    *config.PipelineConfig
	logger *zap.Logger
}

// New creates a Segmenter
func New(client ai.CompletionClient, cfg *config.PipelineConfig, logger *zap.Logger) *Segmenter {
	return &Segmenter{client: client, cfg: cfg, logger: logger}
}

// structureWire is the classifier's output shape. Segment IDs are assigned
// server-side after parsing.
type structureWire struct {
	Structure      string `json:"structure"`
	Summary        string `json:"summary"`
	Recommendation struct {
		Message         string `json:"message"`
		SuggestedAction string `json:"suggested_action"`
	} `json:"recommendation"`
	Segments []struct {
		Title          string   `json:"title"`
		Content        string   `json:"content"`
		SuggestedType  string   `json:"suggested_type"`
		Relationship   string   `json:"relationship"`
		EstimatedDepth string   `json:"estimated_depth"`
		KeyTopics      []string `json:"key_topics"`
		Order          int      `json:"order"`
	} `json:"segments"`
}

// Structure splits transcript into idea segments. Inputs below the short
// threshold bypass classification entirely and return a single trivial
// segment; this path is a pure function with no external call.
func (s *Segmenter) Structure(ctx context.Context, transcript string) (*entities.StructureResult, error) {
	trimmed := strings.TrimSpace(transcript)
	if trimmed == "" {
		return nil, apperrors.ErrEmptyTranscript()
	}

	if len(transcript) < s.cfg.ShortTranscriptThreshold {
		return s.shortCircuit(transcript), nil
	}

	raw, err := s.client.Complete(ctx, ai.CompletionRequest{
		SystemPrompt: segmentationSystemPrompt,
		UserPrompt:   fmt.Sprintf("Transcript:\n%s", transcript),
		Temperature:  0.2,
		JSONResponse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("segmentation call failed: %w", err)
	}

	var wire structureWire
	if err := json.Unmarshal([]byte(ai.ExtractJSON(raw)), &wire); err != nil {
		return nil, apperrors.ErrInvalidAnalysis("segmentation", fmt.Errorf("unparsable output: %w", err))
	}
	result, err := s.fromWire(&wire)
	if err != nil {
		return nil, apperrors.ErrInvalidAnalysis("segmentation", err)
	}

	s.checkConformance(transcript, result)

	return result, nil
}

// shortCircuit returns a single-segment result for short inputs
func (s *Segmenter) shortCircuit(transcript string) *entities.StructureResult {
	return &entities.StructureResult{
		Structure: entities.StructureSingleIdea,
		Segments: []entities.TranscriptSegment{
			{
				ID:             uuid.NewString(),
				Title:          "Full transcript",
				Content:        transcript,
				SuggestedType:  entities.SuggestedTypePost,
				Relationship:   entities.RelationshipStandalone,
				EstimatedDepth: entities.DepthShallow,
				Order:          1,
			},
		},
		Summary: "Input is short enough to treat as a single idea.",
		Recommendation: entities.Recommendation{
			Message:         "Short input, no segmentation needed.",
			SuggestedAction: entities.ActionProceedDirectly,
		},
	}
}

func (s *Segmenter) fromWire(wire *structureWire) (*entities.StructureResult, error) {
	structure := entities.StructureType(wire.Structure)
	switch structure {
	case entities.StructureSingleIdea, entities.StructureThreadOutline,
		entities.StructureMultiPostSeries, entities.StructureIdeaDump:
	default:
		return nil, fmt.Errorf("unknown structure %q", wire.Structure)
	}
	if len(wire.Segments) == 0 {
		return nil, fmt.Errorf("classifier returned no segments")
	}

	segments := make([]entities.TranscriptSegment, 0, len(wire.Segments))
	for i, seg := range wire.Segments {
		if strings.TrimSpace(seg.Content) == "" {
			return nil, fmt.Errorf("segment %d has empty content", i)
		}
		order := seg.Order
		if order == 0 {
			order = i + 1
		}
		segments = append(segments, entities.TranscriptSegment{
			ID:             uuid.NewString(),
			Title:          seg.Title,
			Content:        seg.Content,
			SuggestedType:  entities.SuggestedType(seg.SuggestedType),
			Relationship:   entities.SegmentRelationship(seg.Relationship),
			EstimatedDepth: entities.SegmentDepth(seg.EstimatedDepth),
			KeyTopics:      seg.KeyTopics,
			Order:          order,
		})
	}

	action := entities.SuggestedAction(wire.Recommendation.SuggestedAction)
	if action == "" {
		action = entities.ActionSelectSegments
	}

	return &entities.StructureResult{
		Structure: structure,
		Segments:  segments,
		Summary:   wire.Summary,
		Recommendation: entities.Recommendation{
			Message:         wire.Recommendation.Message,
			SuggestedAction: action,
		},
	}, nil
}

// checkConformance verifies the verbatim-extraction contract: every segment
// must be a substring of the source and segments together should cover most
// of it. Violations are logged, not fatal; the shape already validated and
// rejecting here would turn a degraded classifier into a hard outage.
func (s *Segmenter) checkConformance(source string, result *entities.StructureResult) {
	covered := 0
	for _, seg := range result.Segments {
		if !strings.Contains(source, seg.Content) {
			if s.logger != nil {
				s.logger.Warn("segment content is not verbatim from source",
					zap.String("segment_id", seg.ID),
					zap.String("title", seg.Title),
				)
			}
			continue
		}
		covered += len(seg.Content)
	}

	ratio := float64(covered) / float64(len(source))
	if ratio < minCoverageRatio && s.logger != nil {
		s.logger.Warn("segments cover too little of the source transcript",
			zap.Float64("coverage", ratio),
			zap.Int("segment_count", len(result.Segments)),
		)
	}
}

const segmentationSystemPrompt = `You split spoken-word transcripts into discrete idea segments.

Rules:
- Segment boundaries follow topic shifts or explicit transition phrases ("anyway", "next thing", "oh and also").
- Each segment carries exactly one core idea.
- Segment content must be extracted VERBATIM from the transcript. Never summarize, never paraphrase, never fix grammar.
- Respond with a single JSON object:
{
  "structure": "single_idea" | "thread_outline" | "multi_post_series" | "idea_dump",
  "summary": "one-sentence overview of what the transcript contains",
  "recommendation": {
    "message": "advice for the user",
    "suggested_action": "proceed_directly" | "select_segments" | "review_split"
  },
  "segments": [
    {
      "title": "short label",
      "content": "verbatim substring of the transcript",
      "suggested_type": "post" | "thread" | "script" | "note",
      "relationship": "standalone" | "part_of_series" | "part_of_thread",
      "estimated_depth": "shallow" | "medium" | "deep",
      "key_topics": ["topic"],
      "order": 1
    }
  ]
}`
