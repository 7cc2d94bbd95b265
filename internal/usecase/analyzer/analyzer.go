// Package analyzer classifies a segment's substance: density, completeness,
// intent, and which drafting framework fits it.
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/voicepost-team/voicepost/errors"
	"github.com/voicepost-team/voicepost/internal/domain/entities"
	"github.com/voicepost-team/voicepost/internal/usecase/framework"
	"github.com/voicepost-team/voicepost/pkg/ai"
)

// Analyzer classifies segment content ahead of framework routing
type Analyzer struct {
	client ai.CompletionClient
	lib    *framework.Library
	logger *zap.Logger
}

// New creates an Analyzer
func New(client ai.CompletionClient, lib *framework.Library, logger *zap.Logger) *Analyzer {
	return &Analyzer{client: client, lib: lib, logger: logger}
}

// Analyze classifies content and recommends a framework. Required fields
// missing from the classifier output or an unregistered framework key fail
// the call; nothing is silently defaulted.
func (a *Analyzer) Analyze(ctx context.Context, content string) (*entities.AnalysisResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.ErrEmptyTranscript()
	}

	raw, err := a.client.Complete(ctx, ai.CompletionRequest{
		SystemPrompt: analysisSystemPrompt,
		UserPrompt:   fmt.Sprintf("Segment:\n%s", content),
		Temperature:  0.2,
		JSONResponse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("analysis call failed: %w", err)
	}

	var result entities.AnalysisResult
	if err := json.Unmarshal([]byte(ai.ExtractJSON(raw)), &result); err != nil {
		return nil, apperrors.ErrInvalidAnalysis("analysis", fmt.Errorf("unparsable output: %w", err))
	}
	if err := a.validate(&result); err != nil {
		return nil, apperrors.ErrInvalidAnalysis("analysis", err)
	}

	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}

	a.logger.Debug("segment analyzed",
		zap.String("density", string(result.ContentDensity)),
		zap.String("intent", string(result.IntentType)),
		zap.String("framework", string(result.SuggestedFramework)),
		zap.Float64("confidence", result.Confidence),
	)
	return &result, nil
}

func (a *Analyzer) validate(result *entities.AnalysisResult) error {
	switch result.ContentDensity {
	case entities.DensityLean, entities.DensityRich:
	default:
		return fmt.Errorf("missing or unknown content_density %q", result.ContentDensity)
	}
	switch result.SuggestedFormat {
	case entities.FormatPost, entities.FormatThread, entities.FormatFragment:
	default:
		return fmt.Errorf("missing or unknown suggested_format %q", result.SuggestedFormat)
	}
	if strings.TrimSpace(result.CoreIdea) == "" {
		return fmt.Errorf("missing core_idea")
	}
	if result.SuggestedFramework != "" && !a.lib.Has(result.SuggestedFramework) {
		return fmt.Errorf("unknown framework key %q", result.SuggestedFramework)
	}
	return nil
}

const analysisSystemPrompt = `You analyze one segment of a spoken transcript and classify its substance.

Respond with a single JSON object:
{
  "content_density": "lean" | "rich",
  "completeness": "complete" | "fragment" | "note",
  "intent_type": "insight" | "build_update" | "tutorial" | "opinion" | "story",
  "suggested_format": "post" | "thread" | "fragment",
  "suggested_framework": "insight_drop" | "build_update" | "tactical_guide" | "opinion" | "thread_deep_dive",
  "core_idea": "the one idea this segment carries, in one sentence",
  "supporting_points": ["specific supporting point from the segment"],
  "extracted_details": {
    "numbers": ["every number, metric, or quantity mentioned"],
    "tools": ["every tool, product, or technology named"],
    "timeframes": ["every duration or date mentioned"],
    "errors": ["every mistake or failure described"]
  },
  "confidence": 0.0,
  "reasoning": "one sentence on why this classification"
}

Rules:
- content_density is "rich" only when the segment has concrete specifics (numbers, named tools, worked examples). Enthusiastic but vague content is "lean".
- Omit extracted_details categories that have no entries.
- suggested_framework must match intent: insight -> insight_drop, build_update -> build_update, tutorial -> tactical_guide, opinion -> opinion. Use thread_deep_dive when the segment is rich enough for 3 or more posts.
- Never invent specifics that are not in the segment.`
