// Package generation drives the draft pipeline: segmentation, analysis,
// framework routing, prompt assembly, completion, and shape validation.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/voicepost-team/voicepost/errors"
	"github.com/voicepost-team/voicepost/internal/domain/entities"
	"github.com/voicepost-team/voicepost/internal/domain/repositories"
	"github.com/voicepost-team/voicepost/internal/usecase/analyzer"
	"github.com/voicepost-team/voicepost/internal/usecase/framework"
	"github.com/voicepost-team/voicepost/internal/usecase/prompt"
	"github.com/voicepost-team/voicepost/internal/usecase/segmenter"
	"github.com/voicepost-team/voicepost/internal/usecase/style"
	"github.com/voicepost-team/voicepost/pkg/ai"
	"github.com/voicepost-team/voicepost/pkg/config"
	"github.com/voicepost-team/voicepost/pkg/tokens"
)

// State names the pipeline stage a request is in. States only move forward;
// any failure jumps straight to StateFailed.
type State string

const (
	StateReceived       State = "RECEIVED"
	StateSegmenting     State = "SEGMENTING"
	StateAnalyzing      State = "ANALYZING"
	StateRouting        State = "ROUTING"
	StatePromptAssembly State = "PROMPT_ASSEMBLY"
	StateCompleting     State = "COMPLETING"
	StateValidating     State = "VALIDATING"
	StateDone           State = "DONE"
	StateFailed         State = "FAILED"
)

// StyleReference points at captured inspiration records whose aggregated
// fingerprint should bias this generation.
type StyleReference struct {
	InspirationIDs []uuid.UUID
	ApplyAs        entities.StyleApplyAs
}

// Request is one draft generation request. Segment, when set, is a
// pre-selected segment that has already been through segmentation; Generate
// drafts from its content and skips the SEGMENTING stage.
type Request struct {
	UserID         uuid.UUID
	VoiceType      string
	SourceText     string
	DraftType      entities.DraftType
	Mode           entities.GenerationMode
	StyleReference *StyleReference
	Segment        *entities.TranscriptSegment
}

// Result is a completed generation with its supporting analysis. Structure
// is nil when the request carried a pre-selected segment.
type Result struct {
	Draft     *entities.GeneratedDraft  `json:"draft"`
	Analysis  *entities.AnalysisResult  `json:"analysis"`
	Prompt    *entities.AssembledPrompt `json:"prompt"`
	Structure *entities.StructureResult `json:"structure,omitempty"`
}

// SegmentResult pairs a fan-out outcome with its segment. Err is a string so
// the struct serializes; empty means success.
type SegmentResult struct {
	SegmentID string                   `json:"segment_id"`
	Draft     *entities.GeneratedDraft `json:"draft,omitempty"`
	Analysis  *entities.AnalysisResult `json:"analysis,omitempty"`
	Err       string                   `json:"error,omitempty"`
}

// Orchestrator wires the pipeline stages together
type Orchestrator struct {
	segmenter *segmenter.Segmenter
	analyzer  *analyzer.Analyzer
	lib       *framework.Library
	assembler *prompt.Assembler
	extractor *style.Extractor
	voices    repositories.VoiceContextRepository
	client    ai.CompletionClient
	estimator tokens.Estimator
	cfg       *config.PipelineConfig
	logger    *zap.Logger
}

// NewOrchestrator creates an Orchestrator
func NewOrchestrator(
	seg *segmenter.Segmenter,
	an *analyzer.Analyzer,
	lib *framework.Library,
	asm *prompt.Assembler,
	ext *style.Extractor,
	voices repositories.VoiceContextRepository,
	client ai.CompletionClient,
	estimator tokens.Estimator,
	cfg *config.PipelineConfig,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		segmenter: seg,
		analyzer:  an,
		lib:       lib,
		assembler: asm,
		extractor: ext,
		voices:    voices,
		client:    client,
		estimator: estimator,
		cfg:       cfg,
		logger:    logger,
	}
}

// Structure exposes transcript segmentation as a standalone operation
func (o *Orchestrator) Structure(ctx context.Context, transcript string) (*entities.StructureResult, error) {
	return o.segmenter.Structure(ctx, transcript)
}

// Generate runs the full pipeline for one piece of source text. The source
// goes through segmentation first unless a pre-selected segment is supplied;
// inputs below the short threshold bypass the classifier inside the
// segmenter.
func (o *Orchestrator) Generate(ctx context.Context, req *Request) (*Result, error) {
	state := StateReceived
	log := o.logger.With(
		zap.String("user_id", req.UserID.String()),
		zap.String("voice_type", req.VoiceType),
		zap.String("draft_type", string(req.DraftType)),
	)
	fail := func(next State, err error) (*Result, error) {
		log.Warn("pipeline failed",
			zap.String("state", string(next)),
			zap.Error(err),
		)
		return nil, err
	}

	if req.DraftType != entities.DraftTypePost && req.DraftType != entities.DraftTypeThread {
		return fail(state, apperrors.ErrInvalidArgument(fmt.Sprintf("unknown draft type %q", req.DraftType)))
	}
	mode := req.Mode
	if mode == "" {
		mode = entities.ModePost
	}

	source := req.SourceText
	var structure *entities.StructureResult
	if req.Segment != nil {
		source = req.Segment.Content
		if strings.TrimSpace(source) == "" {
			return fail(state, apperrors.ErrEmptyTranscript())
		}
	} else {
		state = StateSegmenting
		log.Debug("pipeline state", zap.String("state", string(state)))
		var err error
		structure, err = o.segmenter.Structure(ctx, req.SourceText)
		if err != nil {
			return fail(state, err)
		}
		if len(structure.Segments) == 1 {
			source = structure.Segments[0].Content
		} else {
			// The caller asked for one draft out of a multi-idea transcript.
			// Draft from the full text; the structure travels back on the
			// result so the caller can re-issue per segment.
			log.Info("transcript holds multiple ideas, drafting from the full text",
				zap.Int("segments", len(structure.Segments)),
				zap.String("suggested_action", string(structure.Recommendation.SuggestedAction)),
			)
		}
	}

	state = StateAnalyzing
	log.Debug("pipeline state", zap.String("state", string(state)))
	analysis, err := o.analyzer.Analyze(ctx, source)
	if err != nil {
		return fail(state, err)
	}

	state = StateRouting
	fw, err := o.route(analysis)
	if err != nil {
		return fail(state, err)
	}

	state = StatePromptAssembly
	log.Debug("pipeline state", zap.String("state", string(state)), zap.String("framework", string(fw.Key)))

	settings, err := o.voices.GetSettings(ctx, req.UserID, req.VoiceType)
	if err != nil {
		return fail(state, apperrors.ErrInternal(err))
	}
	examples, err := o.voices.ListExamples(ctx, req.UserID, req.VoiceType)
	if err != nil {
		return fail(state, apperrors.ErrInternal(err))
	}
	inspirations, err := o.voices.ListInspirations(ctx, req.UserID, req.VoiceType)
	if err != nil {
		return fail(state, apperrors.ErrInternal(err))
	}

	styleBlock, err := o.styleBlock(ctx, req)
	if err != nil {
		return fail(state, err)
	}

	base := o.composeBase(fw, styleBlock)
	assembled := o.assembler.Assemble(base, settings, examples, inspirations, mode)

	state = StateCompleting
	log.Debug("pipeline state",
		zap.String("state", string(state)),
		zap.Int("prompt_tokens", assembled.TotalTokens),
	)
	raw, err := o.client.Complete(ctx, ai.CompletionRequest{
		SystemPrompt: assembled.SystemPrompt,
		UserPrompt:   buildUserPrompt(source, analysis, req.DraftType),
		Temperature:  0.7,
		JSONResponse: true,
	})
	if err != nil {
		return fail(state, apperrors.ErrGeneration(err))
	}

	state = StateValidating
	draft, err := o.validateDraft(raw, req.DraftType)
	if err != nil {
		return fail(state, err)
	}
	draft.StyleWarnings = o.flagGuardrails(draft, settings)

	state = StateDone
	log.Info("draft generated",
		zap.String("state", string(state)),
		zap.String("framework", string(fw.Key)),
		zap.Int("style_warnings", len(draft.StyleWarnings)),
	)
	return &Result{Draft: draft, Analysis: analysis, Prompt: assembled, Structure: structure}, nil
}

// GenerateSeries fans out over selected segments. Segments are independent:
// one failing, timing out, or returning garbage never cancels its siblings,
// which is why this uses a WaitGroup rather than an errgroup.
func (o *Orchestrator) GenerateSeries(ctx context.Context, req *Request, segments []entities.TranscriptSegment) []SegmentResult {
	results := make([]SegmentResult, len(segments))

	var wg sync.WaitGroup
	for i, seg := range segments {
		wg.Add(1)
		go func(i int, seg entities.TranscriptSegment) {
			defer wg.Done()

			segCtx, cancel := context.WithTimeout(ctx, o.cfg.GenerationTimeout())
			defer cancel()

			segReq := *req
			segReq.Segment = &seg
			res, err := o.Generate(segCtx, &segReq)
			if err != nil {
				results[i] = SegmentResult{SegmentID: seg.ID, Err: err.Error()}
				return
			}
			results[i] = SegmentResult{SegmentID: seg.ID, Draft: res.Draft, Analysis: res.Analysis}
		}(i, seg)
	}
	wg.Wait()

	return results
}

// route picks a framework for the analysis. The analyzer's suggestion wins
// when present; otherwise intent maps to its canonical framework.
func (o *Orchestrator) route(analysis *entities.AnalysisResult) (entities.Framework, error) {
	key := analysis.SuggestedFramework
	if key == "" {
		switch analysis.IntentType {
		case entities.IntentBuildUpdate:
			key = entities.FrameworkBuildUpdate
		case entities.IntentTutorial:
			key = entities.FrameworkTacticalGuide
		case entities.IntentOpinion:
			key = entities.FrameworkOpinion
		default:
			key = entities.FrameworkInsightDrop
		}
		if analysis.SuggestedFormat == entities.FormatThread {
			key = entities.FrameworkThreadDeepDive
		}
	}
	fw, err := o.lib.Get(key)
	if err != nil {
		return entities.Framework{}, apperrors.ErrInvalidAnalysis("routing", err)
	}
	return fw, nil
}

// styleBlock resolves an optional style reference into an aggregated prompt
// block. The block is capped by StyleMaxTokens as a whole: an oversized
// aggregate is dropped entirely rather than truncated mid-sentence.
func (o *Orchestrator) styleBlock(ctx context.Context, req *Request) (string, error) {
	if req.StyleReference == nil || len(req.StyleReference.InspirationIDs) == 0 {
		return "", nil
	}

	records, err := o.voices.GetInspirationsByIDs(ctx, req.UserID, req.StyleReference.InspirationIDs)
	if err != nil {
		return "", apperrors.ErrInternal(err)
	}

	fps := make([]entities.StyleFingerprint, 0, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.ContentText) == "" {
			continue
		}
		fp, err := o.extractor.Analyze(ctx, rec.ContentText)
		if err != nil {
			return "", err
		}
		fps = append(fps, *fp)
	}

	applyAs := req.StyleReference.ApplyAs
	if applyAs == "" {
		applyAs = entities.ApplyVoiceAndFormat
	}
	block := style.Aggregate(fps, applyAs)
	if block == "" {
		return "", nil
	}
	if cost := o.estimator.Estimate(block); cost > o.cfg.StyleMaxTokens {
		o.logger.Warn("style block over budget, dropping",
			zap.Int("tokens", cost),
			zap.Int("budget", o.cfg.StyleMaxTokens),
		)
		return "", nil
	}
	return block, nil
}

func (o *Orchestrator) composeBase(fw entities.Framework, styleBlock string) string {
	parts := []string{
		o.lib.BasePrinciples(),
		o.lib.SourceGuidance(),
		o.lib.Render(fw),
	}
	if styleBlock != "" {
		parts = append(parts, styleBlock)
	}
	return strings.Join(parts, "\n\n")
}

// buildUserPrompt states the source material, the analysis, and the exact
// output shape contract for the requested draft type.
func buildUserPrompt(source string, analysis *entities.AnalysisResult, draftType entities.DraftType) string {
	var sb strings.Builder
	sb.WriteString("TRANSCRIPT (ground truth):\n")
	sb.WriteString(source)
	sb.WriteString("\n\nANALYSIS:\n")
	sb.WriteString("Core idea: ")
	sb.WriteString(analysis.CoreIdea)
	sb.WriteString("\n")
	for _, p := range analysis.SupportingPoints {
		sb.WriteString("- ")
		sb.WriteString(p)
		sb.WriteString("\n")
	}
	if d := analysis.ExtractedDetails; d != nil {
		if len(d.Numbers) > 0 {
			sb.WriteString("Numbers to preserve: " + strings.Join(d.Numbers, ", ") + "\n")
		}
		if len(d.Tools) > 0 {
			sb.WriteString("Tools to preserve: " + strings.Join(d.Tools, ", ") + "\n")
		}
		if len(d.Timeframes) > 0 {
			sb.WriteString("Timeframes to preserve: " + strings.Join(d.Timeframes, ", ") + "\n")
		}
	}

	sb.WriteString("\nOUTPUT:\n")
	switch draftType {
	case entities.DraftTypeThread:
		sb.WriteString(`Write a thread of 3 to 8 posts. Respond with exactly this JSON shape: {"tweets": ["post 1", "post 2", ...]}`)
	default:
		sb.WriteString(`Write a single post. Respond with exactly this JSON shape: {"text": "the post"}`)
	}
	return sb.String()
}

// draftWire is the completion output shape. Both fields are declared so a
// shape mismatch (a thread request answered with {"text": ...}) parses
// cleanly and is then rejected by validation.
type draftWire struct {
	Text   string   `json:"text"`
	Tweets []string `json:"tweets"`
}

func (o *Orchestrator) validateDraft(raw string, draftType entities.DraftType) (*entities.GeneratedDraft, error) {
	var wire draftWire
	if err := json.Unmarshal([]byte(ai.ExtractJSON(raw)), &wire); err != nil {
		return nil, apperrors.ErrGeneration(fmt.Errorf("unparsable draft: %w", err))
	}

	switch draftType {
	case entities.DraftTypePost:
		if strings.TrimSpace(wire.Text) == "" {
			return nil, apperrors.ErrGeneration(fmt.Errorf("post draft missing text field"))
		}
		return &entities.GeneratedDraft{Type: entities.DraftTypePost, Text: wire.Text}, nil
	case entities.DraftTypeThread:
		tweets := make([]string, 0, len(wire.Tweets))
		for _, t := range wire.Tweets {
			if strings.TrimSpace(t) != "" {
				tweets = append(tweets, t)
			}
		}
		if len(tweets) == 0 {
			return nil, apperrors.ErrGeneration(fmt.Errorf("thread draft missing tweets field"))
		}
		return &entities.GeneratedDraft{Type: entities.DraftTypeThread, Tweets: tweets}, nil
	default:
		return nil, apperrors.ErrInvalidArgument(fmt.Sprintf("unknown draft type %q", draftType))
	}
}

// flagGuardrails scans a shape-valid draft for banned words and the user's
// avoid list. Hits are reported as warnings; the draft itself is returned
// untouched, never rewritten or rejected on style grounds.
func (o *Orchestrator) flagGuardrails(draft *entities.GeneratedDraft, settings *entities.VoiceSettings) []string {
	text := draft.Text
	if draft.Type == entities.DraftTypeThread {
		text = strings.Join(draft.Tweets, "\n")
	}
	lower := strings.ToLower(text)

	var warnings []string
	for _, w := range o.lib.BannedWords() {
		if strings.Contains(lower, strings.ToLower(w)) {
			warnings = append(warnings, fmt.Sprintf("contains banned word %q", w))
		}
	}
	for _, w := range settings.AvoidWords {
		if strings.TrimSpace(w) == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(w)) {
			warnings = append(warnings, fmt.Sprintf("contains avoided word %q", w))
		}
	}
	return warnings
}
