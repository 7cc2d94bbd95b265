package generation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/voicepost-team/voicepost/errors"
	"github.com/voicepost-team/voicepost/internal/domain/entities"
	"github.com/voicepost-team/voicepost/internal/usecase/analyzer"
	"github.com/voicepost-team/voicepost/internal/usecase/framework"
	"github.com/voicepost-team/voicepost/internal/usecase/prompt"
	"github.com/voicepost-team/voicepost/internal/usecase/segmenter"
	"github.com/voicepost-team/voicepost/internal/usecase/style"
	"github.com/voicepost-team/voicepost/pkg/ai"
	"github.com/voicepost-team/voicepost/pkg/config"
	"github.com/voicepost-team/voicepost/pkg/tokens"
)

const analysisResponse = `{
	"content_density": "rich",
	"completeness": "complete",
	"intent_type": "build_update",
	"suggested_format": "post",
	"suggested_framework": "build_update",
	"core_idea": "Deploy time dropped from 20 to 4 minutes",
	"supporting_points": ["caching"],
	"confidence": 0.9,
	"reasoning": "numbers present"
}`

const fingerprintResponse = `{
	"voice": {"tone": ["direct"], "sentence_style": "short", "perspective": "first person"},
	"format": {"structure": "hook then evidence", "length": 300}
}`

const structureResponse = `{
	"structure": "single_idea",
	"summary": "one idea about the cache layer",
	"recommendation": {"message": "good to go", "suggested_action": "proceed_directly"},
	"segments": [
		{"title": "Cache layer", "content": "talked about the cache layer and then the deploy pipeline.", "suggested_type": "post", "order": 1}
	]
}`

const multiStructureResponse = `{
	"structure": "multi_post_series",
	"summary": "two unrelated ideas",
	"recommendation": {"message": "pick segments", "suggested_action": "select_segments"},
	"segments": [
		{"title": "Cache work", "content": "first the cache work,", "suggested_type": "post", "order": 1},
		{"title": "Hiring", "content": "then the hiring update.", "suggested_type": "post", "order": 2}
	]
}`

// stubClient returns a canned response, erroring when the user prompt
// contains failOn. The mutex keeps it safe under fan-out.
type stubClient struct {
	mu             sync.Mutex
	response       string
	failOn         string
	lastUserPrompt string
}

func (s *stubClient) Complete(_ context.Context, req ai.CompletionRequest) (string, error) {
	s.mu.Lock()
	s.lastUserPrompt = req.UserPrompt
	s.mu.Unlock()
	if s.failOn != "" && strings.Contains(req.UserPrompt, s.failOn) {
		return "", errors.New("simulated completion failure")
	}
	return s.response, nil
}

// classifierStub serves segmentation, analysis, and style fingerprint calls,
// keyed on the system prompt, and counts them.
type classifierStub struct {
	mu                sync.Mutex
	structureResponse string
	segmentationCalls int
	analysisCalls     int
}

func (s *classifierStub) Complete(_ context.Context, req ai.CompletionRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case strings.Contains(req.SystemPrompt, "fingerprint"):
		return fingerprintResponse, nil
	case strings.Contains(req.SystemPrompt, "split spoken-word transcripts"):
		s.segmentationCalls++
		if s.structureResponse != "" {
			return s.structureResponse, nil
		}
		return structureResponse, nil
	default:
		s.analysisCalls++
		return analysisResponse, nil
	}
}

type stubRepo struct {
	settings     *entities.VoiceSettings
	examples     []entities.VoiceExample
	inspirations []entities.InspirationRecord
}

func (r *stubRepo) GetSettings(_ context.Context, userID uuid.UUID, voiceType string) (*entities.VoiceSettings, error) {
	if r.settings == nil {
		r.settings = entities.NewVoiceSettings(userID, voiceType)
	}
	return r.settings, nil
}

func (r *stubRepo) UpdateSettings(_ context.Context, settings *entities.VoiceSettings) error {
	r.settings = settings
	return nil
}

func (r *stubRepo) ListExamples(_ context.Context, _ uuid.UUID, _ string) ([]entities.VoiceExample, error) {
	return r.examples, nil
}

func (r *stubRepo) ListInspirations(_ context.Context, _ uuid.UUID, _ string) ([]entities.InspirationRecord, error) {
	return r.inspirations, nil
}

func (r *stubRepo) GetInspirationsByIDs(_ context.Context, _ uuid.UUID, ids []uuid.UUID) ([]entities.InspirationRecord, error) {
	var out []entities.InspirationRecord
	for _, rec := range r.inspirations {
		for _, id := range ids {
			if rec.ID == id {
				out = append(out, rec)
			}
		}
	}
	return out, nil
}

func newOrchestrator(generationClient ai.CompletionClient, repo *stubRepo) (*Orchestrator, *classifierStub) {
	cfg := &config.PipelineConfig{
		ShortTranscriptThreshold: 200,
		StyleMaxTokens:           500,
		GenerationTimeoutSeconds: 5,
	}
	logger := zap.NewNop()
	estimator := tokens.NewCharEstimator()
	lib := framework.NewLibrary()
	classifier := &classifierStub{}

	return NewOrchestrator(
		segmenter.New(classifier, cfg, logger),
		analyzer.New(classifier, lib, logger),
		lib,
		prompt.NewAssembler(estimator, logger),
		style.NewExtractor(classifier, nil, logger),
		repo,
		generationClient,
		estimator,
		cfg,
		logger,
	), classifier
}

func postRequest() *Request {
	return &Request{
		UserID:     uuid.New(),
		VoiceType:  "builder",
		SourceText: "shipped the cache layer today, deploys went from 20 minutes to 4",
		DraftType:  entities.DraftTypePost,
		Mode:       entities.ModePost,
	}
}

func TestGenerate_Post(t *testing.T) {
	client := &stubClient{response: `{"text": "Deploys went from 20 minutes to 4. The fix was boring: cache the layers."}`}
	o, _ := newOrchestrator(client, &stubRepo{})

	result, err := o.Generate(context.Background(), postRequest())
	require.NoError(t, err)

	assert.Equal(t, entities.DraftTypePost, result.Draft.Type)
	assert.NotEmpty(t, result.Draft.Text)
	assert.Empty(t, result.Draft.Tweets)
	assert.Empty(t, result.Draft.StyleWarnings)
	require.NotNil(t, result.Analysis)
	require.NotNil(t, result.Prompt)
	assert.Greater(t, result.Prompt.TotalTokens, 0)
}

func TestGenerate_ThreadRejectsPostShape(t *testing.T) {
	// A thread request answered with a post shape parses cleanly but fails
	// shape validation.
	client := &stubClient{response: `{"text": "a single post where a thread was asked for"}`}
	o, _ := newOrchestrator(client, &stubRepo{})

	req := postRequest()
	req.DraftType = entities.DraftTypeThread

	_, err := o.Generate(context.Background(), req)
	require.Error(t, err)

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_GENERATION, appErr.Code)
}

func TestGenerate_ThreadAcceptsTweets(t *testing.T) {
	client := &stubClient{response: `{"tweets": ["one", "two", "three"]}`}
	o, _ := newOrchestrator(client, &stubRepo{})

	req := postRequest()
	req.DraftType = entities.DraftTypeThread

	result, err := o.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, entities.DraftTypeThread, result.Draft.Type)
	assert.Equal(t, []string{"one", "two", "three"}, result.Draft.Tweets)
}

func TestGenerate_EmptySource(t *testing.T) {
	o, _ := newOrchestrator(&stubClient{response: `{"text": "x"}`}, &stubRepo{})

	req := postRequest()
	req.SourceText = "   "

	_, err := o.Generate(context.Background(), req)
	require.Error(t, err)

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_VALIDATION, appErr.Code)
}

func TestGenerate_FlagsGuardrails(t *testing.T) {
	client := &stubClient{response: `{"text": "This tool is a game-changer that will unlock your crypto potential"}`}
	repo := &stubRepo{}
	o, _ := newOrchestrator(client, repo)

	req := postRequest()
	settings, _ := repo.GetSettings(context.Background(), req.UserID, req.VoiceType)
	settings.AvoidWords = []string{"crypto"}

	result, err := o.Generate(context.Background(), req)
	require.NoError(t, err, "guardrail hits warn, they never reject the draft")

	assert.Contains(t, result.Draft.StyleWarnings, `contains banned word "game-changer"`)
	assert.Contains(t, result.Draft.StyleWarnings, `contains banned word "unlock"`)
	assert.Contains(t, result.Draft.StyleWarnings, `contains avoided word "crypto"`)
	assert.NotEmpty(t, result.Draft.Text, "draft text is returned untouched")
}

func TestGenerateSeries_SiblingIsolation(t *testing.T) {
	// The segment whose content triggers a completion failure fails alone;
	// its siblings still produce drafts.
	client := &stubClient{
		response: `{"text": "a solid draft"}`,
		failOn:   "poison segment",
	}
	o, _ := newOrchestrator(client, &stubRepo{})

	segments := []entities.TranscriptSegment{
		{ID: "seg-1", Content: "a fine first segment about deploys"},
		{ID: "seg-2", Content: "poison segment that breaks completion"},
		{ID: "seg-3", Content: "a fine third segment about caching"},
	}

	results := o.GenerateSeries(context.Background(), postRequest(), segments)
	require.Len(t, results, 3)

	assert.Equal(t, "seg-1", results[0].SegmentID)
	assert.Empty(t, results[0].Err)
	require.NotNil(t, results[0].Draft)

	assert.Equal(t, "seg-2", results[1].SegmentID)
	assert.NotEmpty(t, results[1].Err)
	assert.Nil(t, results[1].Draft)

	assert.Equal(t, "seg-3", results[2].SegmentID)
	assert.Empty(t, results[2].Err)
	require.NotNil(t, results[2].Draft)
}

func TestGenerate_StyleReferenceOverBudgetIsDropped(t *testing.T) {
	client := &stubClient{response: `{"text": "draft"}`}
	repo := &stubRepo{}
	o, _ := newOrchestrator(client, repo)
	// A one-token budget no aggregate can satisfy.
	o.cfg.StyleMaxTokens = 1

	rec := entities.InspirationRecord{ID: uuid.New(), ContentText: "an inspiring reference post"}
	repo.inspirations = []entities.InspirationRecord{rec}

	req := postRequest()
	req.StyleReference = &StyleReference{
		InspirationIDs: []uuid.UUID{rec.ID},
		ApplyAs:        entities.ApplyVoiceAndFormat,
	}

	result, err := o.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.NotContains(t, result.Prompt.SystemPrompt, "VOICE REFERENCE",
		"over-budget style block is dropped whole")
}

func TestGenerate_LongTranscriptIsSegmented(t *testing.T) {
	client := &stubClient{response: `{"text": "draft"}`}
	o, classifier := newOrchestrator(client, &stubRepo{})

	req := postRequest()
	req.SourceText = strings.Repeat("talked about the cache layer and then the deploy pipeline. ", 20)

	result, err := o.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, classifier.segmentationCalls,
		"input above the short threshold goes through segmentation")
	assert.Equal(t, 1, classifier.analysisCalls)
	require.NotNil(t, result.Structure)
	require.Len(t, result.Structure.Segments, 1)
	assert.Contains(t, client.lastUserPrompt, result.Structure.Segments[0].Content,
		"a single classified segment becomes the drafting source")
}

func TestGenerate_ShortInputSkipsSegmentationCall(t *testing.T) {
	client := &stubClient{response: `{"text": "draft"}`}
	o, classifier := newOrchestrator(client, &stubRepo{})

	result, err := o.Generate(context.Background(), postRequest())
	require.NoError(t, err)

	assert.Zero(t, classifier.segmentationCalls,
		"short input resolves to a single segment without a classifier call")
	require.NotNil(t, result.Structure)
	require.Len(t, result.Structure.Segments, 1)
}

func TestGenerate_MultiIdeaTranscriptDraftsFromFullText(t *testing.T) {
	client := &stubClient{response: `{"text": "draft"}`}
	o, classifier := newOrchestrator(client, &stubRepo{})
	classifier.structureResponse = multiStructureResponse

	req := postRequest()
	req.SourceText = strings.Repeat("first the cache work, then the hiring update. ", 10)

	result, err := o.Generate(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, result.Structure)
	assert.Len(t, result.Structure.Segments, 2)
	assert.Contains(t, client.lastUserPrompt, req.SourceText,
		"a multi-idea transcript is drafted whole, the structure travels back for re-issue")
}

func TestGenerate_PreselectedSegmentSkipsSegmentation(t *testing.T) {
	client := &stubClient{response: `{"text": "draft"}`}
	o, classifier := newOrchestrator(client, &stubRepo{})

	req := postRequest()
	req.Segment = &entities.TranscriptSegment{
		ID:      "seg-1",
		Content: strings.Repeat("a long pre-selected segment about deploy caching. ", 10),
	}

	result, err := o.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Zero(t, classifier.segmentationCalls,
		"a pre-selected segment has already been through segmentation")
	assert.Nil(t, result.Structure)
	assert.Contains(t, client.lastUserPrompt, req.Segment.Content)
}
