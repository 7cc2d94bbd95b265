package segmenter

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/voicepost-team/voicepost/errors"
	"github.com/voicepost-team/voicepost/internal/domain/entities"
	"github.com/voicepost-team/voicepost/pkg/ai"
	"github.com/voicepost-team/voicepost/pkg/config"
)

type stubClient struct {
	response string
	err      error
	calls    int
}

func (s *stubClient) Complete(_ context.Context, _ ai.CompletionRequest) (string, error) {
	s.calls++
	return s.response, s.err
}

func newSegmenter(client ai.CompletionClient) *Segmenter {
	cfg := &config.PipelineConfig{ShortTranscriptThreshold: 200}
	return New(client, cfg, zap.NewNop())
}

func TestStructure_EmptyTranscript(t *testing.T) {
	client := &stubClient{}
	s := newSegmenter(client)

	_, err := s.Structure(context.Background(), "   \n\t ")
	require.Error(t, err)

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_VALIDATION, appErr.Code)
	assert.Equal(t, 0, client.calls)
}

func TestStructure_ShortInputBypassesClassifier(t *testing.T) {
	client := &stubClient{}
	s := newSegmenter(client)

	input := "Quick thought about deploy scripts today."
	result, err := s.Structure(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 0, client.calls, "short input must not call the classifier")
	assert.Equal(t, entities.StructureSingleIdea, result.Structure)
	require.Len(t, result.Segments, 1)
	assert.Equal(t, input, result.Segments[0].Content, "content must be the input verbatim")
	assert.NotEmpty(t, result.Segments[0].ID)
	assert.Equal(t, entities.ActionProceedDirectly, result.Recommendation.SuggestedAction)
}

func TestStructure_ClassifiesLongInput(t *testing.T) {
	transcript := strings.Repeat("First I want to talk about caching. ", 5) +
		"Anyway, next thing, " + strings.Repeat("the deploy pipeline keeps breaking. ", 5)

	client := &stubClient{response: `{
		"structure": "idea_dump",
		"summary": "caching and deploys",
		"recommendation": {"message": "pick one", "suggested_action": "select_segments"},
		"segments": [
			{"title": "Caching", "content": "First I want to talk about caching.", "suggested_type": "post", "relationship": "standalone", "estimated_depth": "medium", "key_topics": ["caching"], "order": 1},
			{"title": "Deploys", "content": "the deploy pipeline keeps breaking.", "suggested_type": "post", "relationship": "standalone", "estimated_depth": "shallow", "key_topics": ["deploys"], "order": 2}
		]
	}`}
	s := newSegmenter(client)

	result, err := s.Structure(context.Background(), transcript)
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, entities.StructureIdeaDump, result.Structure)
	require.Len(t, result.Segments, 2)
	assert.NotEqual(t, result.Segments[0].ID, result.Segments[1].ID)
	assert.Equal(t, 1, result.Segments[0].Order)
	assert.Equal(t, 2, result.Segments[1].Order)
	assert.Equal(t, entities.ActionSelectSegments, result.Recommendation.SuggestedAction)
}

func TestStructure_MalformedClassifierOutput(t *testing.T) {
	long := strings.Repeat("words and more words about something real ", 10)

	tests := []struct {
		name     string
		response string
	}{
		{"not json", "sorry, I cannot help with that"},
		{"unknown structure", `{"structure": "mystery", "segments": [{"content": "x"}]}`},
		{"no segments", `{"structure": "single_idea", "segments": []}`},
		{"empty segment content", `{"structure": "single_idea", "segments": [{"title": "a", "content": "  "}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSegmenter(&stubClient{response: tt.response})

			_, err := s.Structure(context.Background(), long)
			require.Error(t, err)

			var appErr apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.ErrorCode_INVALID_ANALYSIS, appErr.Code)
			assert.Equal(t, "segmentation", appErr.Details["stage"])
		})
	}
}

func TestStructure_NonVerbatimSegmentIsNotFatal(t *testing.T) {
	transcript := strings.Repeat("talking about one thing at length here ", 10)

	client := &stubClient{response: `{
		"structure": "single_idea",
		"summary": "one thing",
		"recommendation": {"message": "go", "suggested_action": "proceed_directly"},
		"segments": [
			{"title": "Paraphrased", "content": "A tidy summary the model wrote itself.", "suggested_type": "post", "relationship": "standalone", "estimated_depth": "shallow", "order": 1}
		]
	}`}
	s := newSegmenter(client)

	result, err := s.Structure(context.Background(), transcript)
	require.NoError(t, err, "conformance violations warn, they do not fail")
	require.Len(t, result.Segments, 1)
}
