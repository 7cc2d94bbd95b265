package style

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voicepost-team/voicepost/internal/domain/entities"
	"github.com/voicepost-team/voicepost/pkg/ai"
)

type stubClient struct {
	response string
	calls    int
}

func (s *stubClient) Complete(_ context.Context, _ ai.CompletionRequest) (string, error) {
	s.calls++
	return s.response, nil
}

type mapCache struct {
	items map[string]string
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[string]string)}
}

func (m *mapCache) Get(_ context.Context, key string) (string, bool) {
	v, ok := m.items[key]
	return v, ok
}

func (m *mapCache) Set(_ context.Context, key, value string, _ time.Duration) {
	m.items[key] = value
}

const fingerprintJSON = `{
	"voice": {
		"tone": ["direct", "wry"],
		"sentence_style": "short declaratives",
		"vocabulary": "plain technical",
		"perspective": "first person",
		"patterns": ["opens with a claim"],
		"signature_phrases": ["turns out"]
	},
	"format": {
		"structure": "hook then evidence",
		"length": 400,
		"line_break_usage": "single blank lines",
		"paragraph_style": "one to two sentences",
		"uses_lists": false,
		"opening_style": "cold open",
		"closing_style": "implication"
	}
}`

func TestExtractor_AnalyzeCachesByContent(t *testing.T) {
	client := &stubClient{response: fingerprintJSON}
	cache := newMapCache()
	e := NewExtractor(client, cache, zap.NewNop())

	first, err := e.Analyze(context.Background(), "reference post body")
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)

	second, err := e.Analyze(context.Background(), "reference post body")
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls, "second call must hit the cache")
	assert.Equal(t, first, second)

	_, err = e.Analyze(context.Background(), "a different post")
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls, "different content is a different key")
}

func TestExtractor_EmptyContent(t *testing.T) {
	e := NewExtractor(&stubClient{response: fingerprintJSON}, nil, zap.NewNop())

	_, err := e.Analyze(context.Background(), "  ")
	assert.Error(t, err)
}

func makeFingerprints() []entities.StyleFingerprint {
	return []entities.StyleFingerprint{
		{
			Voice: entities.VoiceFingerprint{
				Tone:             []string{"direct", "wry"},
				SentenceStyle:    "short declaratives",
				Vocabulary:       "plain technical",
				Perspective:      "first person",
				Patterns:         []string{"opens with a claim"},
				SignaturePhrases: []string{"turns out"},
			},
			Format: entities.FormatFingerprint{
				Structure:      "hook then evidence",
				Length:         400,
				LineBreakUsage: "single blank lines",
				ParagraphStyle: "one to two sentences",
				OpeningStyle:   "cold open",
				ClosingStyle:   "implication",
			},
		},
		{
			Voice: entities.VoiceFingerprint{
				Tone:             []string{"Direct", "earnest"},
				SentenceStyle:    "longer, winding",
				Perspective:      "first person",
				Patterns:         []string{"opens with a claim", "ends on a question"},
				SignaturePhrases: []string{"here's the thing"},
			},
			Format: entities.FormatFingerprint{
				Structure: "story arc",
				Length:    600,
				UsesLists: true,
			},
		},
	}
}

func TestAggregate_DedupesPreservingOrder(t *testing.T) {
	out := Aggregate(makeFingerprints(), entities.ApplyVoiceOnly)

	assert.Contains(t, out, "Tone: direct, wry, earnest")
	assert.Contains(t, out, "Sentences: short declaratives", "first non-empty value wins")
	assert.Contains(t, out, "Perspective: first person")
	assert.Contains(t, out, "opens with a claim; ends on a question")
	assert.NotContains(t, out, "FORMAT REFERENCE")
}

func TestAggregate_FormatAveragesLength(t *testing.T) {
	out := Aggregate(makeFingerprints(), entities.ApplyFormatOnly)

	assert.Contains(t, out, "Target length: around 500 characters")
	assert.Contains(t, out, "Structure: hook then evidence")
	assert.Contains(t, out, "Lists: uses lists where they help")
	assert.NotContains(t, out, "VOICE REFERENCE")
}

func TestAggregate_VoiceAndFormat(t *testing.T) {
	out := Aggregate(makeFingerprints(), entities.ApplyVoiceAndFormat)

	assert.Contains(t, out, "VOICE REFERENCE:")
	assert.Contains(t, out, "FORMAT REFERENCE:")
}

func TestAggregate_Deterministic(t *testing.T) {
	fps := makeFingerprints()
	first := Aggregate(fps, entities.ApplyVoiceAndFormat)
	second := Aggregate(fps, entities.ApplyVoiceAndFormat)
	assert.Equal(t, first, second)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Equal(t, "", Aggregate(nil, entities.ApplyVoiceAndFormat))
	assert.Equal(t, "", Aggregate([]entities.StyleFingerprint{{}}, entities.ApplyVoiceAndFormat))
}

func TestAggregate_CapsSignaturePhrases(t *testing.T) {
	fps := []entities.StyleFingerprint{
		{Voice: entities.VoiceFingerprint{SignaturePhrases: []string{"p1", "p2", "p3", "p4"}}},
		{Voice: entities.VoiceFingerprint{SignaturePhrases: []string{"p5", "p6", "p7"}}},
	}
	out := Aggregate(fps, entities.ApplyVoiceOnly)

	assert.Contains(t, out, "p5")
	assert.NotContains(t, out, "p6")
}
