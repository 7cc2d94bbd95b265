package prompt

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voicepost-team/voicepost/internal/domain/entities"
	"github.com/voicepost-team/voicepost/pkg/tokens"
)

func newAssembler() *Assembler {
	return NewAssembler(tokens.NewCharEstimator(), zap.NewNop())
}

func defaultSettings() *entities.VoiceSettings {
	return entities.NewVoiceSettings(uuid.New(), "builder")
}

func intPtr(v int) *int { return &v }

func example(content string, mode entities.GenerationMode, score float64) entities.VoiceExample {
	return entities.VoiceExample{
		ID:              uuid.New(),
		ContentText:     content,
		ContentType:     mode,
		EngagementScore: score,
	}
}

func TestAssemble_BudgetPacksGreedyAtomic(t *testing.T) {
	// Ten 600-char examples at 4 chars per token cost 150 tokens each.
	// A 400-token budget fits exactly two; the third rejection ends packing.
	settings := defaultSettings()
	settings.MaxExampleTokens = 400

	var examples []entities.VoiceExample
	for i := 0; i < 10; i++ {
		examples = append(examples, example(strings.Repeat("x", 600), entities.ModePost, float64(100-i)))
	}

	result := newAssembler().Assemble("BASE", settings, examples, nil, entities.ModePost)

	assert.Equal(t, 2, result.ExamplesIncluded)
	assert.Equal(t, 8, result.ExamplesOmitted)
	assert.Equal(t, 300, result.Breakdown.Examples)
}

func TestAssemble_GreedyStopsAtFirstRejection(t *testing.T) {
	// 150 + 150 fills 300 of 350; the 150-token third is rejected and the
	// 10-token fourth is never considered, even though it would fit.
	settings := defaultSettings()
	settings.MaxExampleTokens = 350

	examples := []entities.VoiceExample{
		example(strings.Repeat("a", 600), entities.ModePost, 90),
		example(strings.Repeat("b", 600), entities.ModePost, 80),
		example(strings.Repeat("c", 600), entities.ModePost, 70),
		example(strings.Repeat("d", 40), entities.ModePost, 60),
	}

	result := newAssembler().Assemble("BASE", settings, examples, nil, entities.ModePost)

	assert.Equal(t, 2, result.ExamplesIncluded)
	assert.Equal(t, 2, result.ExamplesOmitted)
	assert.NotContains(t, result.SystemPrompt, strings.Repeat("d", 40))
}

func TestAssemble_PinnedExamplesBeatEngagement(t *testing.T) {
	settings := defaultSettings()
	settings.MaxExampleTokens = 200

	pinned := example("pinned but low engagement", entities.ModePost, 1)
	pinned.PinnedRank = intPtr(1)
	hot := example("unpinned viral post", entities.ModePost, 9000)

	result := newAssembler().Assemble("BASE", settings, []entities.VoiceExample{hot, pinned}, nil, entities.ModePost)

	require.Equal(t, 2, result.ExamplesIncluded)
	pinnedIdx := strings.Index(result.SystemPrompt, "pinned but low engagement")
	hotIdx := strings.Index(result.SystemPrompt, "unpinned viral post")
	assert.Less(t, pinnedIdx, hotIdx, "pinned examples come first")
}

func TestAssemble_FiltersExcludedAndWrongMode(t *testing.T) {
	settings := defaultSettings()

	excluded := example("excluded content", entities.ModePost, 50)
	excluded.IsExcluded = true
	reply := example("reply content", entities.ModeReply, 50)
	post := example("post content", entities.ModePost, 50)

	result := newAssembler().Assemble("BASE", settings,
		[]entities.VoiceExample{excluded, reply, post}, nil, entities.ModePost)

	assert.Equal(t, 1, result.ExamplesIncluded)
	assert.Contains(t, result.SystemPrompt, "post content")
	assert.NotContains(t, result.SystemPrompt, "excluded content")
	assert.NotContains(t, result.SystemPrompt, "reply content")
}

func TestAssemble_DropsEmptyInspirationsBeforeRanking(t *testing.T) {
	settings := defaultSettings()

	inspirations := []entities.InspirationRecord{
		{ID: uuid.New(), ContentText: "   ", RelevanceScore: 99},
		{ID: uuid.New(), ContentText: "", RelevanceScore: 98},
		{ID: uuid.New(), ContentText: "real inspiration", RelevanceScore: 1},
	}

	result := newAssembler().Assemble("BASE", settings, nil, inspirations, entities.ModePost)

	assert.Equal(t, 1, result.InspirationsIncluded)
	assert.Equal(t, 0, result.InspirationsOmitted, "sentinels never count as omitted")
	assert.Contains(t, result.SystemPrompt, "real inspiration")
}

func TestAssemble_PinnedInspirationsFirst(t *testing.T) {
	settings := defaultSettings()

	second := entities.InspirationRecord{ID: uuid.New(), ContentText: "pinned rank two", IsPinned: true, PinnedRank: intPtr(2)}
	first := entities.InspirationRecord{ID: uuid.New(), ContentText: "pinned rank one", IsPinned: true, PinnedRank: intPtr(1)}
	relevant := entities.InspirationRecord{ID: uuid.New(), ContentText: "merely relevant", RelevanceScore: 1000}

	result := newAssembler().Assemble("BASE", settings,
		nil, []entities.InspirationRecord{relevant, second, first}, entities.ModePost)

	require.Equal(t, 3, result.InspirationsIncluded)
	oneIdx := strings.Index(result.SystemPrompt, "pinned rank one")
	twoIdx := strings.Index(result.SystemPrompt, "pinned rank two")
	relIdx := strings.Index(result.SystemPrompt, "merely relevant")
	assert.Less(t, oneIdx, twoIdx)
	assert.Less(t, twoIdx, relIdx)
}

func TestAssemble_ByteIdentical(t *testing.T) {
	settings := defaultSettings()
	settings.SpecialNotes = strPtr("Always mention the changelog.")
	examples := []entities.VoiceExample{example("stable example", entities.ModePost, 10)}
	inspirations := []entities.InspirationRecord{{ID: uuid.New(), ContentText: "stable inspiration"}}

	a := newAssembler()
	first := a.Assemble("BASE", settings, examples, inspirations, entities.ModePost)
	second := a.Assemble("BASE", settings, examples, inspirations, entities.ModePost)

	assert.Equal(t, first.SystemPrompt, second.SystemPrompt)
	assert.Equal(t, first, second)
}

func TestAssemble_EmptySectionsOmitted(t *testing.T) {
	settings := defaultSettings()

	result := newAssembler().Assemble("BASE", settings, nil, nil, entities.ModePost)

	assert.NotContains(t, result.SystemPrompt, "EXAMPLES OF THIS PERSON'S WRITING")
	assert.NotContains(t, result.SystemPrompt, "INSPIRATION")
	assert.NotContains(t, result.SystemPrompt, "SPECIAL NOTES")
	assert.NotContains(t, result.SystemPrompt, "\n\n\n", "no empty section gaps")
	assert.True(t, strings.HasPrefix(result.SystemPrompt, "BASE\n\nCONTROLS:"))
}

func TestAssemble_SpecialNotesVerbatim(t *testing.T) {
	settings := defaultSettings()
	settings.SpecialNotes = strPtr("Never mention competitors by name.")

	result := newAssembler().Assemble("BASE", settings, nil, nil, entities.ModePost)

	assert.Contains(t, result.SystemPrompt, "SPECIAL NOTES:\nNever mention competitors by name.")
}

func TestSliderBands(t *testing.T) {
	assert.Equal(t, bandLow, sliderBand(0))
	assert.Equal(t, bandLow, sliderBand(29))
	assert.Equal(t, bandMid, sliderBand(30))
	assert.Equal(t, bandMid, sliderBand(50))
	assert.Equal(t, bandMid, sliderBand(70))
	assert.Equal(t, bandHigh, sliderBand(71))
	assert.Equal(t, bandHigh, sliderBand(100))
}

func TestRenderControls_FixedSentences(t *testing.T) {
	settings := defaultSettings()
	settings.ToneFormalCasual = 85
	settings.LengthMode = entities.LengthModeShort
	settings.AvoidWords = []string{"synergy"}
	settings.CustomRules = []string{"Never start with a question."}

	out := renderControls(settings)

	assert.Contains(t, out, "Keep the register casual, like a message to a friend.")
	assert.Contains(t, out, "Keep it short: a few lines at most.")
	assert.Contains(t, out, `Never use the word or phrase "synergy".`)
	assert.Contains(t, out, "Never start with a question.")

	// Identical settings render identically.
	assert.Equal(t, out, renderControls(settings))
}

func strPtr(s string) *string { return &s }
