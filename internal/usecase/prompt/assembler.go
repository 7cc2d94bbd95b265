// Package prompt renders voice settings, examples, and inspirations into a
// deterministic system prompt under per-section token budgets.
package prompt

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/voicepost-team/voicepost/internal/domain/entities"
	"github.com/voicepost-team/voicepost/pkg/tokens"
)

// Assembler builds system prompts. It performs no I/O and holds no state
// between calls; identical inputs produce byte-identical prompts.
type Assembler struct {
	estimator tokens.Estimator
	logger    *zap.Logger
}

// NewAssembler creates an Assembler
func NewAssembler(estimator tokens.Estimator, logger *zap.Logger) *Assembler {
	return &Assembler{estimator: estimator, logger: logger}
}

// Assemble renders the full system prompt. base is the caller-composed head
// section (principles, framework, optional style block). Sections are joined
// by blank lines and empty sections are omitted entirely.
func (a *Assembler) Assemble(
	base string,
	settings *entities.VoiceSettings,
	examples []entities.VoiceExample,
	inspirations []entities.InspirationRecord,
	mode entities.GenerationMode,
) *entities.AssembledPrompt {
	controls := renderControls(settings)
	notes := renderNotes(settings)

	exampleBlock, exampleTokens, exIncluded, exOmitted := a.packExamples(examples, mode, settings.MaxExampleTokens)
	inspBlock, inspTokens, inIncluded, inOmitted := a.packInspirations(inspirations, settings.MaxInspirationTokens)

	sections := make([]string, 0, 5)
	for _, s := range []string{base, controls, notes, exampleBlock, inspBlock} {
		if strings.TrimSpace(s) != "" {
			sections = append(sections, s)
		}
	}
	system := strings.Join(sections, "\n\n")

	result := &entities.AssembledPrompt{
		SystemPrompt: system,
		TotalTokens:  a.estimator.Estimate(system),
		Breakdown: entities.PromptBreakdown{
			Base:        a.estimator.Estimate(base),
			Controls:    a.estimator.Estimate(controls),
			Examples:    exampleTokens,
			Inspiration: inspTokens,
		},
		ExamplesIncluded:     exIncluded,
		ExamplesOmitted:      exOmitted,
		InspirationsIncluded: inIncluded,
		InspirationsOmitted:  inOmitted,
	}

	if a.logger != nil {
		a.logger.Debug("prompt assembled",
			zap.Int("total_tokens", result.TotalTokens),
			zap.Int("examples_included", exIncluded),
			zap.Int("examples_omitted", exOmitted),
			zap.Int("inspirations_included", inIncluded),
			zap.Int("inspirations_omitted", inOmitted),
		)
	}
	return result
}

func renderNotes(settings *entities.VoiceSettings) string {
	if settings.SpecialNotes == nil || strings.TrimSpace(*settings.SpecialNotes) == "" {
		return ""
	}
	return "SPECIAL NOTES:\n" + *settings.SpecialNotes
}

// packExamples selects eligible examples in priority order under the token
// budget. Packing is greedy and atomic: the first example that does not fit
// whole stops selection, even if a later, smaller one would fit. Budget cost
// is the content text alone, not the rendered wrapper.
func (a *Assembler) packExamples(examples []entities.VoiceExample, mode entities.GenerationMode, budget int) (string, int, int, int) {
	eligible := make([]entities.VoiceExample, 0, len(examples))
	for _, ex := range examples {
		if ex.IsExcluded || ex.ContentType != mode {
			continue
		}
		eligible = append(eligible, ex)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		pi, pj := eligible[i].PinnedRank, eligible[j].PinnedRank
		if (pi != nil) != (pj != nil) {
			return pi != nil
		}
		if pi != nil && pj != nil && *pi != *pj {
			return *pi < *pj
		}
		return eligible[i].EngagementScore > eligible[j].EngagementScore
	})

	var (
		included []string
		used     int
	)
	for _, ex := range eligible {
		cost := a.estimator.Estimate(ex.ContentText)
		if used+cost > budget {
			break
		}
		used += cost
		included = append(included, ex.ContentText)
	}

	omitted := len(eligible) - len(included)
	if len(included) == 0 {
		return "", 0, 0, omitted
	}

	var sb strings.Builder
	sb.WriteString("EXAMPLES OF THIS PERSON'S WRITING:\n")
	for i, text := range included {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Example:\n")
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n"), used, len(included), omitted
}

// packInspirations mirrors packExamples for third-party inspiration content.
// Records with empty content are placeholders from upstream capture and are
// dropped before ranking, so they never consume budget or count as omitted.
func (a *Assembler) packInspirations(inspirations []entities.InspirationRecord, budget int) (string, int, int, int) {
	eligible := make([]entities.InspirationRecord, 0, len(inspirations))
	for _, in := range inspirations {
		if in.IsExcluded || strings.TrimSpace(in.ContentText) == "" {
			continue
		}
		eligible = append(eligible, in)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].IsPinned != eligible[j].IsPinned {
			return eligible[i].IsPinned
		}
		if eligible[i].IsPinned && eligible[j].IsPinned {
			pi, pj := eligible[i].PinnedRank, eligible[j].PinnedRank
			if (pi != nil) != (pj != nil) {
				return pi != nil
			}
			if pi != nil && pj != nil && *pi != *pj {
				return *pi < *pj
			}
		}
		return eligible[i].RelevanceScore > eligible[j].RelevanceScore
	})

	var (
		included []entities.InspirationRecord
		used     int
	)
	for _, in := range eligible {
		cost := a.estimator.Estimate(in.ContentText)
		if used+cost > budget {
			break
		}
		used += cost
		included = append(included, in)
	}

	omitted := len(eligible) - len(included)
	if len(included) == 0 {
		return "", 0, 0, omitted
	}

	var sb strings.Builder
	sb.WriteString("INSPIRATION (tone and approach reference, not content to copy):\n")
	for i, in := range included {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Reference:\n")
		sb.WriteString(in.ContentText)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n"), used, len(included), omitted
}
