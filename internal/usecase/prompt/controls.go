package prompt

import (
	"fmt"
	"strings"

	"github.com/voicepost-team/voicepost/internal/domain/entities"
)

// Slider band boundaries. 30 and 70 belong to the middle band.
const (
	bandLowMax  = 30
	bandHighMin = 70
)

type band int

const (
	bandLow band = iota
	bandMid
	bandHigh
)

func sliderBand(value int) band {
	switch {
	case value < bandLowMax:
		return bandLow
	case value > bandHighMin:
		return bandHigh
	default:
		return bandMid
	}
}

// renderControls maps settings to instruction sentences. Iteration order is
// fixed (sliders, then categorical modes) and each value maps to exactly one
// sentence, so identical settings always render identically.
func renderControls(settings *entities.VoiceSettings) string {
	lines := []string{
		sliderSentence(settings.OptimizationAuthenticity, authenticitySentences),
		sliderSentence(settings.ToneFormalCasual, toneSentences),
		sliderSentence(settings.EnergyCalmPunchy, energySentences),
		sliderSentence(settings.StanceNeutralOpinionated, stanceSentences),
		modeSentence(settings.LengthMode, lengthSentences),
		modeSentence(settings.DirectnessMode, directnessSentences),
		modeSentence(settings.HumorMode, humorSentences),
		modeSentence(settings.EmojiMode, emojiSentences),
		modeSentence(settings.QuestionRate, questionSentences),
		modeSentence(settings.DisagreementMode, disagreementSentences),
	}

	var sb strings.Builder
	sb.WriteString("CONTROLS:\n")
	for _, line := range lines {
		if line == "" {
			continue
		}
		sb.WriteString("- ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	for _, w := range settings.AvoidWords {
		if strings.TrimSpace(w) != "" {
			sb.WriteString(fmt.Sprintf("- Never use the word or phrase %q.\n", w))
		}
	}
	for _, t := range settings.AvoidTopics {
		if strings.TrimSpace(t) != "" {
			sb.WriteString(fmt.Sprintf("- Do not bring up the topic %q.\n", t))
		}
	}
	for _, r := range settings.CustomRules {
		if strings.TrimSpace(r) != "" {
			sb.WriteString("- ")
			sb.WriteString(r)
			sb.WriteString("\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

func sliderSentence(value int, table [3]string) string {
	return table[sliderBand(value)]
}

func modeSentence(mode string, table map[string]string) string {
	return table[mode]
}

var authenticitySentences = [3]string{
	"Write exactly how this person talks, rough edges included, even if it costs reach.",
	"Balance the person's natural voice with readability.",
	"Polish for maximum clarity and engagement while staying recognizably this person.",
}

var toneSentences = [3]string{
	"Keep the register formal and composed.",
	"Keep the register conversational but considered.",
	"Keep the register casual, like a message to a friend.",
}

var energySentences = [3]string{
	"Keep the energy calm and even.",
	"Keep moderate energy with occasional emphasis.",
	"Keep the energy punchy, with short sentences and momentum.",
}

var stanceSentences = [3]string{
	"Present information neutrally without taking sides.",
	"Take a position when the material supports one.",
	"Lead with a strong opinion and defend it.",
}

var lengthSentences = map[string]string{
	entities.LengthModeShort:  "Keep it short: a few lines at most.",
	entities.LengthModeMedium: "Medium length: a tight paragraph or two.",
	entities.LengthModeLong:   "Length is allowed to run long when the material earns it.",
}

var directnessSentences = map[string]string{
	entities.DirectnessModeSoft:   "Soften claims with hedges where honesty requires it.",
	entities.DirectnessModeDirect: "Say things directly without hedging.",
	entities.DirectnessModeBlunt:  "Be blunt, even at the cost of politeness.",
}

var humorSentences = map[string]string{
	entities.HumorModeNone: "No humor.",
	entities.HumorModeDry:  "Dry humor is allowed when it lands naturally.",
	entities.HumorModeOpen: "Humor is welcome wherever it fits.",
}

var emojiSentences = map[string]string{
	entities.EmojiModeNever:      "Never use emoji.",
	entities.EmojiModeSparing:    "At most one emoji, and only if it earns its place.",
	entities.EmojiModeExpressive: "Emoji are welcome where they add tone.",
}

var questionSentences = map[string]string{
	entities.QuestionRateRare:       "Rarely end with a question.",
	entities.QuestionRateOccasional: "An occasional closing question is fine.",
	entities.QuestionRateFrequent:   "Prefer ending with a question that invites replies.",
}

var disagreementSentences = map[string]string{
	entities.DisagreementModeAvoid:    "Avoid picking fights with prevailing opinions.",
	entities.DisagreementModeMeasured: "Disagree when warranted, with reasoning.",
	entities.DisagreementModeWilling:  "Willingly challenge popular takes head on.",
}
