package style

import (
	"fmt"
	"strings"

	"github.com/voicepost-team/voicepost/internal/domain/entities"
)

const maxSignaturePhrases = 5

// Aggregate merges fingerprints into a single prompt block. It is a pure
// function: the same inputs always produce byte-identical output. List traits
// are deduplicated preserving first-seen order, singular traits take the
// first non-empty value, and Length is averaged. Missing fields are skipped
// silently; an aggregate over zero fingerprints is the empty string.
func Aggregate(fps []entities.StyleFingerprint, applyAs entities.StyleApplyAs) string {
	if len(fps) == 0 {
		return ""
	}

	var sections []string
	if applyAs == entities.ApplyVoiceAndFormat || applyAs == entities.ApplyVoiceOnly {
		if s := aggregateVoice(fps); s != "" {
			sections = append(sections, s)
		}
	}
	if applyAs == entities.ApplyVoiceAndFormat || applyAs == entities.ApplyFormatOnly {
		if s := aggregateFormat(fps); s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n\n")
}

func aggregateVoice(fps []entities.StyleFingerprint) string {
	var (
		tone       []string
		patterns   []string
		phrases    []string
		sentence   string
		vocabulary string
		persp      []string
	)
	for _, fp := range fps {
		tone = appendUnique(tone, fp.Voice.Tone...)
		patterns = appendUnique(patterns, fp.Voice.Patterns...)
		persp = appendUnique(persp, fp.Voice.Perspective)
		if sentence == "" {
			sentence = fp.Voice.SentenceStyle
		}
		if vocabulary == "" {
			vocabulary = fp.Voice.Vocabulary
		}
		for _, p := range fp.Voice.SignaturePhrases {
			if len(phrases) >= maxSignaturePhrases {
				break
			}
			phrases = appendUnique(phrases, p)
		}
	}

	var lines []string
	if len(tone) > 0 {
		lines = append(lines, "Tone: "+strings.Join(tone, ", "))
	}
	if sentence != "" {
		lines = append(lines, "Sentences: "+sentence)
	}
	if vocabulary != "" {
		lines = append(lines, "Vocabulary: "+vocabulary)
	}
	if len(persp) > 0 {
		lines = append(lines, "Perspective: "+strings.Join(persp, ", "))
	}
	if len(patterns) > 0 {
		lines = append(lines, "Patterns: "+strings.Join(patterns, "; "))
	}
	if len(phrases) > 0 {
		lines = append(lines, "Signature phrases: "+strings.Join(phrases, " | "))
	}
	if len(lines) == 0 {
		return ""
	}
	return "VOICE REFERENCE:\n" + strings.Join(lines, "\n")
}

func aggregateFormat(fps []entities.StyleFingerprint) string {
	var (
		structure  string
		lineBreaks string
		paragraphs string
		opening    string
		closing    string
		lengthSum  int
		lengthN    int
		usesLists  bool
	)
	for _, fp := range fps {
		if structure == "" {
			structure = fp.Format.Structure
		}
		if lineBreaks == "" {
			lineBreaks = fp.Format.LineBreakUsage
		}
		if paragraphs == "" {
			paragraphs = fp.Format.ParagraphStyle
		}
		if opening == "" {
			opening = fp.Format.OpeningStyle
		}
		if closing == "" {
			closing = fp.Format.ClosingStyle
		}
		if fp.Format.Length > 0 {
			lengthSum += fp.Format.Length
			lengthN++
		}
		usesLists = usesLists || fp.Format.UsesLists
	}

	var lines []string
	if structure != "" {
		lines = append(lines, "Structure: "+structure)
	}
	if lengthN > 0 {
		lines = append(lines, fmt.Sprintf("Target length: around %d characters", lengthSum/lengthN))
	}
	if lineBreaks != "" {
		lines = append(lines, "Line breaks: "+lineBreaks)
	}
	if paragraphs != "" {
		lines = append(lines, "Paragraphs: "+paragraphs)
	}
	if usesLists {
		lines = append(lines, "Lists: uses lists where they help")
	}
	if opening != "" {
		lines = append(lines, "Opening: "+opening)
	}
	if closing != "" {
		lines = append(lines, "Closing: "+closing)
	}
	if len(lines) == 0 {
		return ""
	}
	return "FORMAT REFERENCE:\n" + strings.Join(lines, "\n")
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		seen := false
		for _, existing := range dst {
			if strings.EqualFold(existing, v) {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, v)
		}
	}
	return dst
}
