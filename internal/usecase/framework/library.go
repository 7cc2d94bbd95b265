// Package framework holds the fixed structural templates content drafts are
// routed through, plus the always-applied base principles ruleset. The
// library is constructed explicitly at startup and injected; there is no
// package-level singleton.
package framework

import (
	"fmt"
	"strings"

	"github.com/voicepost-team/voicepost/internal/domain/entities"
)

// Library is an immutable key -> Framework lookup plus global house rules
type Library struct {
	frameworks     map[entities.FrameworkKey]entities.Framework
	basePrinciples string
	sourceGuidance string
	bannedWords    []string
}

// NewLibrary constructs the library with all five registered frameworks
func NewLibrary() *Library {
	lib := &Library{
		frameworks:     make(map[entities.FrameworkKey]entities.Framework, 5),
		basePrinciples: basePrinciples,
		sourceGuidance: sourceGuidance,
		bannedWords:    bannedWords,
	}
	for _, f := range registeredFrameworks {
		lib.frameworks[f.Key] = f
	}
	return lib
}

// Get returns the framework for key. Unknown keys are an error: the set of
// valid keys is closed and classifier output naming anything else is a
// contract violation.
func (l *Library) Get(key entities.FrameworkKey) (entities.Framework, error) {
	f, ok := l.frameworks[key]
	if !ok {
		return entities.Framework{}, fmt.Errorf("unknown framework key %q", key)
	}
	return f, nil
}

// Has reports whether key is registered
func (l *Library) Has(key entities.FrameworkKey) bool {
	_, ok := l.frameworks[key]
	return ok
}

// Keys returns the registered framework keys in registration order
func (l *Library) Keys() []entities.FrameworkKey {
	keys := make([]entities.FrameworkKey, 0, len(registeredFrameworks))
	for _, f := range registeredFrameworks {
		keys = append(keys, f.Key)
	}
	return keys
}

// BasePrinciples returns the global house-style ruleset. It is concatenated
// ahead of whichever framework is selected and is never part of
// framework-specific data.
func (l *Library) BasePrinciples() string {
	return l.basePrinciples
}

// SourceGuidance returns the rules for staying faithful to the transcript
func (l *Library) SourceGuidance() string {
	return l.sourceGuidance
}

// BannedWords returns the global banned-word list used for post-generation
// guardrail flagging.
func (l *Library) BannedWords() []string {
	out := make([]string, len(l.bannedWords))
	copy(out, l.bannedWords)
	return out
}

// Render formats a framework as a prompt block
func (l *Library) Render(f entities.Framework) string {
	var sb strings.Builder
	sb.WriteString("FRAMEWORK: ")
	sb.WriteString(string(f.Key))
	sb.WriteString("\n")
	sb.WriteString("Purpose: ")
	sb.WriteString(f.Purpose)
	sb.WriteString("\n")
	sb.WriteString("Structure:\n")
	for i, s := range f.SectionStructure {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, s))
	}
	sb.WriteString("Format: ")
	sb.WriteString(f.FormatGuidance)
	sb.WriteString("\n")
	if len(f.ExampleSkeletons) > 0 {
		sb.WriteString("Skeletons:\n")
		for _, s := range f.ExampleSkeletons {
			sb.WriteString("- ")
			sb.WriteString(s)
			sb.WriteString("\n")
		}
	}
	if len(f.SignalCheckCriteria) > 0 {
		sb.WriteString("Before finishing, check:\n")
		for _, s := range f.SignalCheckCriteria {
			sb.WriteString("- ")
			sb.WriteString(s)
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

var registeredFrameworks = []entities.Framework{
	{
		Key:     entities.FrameworkInsightDrop,
		Purpose: "Short, high-frequency observations that land one sharp idea fast",
		SectionStructure: []string{
			"Hook: the observation itself, stated plainly",
			"Body: one or two lines of evidence or context from the source",
			"Close: the implication, or nothing at all",
		},
		FormatGuidance: "1-4 short lines. No preamble. The first line must stand alone.",
		ExampleSkeletons: []string{
			"Most people think X. After doing Y, I think Z.",
			"X changed when I stopped doing Y.",
		},
		SignalCheckCriteria: []string{
			"Would the first line survive as the whole post?",
			"Is there exactly one idea?",
		},
	},
	{
		Key:     entities.FrameworkBuildUpdate,
		Purpose: "Progress narrative: what was built, what fought back, what was learned",
		SectionStructure: []string{
			"Hook: what shipped or moved",
			"Friction: the thing that did not go to plan",
			"Lesson: what changed in the approach",
			"Close: what is next, concretely",
		},
		FormatGuidance: "Short paragraphs, one per section. Keep real numbers and tool names from the source.",
		ExampleSkeletons: []string{
			"Shipped X today. Y broke twice before it worked. Turns out Z.",
		},
		SignalCheckCriteria: []string{
			"Does the friction section name something specific?",
			"Are the numbers from the source preserved, not rounded away?",
		},
	},
	{
		Key:     entities.FrameworkTacticalGuide,
		Purpose: "Problem to steps to result, reusable by the reader",
		SectionStructure: []string{
			"Problem: the situation the reader recognizes",
			"Steps: 3-5 numbered, each one actionable",
			"Result: what the steps produced, measured if possible",
		},
		FormatGuidance: "Numbered list for the steps. Each step starts with a verb.",
		ExampleSkeletons: []string{
			"X was costing me Y. Here is what fixed it: 1... 2... 3... Result: Z.",
		},
		SignalCheckCriteria: []string{
			"Could a reader execute each step without asking a question?",
			"Is the result stated, not implied?",
		},
	},
	{
		Key:     entities.FrameworkOpinion,
		Purpose: "Claim, reasoning, nuance - a defensible position, not a rant",
		SectionStructure: []string{
			"Claim: the position, stated without hedging",
			"Reasoning: why, grounded in the source material",
			"Nuance: where the claim stops being true",
		},
		FormatGuidance: "Claim first. Nuance last and short - it qualifies, it does not retract.",
		ExampleSkeletons: []string{
			"X is overrated. Here's why... That said, X still wins when Y.",
		},
		SignalCheckCriteria: []string{
			"Is the claim falsifiable?",
			"Does the nuance add a boundary rather than an apology?",
		},
	},
	{
		Key:     entities.FrameworkThreadDeepDive,
		Purpose: "Multi-post exploration: hook, context, value posts, example, close",
		SectionStructure: []string{
			"Post 1 - Hook: why the reader should stay for the thread",
			"Post 2 - Context: the setup in one post",
			"Posts 3..N - Value: one idea per post, 3-8 posts total",
			"Second-to-last - Example: one concrete case worked through",
			"Last - Close: takeaway plus a reason to respond",
		},
		FormatGuidance: "Each post must stand alone out of order. 3-8 posts. No numbering prefixes like 1/7.",
		ExampleSkeletons: []string{
			"Hook -> context -> three lessons -> one worked example -> close.",
		},
		SignalCheckCriteria: []string{
			"Does every post carry weight on its own?",
			"Is the thread between 3 and 8 posts?",
		},
	},
}

// bannedWords are flagged post-generation and prohibited in-prompt. They are
// the tells of generic AI writing the whole pipeline exists to avoid.
var bannedWords = []string{
	"game-changer",
	"game changer",
	"unlock",
	"unleash",
	"delve",
	"revolutionize",
	"leverage",
	"synergy",
	"seamless",
	"elevate",
	"empower",
	"supercharge",
	"skyrocket",
	"in today's world",
	"in this day and age",
	"let that sink in",
}

const basePrinciples = `You write social content that sounds like a specific person, not a brand.

Rules that always apply:
- Never use these words or phrases: game-changer, unlock, unleash, delve, revolutionize, leverage, synergy, seamless, elevate, empower, supercharge, skyrocket, "in today's world", "in this day and age", "let that sink in".
- No em dashes. No exclamation marks stacked for emphasis. No hashtag walls.
- No rhetorical throat-clearing ("So here's the thing...", "Hot take:").
- Write for one reader, not an audience. Second person is fine, crowd-addressing is not.
- Specifics beat abstractions: keep numbers, tool names, and timeframes from the source.
- Engagement comes from being useful or honest, not from withholding ("a thread you can't afford to miss" is banned behavior).
- If the source material is thin, write something short rather than padding.`

const sourceGuidance = `Source handling:
- The user prompt contains a verbatim transcript plus an analysis of it. The transcript is the ground truth.
- Do not invent facts, numbers, or events that are not in the transcript.
- You may compress, reorder, and sharpen. You may not add claims.
- Keep the speaker's stance; do not sand off opinions into neutrality.`
