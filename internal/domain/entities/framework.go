package entities

// FrameworkKey identifies one of the five registered structural templates
type FrameworkKey string

const (
	FrameworkInsightDrop    FrameworkKey = "insight_drop"
	FrameworkBuildUpdate    FrameworkKey = "build_update"
	FrameworkTacticalGuide  FrameworkKey = "tactical_guide"
	FrameworkOpinion        FrameworkKey = "opinion"
	FrameworkThreadDeepDive FrameworkKey = "thread_deep_dive"
)

// Framework is an immutable structural template describing how a given
// content intent organizes into hook/body/close. Global house-style rules
// are deliberately NOT part of a Framework; they live in the base
// principles ruleset so style can be tuned without touching structure.
type Framework struct {
	Key                 FrameworkKey `json:"key"`
	Purpose             string       `json:"purpose"`
	SectionStructure    []string     `json:"section_structure"`
	FormatGuidance      string       `json:"format_guidance"`
	ExampleSkeletons    []string     `json:"example_skeletons"`
	SignalCheckCriteria []string     `json:"signal_check_criteria"`
}
