// Package tokens provides prompt-size estimation.
//
// The estimator is a character-count heuristic, not a real tokenizer. It is
// consistent within the system but only approximates any specific model's
// token count. Budgeting and ranking code depends only on the Estimator
// interface so a model-accurate tokenizer can be swapped in later.
package tokens

// Estimator estimates the token cost of a text
type Estimator interface {
	Estimate(text string) int
}

// CharEstimator derives token counts from byte length
type CharEstimator struct {
	charsPerToken int
}

// NewCharEstimator returns the default estimator (4 chars per token)
func NewCharEstimator() *CharEstimator {
	return &CharEstimator{charsPerToken: 4}
}

// Estimate returns the estimated token count for text, rounding up
func (e *CharEstimator) Estimate(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + e.charsPerToken - 1) / e.charsPerToken
}
