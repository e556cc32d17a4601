package evaluator

import "strings"

// Feedback labels shared by the scoring strategies.
const (
	FeedbackNoAnswer     = "No answer provided"
	FeedbackGood         = "Good understanding"
	FeedbackNeedsWork    = "Needs improvement"
	FeedbackCorrect      = "Correct"
	FeedbackWrongPrefix  = "Wrong. Correct answer: "
	goodRatioThreshold   = 0.7
	binaryRatioThreshold = 0.5
)

// Result is one scored answer: a score in [0,1] plus qualitative feedback.
type Result struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// Evaluator scores a candidate's free-text answer against a reference answer.
// Implementations must be pure with respect to session state so strategies
// can be swapped without changing the session contract.
type Evaluator interface {
	Evaluate(candidate, expected string) (Result, error)
}

// isBlank reports whether the candidate gave no usable answer.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
