package evaluator

import "strings"

// Similarity is the default scoring strategy: a case-normalized
// longest-common-subsequence ratio between the candidate's answer and the
// reference answer, with a fixed qualitative label keyed on a threshold.
type Similarity struct{}

// NewSimilarity creates the default similarity evaluator.
func NewSimilarity() *Similarity {
	return &Similarity{}
}

// Evaluate returns the LCS ratio as the score. Empty or whitespace-only
// input always scores zero.
func (e *Similarity) Evaluate(candidate, expected string) (Result, error) {
	if isBlank(candidate) {
		return Result{Score: 0, Feedback: FeedbackNoAnswer}, nil
	}

	ratio := lcsRatio(normalize(candidate), normalize(expected))
	feedback := FeedbackNeedsWork
	if ratio > goodRatioThreshold {
		feedback = FeedbackGood
	}
	return Result{Score: ratio, Feedback: feedback}, nil
}

// Binary is a training-mode strategy that maps the similarity ratio to a
// pass/fail score and echoes the reference answer on failure. Intended for
// review contexts only, not live proctored interviews.
type Binary struct{}

// NewBinary creates the binary grading evaluator.
func NewBinary() *Binary {
	return &Binary{}
}

func (e *Binary) Evaluate(candidate, expected string) (Result, error) {
	if isBlank(candidate) {
		return Result{Score: 0, Feedback: FeedbackNoAnswer}, nil
	}

	if lcsRatio(normalize(candidate), normalize(expected)) >= binaryRatioThreshold {
		return Result{Score: 1, Feedback: FeedbackCorrect}, nil
	}
	return Result{Score: 0, Feedback: FeedbackWrongPrefix + expected}, nil
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// lcsRatio computes 2*LCS(a,b)/(len(a)+len(b)) over runes. Symmetric, 1.0
// for identical inputs, 0.0 when nothing is shared.
func lcsRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	// One-row DP keeps memory at O(len(b)).
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	lcs := prev[len(rb)]
	return 2 * float64(lcs) / float64(len(ra)+len(rb))
}
