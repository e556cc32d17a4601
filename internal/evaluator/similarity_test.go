package evaluator

import (
	"strings"
	"testing"
)

func TestSimilarityBlankAnswer(t *testing.T) {
	eval := NewSimilarity()

	for _, answer := range []string{"", "   ", "\n\t "} {
		res, err := eval.Evaluate(answer, "reference answer")
		if err != nil {
			t.Fatalf("Evaluate failed: %v", err)
		}
		if res.Score != 0 {
			t.Errorf("blank answer %q scored %v, want 0", answer, res.Score)
		}
		if res.Feedback != FeedbackNoAnswer {
			t.Errorf("blank answer %q feedback %q, want %q", answer, res.Feedback, FeedbackNoAnswer)
		}
	}
}

func TestSimilarityIdenticalAnswer(t *testing.T) {
	eval := NewSimilarity()

	res, err := eval.Evaluate("Pivot Tables summarize data", "Pivot Tables summarize data")
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res.Score != 1 {
		t.Errorf("identical answer scored %v, want 1", res.Score)
	}
	if res.Feedback != FeedbackGood {
		t.Errorf("feedback %q, want %q", res.Feedback, FeedbackGood)
	}
}

func TestSimilarityIgnoresCaseAndSpacing(t *testing.T) {
	eval := NewSimilarity()

	res, err := eval.Evaluate("  PIVOT   tables\tsummarize data ", "pivot tables summarize data")
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res.Score != 1 {
		t.Errorf("normalized answer scored %v, want 1", res.Score)
	}
}

func TestSimilarityUnrelatedAnswer(t *testing.T) {
	eval := NewSimilarity()

	res, err := eval.Evaluate("zzz", "abc")
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res.Score != 0 {
		t.Errorf("unrelated answer scored %v, want 0", res.Score)
	}
	if res.Feedback != FeedbackNeedsWork {
		t.Errorf("feedback %q, want %q", res.Feedback, FeedbackNeedsWork)
	}
}

func TestBinary(t *testing.T) {
	eval := NewBinary()

	res, err := eval.Evaluate("pivot tables summarize data", "Pivot Tables summarize data")
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res.Score != 1 || res.Feedback != FeedbackCorrect {
		t.Errorf("close answer got (%v, %q), want (1, %q)", res.Score, res.Feedback, FeedbackCorrect)
	}

	res, err = eval.Evaluate("zzz", "abc")
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res.Score != 0 {
		t.Errorf("wrong answer scored %v, want 0", res.Score)
	}
	if !strings.HasPrefix(res.Feedback, FeedbackWrongPrefix) || !strings.Contains(res.Feedback, "abc") {
		t.Errorf("wrong answer feedback %q should echo the reference answer", res.Feedback)
	}
}

func TestLCSRatio(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"", "abc", 0},
		{"abc", "abc", 1},
		{"abc", "axc", 2.0 * 2 / 6},
	}
	for _, tc := range cases {
		if got := lcsRatio(tc.a, tc.b); got != tc.want {
			t.Errorf("lcsRatio(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestLCSRatioSymmetric(t *testing.T) {
	a, b := "index match lookup", "vlookup over a range"
	if lcsRatio(a, b) != lcsRatio(b, a) {
		t.Errorf("lcsRatio is not symmetric for %q and %q", a, b)
	}
}
