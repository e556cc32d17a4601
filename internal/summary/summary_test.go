package summary

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/harsh-tr3010/excel-ai-interviewer/internal/evaluator"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/model"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/questionbank"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/session"
)

// echoEval scores 1 when the candidate repeats the reference answer exactly
// and 0 otherwise, so tests control scores precisely.
type echoEval struct{}

func (echoEval) Evaluate(candidate, expected string) (evaluator.Result, error) {
	if candidate == expected {
		return evaluator.Result{Score: 1, Feedback: evaluator.FeedbackGood}, nil
	}
	return evaluator.Result{Score: 0, Feedback: evaluator.FeedbackNeedsWork}, nil
}

func completedSession(t *testing.T, n int, answer func(expected string) string) *session.Session {
	t.Helper()

	var sb strings.Builder
	sb.WriteString("prompt,expected_answer\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "\"Question %d?\",\"Answer %d\"\n", i, i)
	}
	bank, err := questionbank.Load(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	sess := session.New(bank, echoEval{}, rand.New(rand.NewSource(1)), n)
	q, err := sess.Start()
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	for q != nil {
		res, err := sess.SubmitAnswer(answer(q.ExpectedAnswer))
		if err != nil {
			t.Fatalf("SubmitAnswer failed: %v", err)
		}
		q = res.NextQuestion
	}
	return sess
}

func TestBuildRejectsIncompleteSession(t *testing.T) {
	bank, err := questionbank.Load(strings.NewReader("prompt,expected_answer\n\"Q?\",\"A\"\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	sess := session.New(bank, echoEval{}, rand.New(rand.NewSource(1)), 1)
	if _, err := sess.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	builder := NewBuilder(0.5)
	if _, err := builder.Build(sess, "Ada", "ada@example.com"); !errors.Is(err, ErrIncompleteSession) {
		t.Fatalf("Build on in-progress session returned %v, want ErrIncompleteSession", err)
	}
}

func TestBuildPerfectScore(t *testing.T) {
	sess := completedSession(t, 3, func(expected string) string { return expected })

	sum, err := NewBuilder(2.5).Build(sess, "Ada", "ada@example.com")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if sum.TotalScore != 3 {
		t.Errorf("total score %v, want 3", sum.TotalScore)
	}
	if sum.MaxScore != 3 {
		t.Errorf("max score %v, want 3", sum.MaxScore)
	}
	if sum.Verdict != model.VerdictPass {
		t.Errorf("verdict %q, want %q", sum.Verdict, model.VerdictPass)
	}
}

func TestBuildAllWrong(t *testing.T) {
	sess := completedSession(t, 3, func(string) string { return "wrong" })

	sum, err := NewBuilder(2.5).Build(sess, "Ada", "ada@example.com")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if sum.TotalScore != 0 {
		t.Errorf("total score %v, want 0", sum.TotalScore)
	}
	if sum.Verdict != model.VerdictFail {
		t.Errorf("verdict %q, want %q", sum.Verdict, model.VerdictFail)
	}
}

func TestBuildThresholdIsInclusive(t *testing.T) {
	sess := completedSession(t, 2, func(expected string) string { return expected })

	sum, err := NewBuilder(2).Build(sess, "Ada", "ada@example.com")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if sum.Verdict != model.VerdictPass {
		t.Errorf("a total exactly at the threshold should pass, got %q", sum.Verdict)
	}
}

func TestReport(t *testing.T) {
	sess := completedSession(t, 2, func(string) string { return "" })

	sum, err := NewBuilder(1).Build(sess, "Ada", "ada@example.com")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	report := sum.Report()
	for _, want := range []string{
		"Interview report for Ada <ada@example.com>",
		"Q1:", "Q2:",
		"(no answer)",
		"Verdict: FAIL",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
	if strings.Contains(report, "Q3:") {
		t.Errorf("report lists a question that was never asked:\n%s", report)
	}
}

func TestReportIsDeterministic(t *testing.T) {
	sess := completedSession(t, 3, func(expected string) string { return expected })

	sum, err := NewBuilder(1).Build(sess, "Ada", "ada@example.com")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if sum.Report() != sum.Report() {
		t.Error("two renders of the same summary differ")
	}
}

func TestRecord(t *testing.T) {
	sess := completedSession(t, 2, func(expected string) string { return expected })

	sum, err := NewBuilder(1).Build(sess, "Ada", "ada@example.com")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	rec := sum.Record()
	if rec.Email != "ada@example.com" || rec.Name != "Ada" {
		t.Errorf("record identity (%q, %q) is wrong", rec.Name, rec.Email)
	}
	if len(rec.Answers) != 2 {
		t.Errorf("record carries %d answers, want 2", len(rec.Answers))
	}
	if rec.Report == "" {
		t.Error("record should embed the rendered report")
	}
}
