package summary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harsh-tr3010/excel-ai-interviewer/internal/model"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/session"
)

// ErrIncompleteSession means Build was called before the session completed.
// Strict aggregation: partial sessions never produce a verdict, so unanswered
// questions can never be counted silently.
var ErrIncompleteSession = errors.New("interview session is not completed")

// Summary is the aggregated outcome of a completed session.
type Summary struct {
	CandidateName  string
	CandidateEmail string
	Items          []model.AnsweredItem
	TotalScore     float64
	MaxScore       float64
	Verdict        model.Verdict
	PassThreshold  float64
}

// Builder aggregates completed sessions into summaries using a configured
// pass threshold.
type Builder struct {
	passThreshold float64
}

// NewBuilder creates a Builder. A session passes when the summed score
// reaches passThreshold.
func NewBuilder(passThreshold float64) *Builder {
	return &Builder{passThreshold: passThreshold}
}

// Build aggregates a session's answers into a verdict. Fails with
// ErrIncompleteSession unless the session stage is StageCompleted.
func (b *Builder) Build(sess *session.Session, candidateName, candidateEmail string) (*Summary, error) {
	if sess.Stage() != session.StageCompleted {
		return nil, ErrIncompleteSession
	}

	items := sess.Answers()
	var total float64
	for _, item := range items {
		total += item.Score
	}

	verdict := model.VerdictFail
	if total >= b.passThreshold {
		verdict = model.VerdictPass
	}

	return &Summary{
		CandidateName:  candidateName,
		CandidateEmail: candidateEmail,
		Items:          items,
		TotalScore:     total,
		MaxScore:       float64(len(items)),
		Verdict:        verdict,
		PassThreshold:  b.passThreshold,
	}, nil
}

// Report renders the deterministic plain-text report: one block per question
// in asked order, followed by the totals and the verdict.
func (s *Summary) Report() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Interview report for %s <%s>\n", s.CandidateName, s.CandidateEmail)
	fmt.Fprintf(&sb, "Questions answered: %d\n\n", len(s.Items))

	for i, item := range s.Items {
		fmt.Fprintf(&sb, "Q%d: %s\n", i+1, item.Prompt)
		answer := item.Answer
		if strings.TrimSpace(answer) == "" {
			answer = "(no answer)"
		}
		fmt.Fprintf(&sb, "Answer: %s\n", answer)
		fmt.Fprintf(&sb, "Expected: %s\n", item.ExpectedAnswer)
		fmt.Fprintf(&sb, "Score: %.2f (%s)\n\n", item.Score, item.Feedback)
	}

	fmt.Fprintf(&sb, "Total score: %.2f of %.2f (pass threshold %.2f)\n", s.TotalScore, s.MaxScore, s.PassThreshold)
	fmt.Fprintf(&sb, "Verdict: %s\n", s.Verdict)

	return sb.String()
}

// Record converts the summary into the durable candidate record persisted by
// the result store.
func (s *Summary) Record() *model.CandidateRecord {
	return &model.CandidateRecord{
		Name:       s.CandidateName,
		Email:      s.CandidateEmail,
		TotalScore: s.TotalScore,
		MaxScore:   s.MaxScore,
		Verdict:    s.Verdict,
		Report:     s.Report(),
		Answers:    s.Items,
	}
}
