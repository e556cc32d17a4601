package model

import (
	"time"

	"github.com/google/uuid"
)

// Verdict enumerates the pass/fail outcome of an interview.
type Verdict string

const (
	VerdictPass Verdict = "PASS"
	VerdictFail Verdict = "FAIL"
)

// AnsweredItem is one scored answer within a session. Created once per
// question and immutable thereafter.
type AnsweredItem struct {
	QuestionIndex  int     `json:"question_index"`
	Prompt         string  `json:"prompt"`
	ExpectedAnswer string  `json:"expected_answer"`
	Answer         string  `json:"answer"`
	Score          float64 `json:"score"`
	Feedback       string  `json:"feedback"`
}

// CandidateRecord is the durable result of one completed interview attempt.
// Identity is the candidate email, matched case-insensitively; the store
// refuses a second record for the same identity.
type CandidateRecord struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	TotalScore float64        `json:"total_score"`
	MaxScore   float64        `json:"max_score"`
	Verdict    Verdict        `json:"verdict"`
	Report     string         `json:"report"`
	Answers    []AnsweredItem `json:"answers,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// StartInterviewRequest is the payload for starting an interview session.
type StartInterviewRequest struct {
	CandidateName  string `json:"candidate_name" binding:"required,min=2,max=255"`
	CandidateEmail string `json:"candidate_email" binding:"required,email,max=255"`
}

// SubmitAnswerRequest is the payload for answering the current question.
// The answer may be empty: "no answer" is a legal submission that scores zero.
type SubmitAnswerRequest struct {
	Answer string `json:"answer" binding:"max=10000"`
}
