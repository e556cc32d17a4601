package session

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/harsh-tr3010/excel-ai-interviewer/internal/evaluator"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/model"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/questionbank"
)

// Caller-protocol errors. Both are recoverable: the caller should
// resynchronize its view of the session state and try again.
var (
	ErrAlreadyStarted   = errors.New("interview session already started")
	ErrNoActiveQuestion = errors.New("no question awaiting an answer")
)

// Stage enumerates interview session states. No transition leaves
// StageCompleted.
type Stage string

const (
	StageNotStarted Stage = "NOT_STARTED"
	StageInProgress Stage = "IN_PROGRESS"
	StageCompleted  Stage = "COMPLETED"
)

// Session is one candidate's interview attempt: an ordered walk through
// randomly sampled questions, each answer scored as it arrives.
//
// A Session is not safe for concurrent use; callers serialize access per
// session. The question bank is shared read-only, the random source is
// owned exclusively by this session.
type Session struct {
	id         uuid.UUID
	stage      Stage
	askedOrder []int
	answers    []model.AnsweredItem
	cap        int
	rng        *rand.Rand
	bank       *questionbank.Bank
	eval       evaluator.Evaluator
}

// New creates a session in StageNotStarted. cap is the maximum number of
// questions; the session completes early if the bank holds fewer.
func New(bank *questionbank.Bank, eval evaluator.Evaluator, rng *rand.Rand, cap int) *Session {
	return &Session{
		id:    uuid.New(),
		stage: StageNotStarted,
		cap:   cap,
		rng:   rng,
		bank:  bank,
		eval:  eval,
	}
}

// ID returns the session identifier issued at creation.
func (s *Session) ID() uuid.UUID { return s.id }

// Stage returns the current session stage.
func (s *Session) Stage() Stage { return s.stage }

// Cap returns the question ceiling fixed at creation.
func (s *Session) Cap() int { return s.cap }

// AskedOrder returns a copy of the bank indices presented so far.
func (s *Session) AskedOrder() []int {
	out := make([]int, len(s.askedOrder))
	copy(out, s.askedOrder)
	return out
}

// Answers returns a copy of the scored answers in asked order.
func (s *Session) Answers() []model.AnsweredItem {
	out := make([]model.AnsweredItem, len(s.answers))
	copy(out, s.answers)
	return out
}

// Start transitions NotStarted → InProgress and draws the first question.
// Returns ErrAlreadyStarted from any other stage. A bank with no questions
// completes the session immediately and returns a nil question.
func (s *Session) Start() (*model.Question, error) {
	if s.stage != StageNotStarted {
		return nil, ErrAlreadyStarted
	}

	s.askedOrder = nil
	s.answers = nil

	idx, ok := s.draw()
	if !ok {
		s.stage = StageCompleted
		return nil, nil
	}

	s.askedOrder = append(s.askedOrder, idx)
	s.stage = StageInProgress

	q, _ := s.bank.Question(idx)
	return &q, nil
}

// CurrentQuestion returns the most recently drawn, not-yet-answered question,
// or nil if the session is completed or nothing is pending.
func (s *Session) CurrentQuestion() *model.Question {
	if s.stage != StageInProgress || len(s.askedOrder) == len(s.answers) {
		return nil
	}
	q, _ := s.bank.Question(s.askedOrder[len(s.askedOrder)-1])
	return &q
}

// SubmitResult is the outcome of one answer submission.
type SubmitResult struct {
	Item         model.AnsweredItem
	NextQuestion *model.Question // nil when the session completed
	Completed    bool
}

// SubmitAnswer scores text against the pending question's reference answer,
// records the answered item, then draws the next question. The session
// completes when the cap is reached or the bank is exhausted; the cap is a
// ceiling, not a guarantee. Without a pending question the call fails with
// ErrNoActiveQuestion and mutates nothing.
func (s *Session) SubmitAnswer(text string) (*SubmitResult, error) {
	pending := s.CurrentQuestion()
	if pending == nil {
		return nil, ErrNoActiveQuestion
	}

	res, err := s.eval.Evaluate(text, pending.ExpectedAnswer)
	if err != nil {
		return nil, fmt.Errorf("evaluate answer: %w", err)
	}

	item := model.AnsweredItem{
		QuestionIndex:  pending.Index,
		Prompt:         pending.Prompt,
		ExpectedAnswer: pending.ExpectedAnswer,
		Answer:         text,
		Score:          res.Score,
		Feedback:       res.Feedback,
	}
	s.answers = append(s.answers, item)

	result := &SubmitResult{Item: item}

	if len(s.askedOrder) < s.cap {
		if idx, ok := s.draw(); ok {
			s.askedOrder = append(s.askedOrder, idx)
			q, _ := s.bank.Question(idx)
			result.NextQuestion = &q
			return result, nil
		}
	}

	s.stage = StageCompleted
	result.Completed = true
	return result, nil
}

// draw samples one unasked question index, or false when none remain.
func (s *Session) draw() (int, bool) {
	excluding := make(map[int]struct{}, len(s.askedOrder))
	for _, i := range s.askedOrder {
		excluding[i] = struct{}{}
	}
	return s.bank.Sample(s.rng, excluding)
}
