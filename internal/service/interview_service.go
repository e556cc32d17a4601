package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/harsh-tr3010/excel-ai-interviewer/internal/config"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/evaluator"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/model"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/questionbank"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/session"
)

// Domain errors surfaced to the transport layer.
var (
	ErrSessionNotFound        = errors.New("no interview session for this id")
	ErrCandidateRecorded      = errors.New("candidate already has a recorded interview")
	ErrCandidateSessionActive = errors.New("candidate already has an interview in progress")
)

// Greeting is the interviewer's opening line, sent alongside the first question.
const Greeting = "Hello, I am your AI Excel Interviewer. Let's begin!"

// InterviewService owns the sessionID → session registry the engine itself
// deliberately does not hold: sessions are created per candidate attempt and
// looked up by the identifier issued at start. Each registered session gets
// its own mutex so concurrent transport calls are serialized per session
// while distinct candidates proceed in parallel.
type InterviewService struct {
	bank    *questionbank.Bank
	eval    evaluator.Evaluator
	records RecordStore
	results *ResultService
	rdb     *redis.Client
	log     zerolog.Logger

	questionCap int
	activeTTL   time.Duration

	mu       sync.RWMutex
	sessions map[uuid.UUID]*managedSession
}

type managedSession struct {
	mu    sync.Mutex
	sess  *session.Session
	name  string
	email string
}

// NewInterviewService creates a new InterviewService.
func NewInterviewService(
	bank *questionbank.Bank,
	eval evaluator.Evaluator,
	records RecordStore,
	results *ResultService,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) *InterviewService {
	return &InterviewService{
		bank:        bank,
		eval:        eval,
		records:     records,
		results:     results,
		rdb:         rdb,
		log:         log.With().Str("component", "interview_service").Logger(),
		questionCap: cfg.QuestionCap,
		activeTTL:   cfg.JWTExpiry,
		sessions:    make(map[uuid.UUID]*managedSession),
	}
}

// StartResult is the outcome of starting an interview.
type StartResult struct {
	SessionID uuid.UUID                   `json:"session_id"`
	Greeting  string                      `json:"greeting"`
	Question  *model.QuestionForCandidate `json:"question,omitempty"`
	Completed bool                        `json:"completed"`
}

// Start creates and registers a session for a candidate attempt. Rejects
// candidates who already hold a durable record (ErrCandidateRecorded) or a
// live session for the same email (ErrCandidateSessionActive). The record
// check here is advisory; the authoritative duplicate gate is the result
// store's atomic insert at finalization.
func (s *InterviewService) Start(ctx context.Context, name, email string) (*StartResult, error) {
	exists, err := s.records.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check existing record: %w", err)
	}
	if exists {
		return nil, ErrCandidateRecorded
	}

	sess := session.New(s.bank, s.eval, newSessionRNG(), s.questionCap)

	if s.rdb != nil {
		key := config.CacheKey.CandidateActiveSessionKey(email)
		ok, err := s.rdb.SetNX(ctx, key, sess.ID().String(), s.activeTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("reserve candidate session: %w", err)
		}
		if !ok {
			return nil, ErrCandidateSessionActive
		}
	}

	first, err := sess.Start()
	if err != nil {
		// Unreachable for a fresh session; keep the guard for protocol safety.
		return nil, err
	}

	ms := &managedSession{sess: sess, name: name, email: email}
	s.mu.Lock()
	s.sessions[sess.ID()] = ms
	s.mu.Unlock()

	s.log.Info().
		Str("session_id", sess.ID().String()).
		Str("candidate_email", email).
		Msg("Interview session started")

	result := &StartResult{SessionID: sess.ID(), Greeting: Greeting}
	if first == nil {
		result.Completed = true
		return result, nil
	}
	result.Question = s.forCandidate(sess, first)
	return result, nil
}

// CurrentState is the transport view of a session's progress.
type CurrentState struct {
	Question  *model.QuestionForCandidate `json:"question,omitempty"`
	Completed bool                        `json:"completed"`
}

// CurrentQuestion returns the pending question, or a completion marker when
// the session has no more questions to ask.
func (s *InterviewService) CurrentQuestion(sessionID uuid.UUID) (*CurrentState, error) {
	ms, ok := s.lookup(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	state := &CurrentState{Completed: ms.sess.Stage() == session.StageCompleted}
	if q := ms.sess.CurrentQuestion(); q != nil {
		state.Question = s.forCandidate(ms.sess, q)
	}
	return state, nil
}

// AnswerResult is the outcome of one answer submission.
type AnswerResult struct {
	Score        float64                     `json:"score"`
	Feedback     string                      `json:"feedback"`
	NextQuestion *model.QuestionForCandidate `json:"next_question,omitempty"`
	Completed    bool                        `json:"completed"`
}

// SubmitAnswer routes an answer through the session's evaluator.
// session.ErrNoActiveQuestion passes through for the transport to map.
func (s *InterviewService) SubmitAnswer(sessionID uuid.UUID, text string) (*AnswerResult, error) {
	ms, ok := s.lookup(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	res, err := ms.sess.SubmitAnswer(text)
	if err != nil {
		return nil, err
	}

	out := &AnswerResult{
		Score:     res.Item.Score,
		Feedback:  res.Item.Feedback,
		Completed: res.Completed,
	}
	if res.NextQuestion != nil {
		out.NextQuestion = s.forCandidate(ms.sess, res.NextQuestion)
	}
	return out, nil
}

// Finalize aggregates and durably persists the session's outcome, then
// retires the session. Duplicate identity is terminal for the attempt: the
// session is retired even though nothing new was written. An incomplete
// session survives the call so the candidate can keep answering.
func (s *InterviewService) Finalize(ctx context.Context, sessionID uuid.UUID) (*FinalizeResult, error) {
	ms, ok := s.lookup(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	res, err := s.results.Persist(ctx, ms.sess, ms.name, ms.email)
	if err != nil {
		if errors.Is(err, ErrDuplicateCandidate) {
			s.retire(ctx, sessionID, ms.email)
		}
		return nil, err
	}

	s.retire(ctx, sessionID, ms.email)

	s.log.Info().
		Str("session_id", sessionID.String()).
		Str("candidate_email", ms.email).
		Float64("total_score", res.Record.TotalScore).
		Str("verdict", string(res.Record.Verdict)).
		Msg("Interview finalized")

	return res, nil
}

func (s *InterviewService) lookup(sessionID uuid.UUID) (*managedSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ms, ok := s.sessions[sessionID]
	return ms, ok
}

// retire drops the session from the registry and releases the per-candidate
// live-session guard.
func (s *InterviewService) retire(ctx context.Context, sessionID uuid.UUID, email string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, config.CacheKey.CandidateActiveSessionKey(email)).Err(); err != nil {
			s.log.Warn().Err(err).Str("candidate_email", email).Msg("Failed to release session guard")
		}
	}
}

// forCandidate strips the reference answer and attaches session-relative
// numbering.
func (s *InterviewService) forCandidate(sess *session.Session, q *model.Question) *model.QuestionForCandidate {
	return &model.QuestionForCandidate{
		Number: len(sess.AskedOrder()),
		Total:  sess.Cap(),
		Prompt: q.Prompt,
	}
}

// newSessionRNG seeds a generator owned by exactly one session, so question
// order is reproducible when a fixed source is injected in tests.
func newSessionRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
