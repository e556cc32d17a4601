package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/harsh-tr3010/excel-ai-interviewer/internal/middleware"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/model"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/response"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/service"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/session"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/summary"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/validator"
)

// InterviewHandler handles candidate-facing interview endpoints.
type InterviewHandler struct {
	interviews *service.InterviewService
	tokens     *service.TokenService
}

// NewInterviewHandler creates a new InterviewHandler.
func NewInterviewHandler(interviews *service.InterviewService, tokens *service.TokenService) *InterviewHandler {
	return &InterviewHandler{interviews: interviews, tokens: tokens}
}

// Start godoc
// POST /api/v1/interview/start
// Creates a session for the candidate and issues the session token.
func (h *InterviewHandler) Start(c *gin.Context) {
	var req model.StartInterviewRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.interviews.Start(c.Request.Context(), req.CandidateName, req.CandidateEmail)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCandidateRecorded):
			response.Fail(c, http.StatusConflict, response.ErrCandidateRecorded)
		case errors.Is(err, service.ErrCandidateSessionActive):
			response.Fail(c, http.StatusConflict, response.ErrCandidateSessionActive)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	token, err := h.tokens.Issue(result.SessionID, req.CandidateName, req.CandidateEmail)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"token":     token,
		"interview": result,
	})
}

// GetQuestion godoc
// GET /api/v1/interview/question
// Returns the pending question, or a completion marker.
func (h *InterviewHandler) GetQuestion(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	state, err := h.interviews.CurrentQuestion(sessionID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return
	}

	response.Success(c, http.StatusOK, state)
}

// SubmitAnswer godoc
// POST /api/v1/interview/answer
// Scores the answer to the pending question and advances the session.
func (h *InterviewHandler) SubmitAnswer(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.interviews.SubmitAnswer(sessionID, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		case errors.Is(err, session.ErrNoActiveQuestion):
			response.Fail(c, http.StatusConflict, response.ErrNoActiveQuestion)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Finalize godoc
// POST /api/v1/interview/finalize
// Aggregates the completed session and durably records the outcome.
func (h *InterviewHandler) Finalize(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	result, err := h.interviews.Finalize(c.Request.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		case errors.Is(err, summary.ErrIncompleteSession):
			response.Fail(c, http.StatusConflict, response.ErrInterviewNotCompleted)
		case errors.Is(err, service.ErrDuplicateCandidate):
			response.Fail(c, http.StatusConflict, response.ErrCandidateRecorded)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// sessionID extracts the session identifier from the validated token claims.
func (h *InterviewHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return uuid.Nil, false
	}

	id, err := uuid.Parse(claims.SessionID)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return uuid.Nil, false
	}
	return id, true
}
