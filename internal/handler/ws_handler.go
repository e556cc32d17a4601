package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/harsh-tr3010/excel-ai-interviewer/internal/middleware"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/service"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/session"
	"github.com/harsh-tr3010/excel-ai-interviewer/internal/summary"
	ws "github.com/harsh-tr3010/excel-ai-interviewer/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler handles the WebSocket interview stream.
type WSHandler struct {
	interviews *service.InterviewService
	log        zerolog.Logger
	upgrader   websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(interviews *service.InterviewService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		interviews: interviews,
		log:        log.With().Str("component", "ws_handler").Logger(),
		upgrader:   buildUpgrader(allowedOrigins),
	}
}

// InterviewStream godoc
// WS /ws/v1/interview/stream?token=...
// Upgrades to WebSocket for a conversational interview: the server pushes
// questions, the client answers, and a final "finish" yields the summary.
func (h *WSHandler) InterviewStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session ID"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().
		Str("session_id", sessionID.String()).
		Str("candidate_email", claims.CandidateEmail).
		Logger()

	state, err := h.interviews.CurrentQuestion(sessionID)
	if err != nil {
		ws.WriteError(conn, "no interview session for this token")
		return
	}

	wsLog.Info().Msg("Candidate connected")

	// Greet and replay the pending question so reconnects resume cleanly.
	ws.WriteTyped(conn, ws.QuestionResponse{
		Event:     ws.EventQuestion,
		Greeting:  service.Greeting,
		Question:  state.Question,
		Completed: state.Completed,
	})

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		switch msg.Action {
		case ws.ActionAnswer:
			h.handleAnswer(conn, sessionID, &msg)
		case ws.ActionFinish:
			if done := h.handleFinish(c.Request.Context(), conn, wsLog, sessionID); done {
				return
			}
		case ws.ActionPing:
			ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
		default:
			ws.WriteError(conn, "unknown action")
		}
	}
}

func (h *WSHandler) handleAnswer(conn *websocket.Conn, sessionID uuid.UUID, msg *ws.RequestPayload) {
	result, err := h.interviews.SubmitAnswer(sessionID, msg.Answer)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNoActiveQuestion):
			ws.WriteError(conn, "there is no question awaiting an answer")
		case errors.Is(err, service.ErrSessionNotFound):
			ws.WriteError(conn, "no interview session for this token")
		default:
			ws.WriteError(conn, "failed to score answer")
		}
		return
	}

	ws.WriteTyped(conn, ws.ResultResponse{
		Event:        ws.EventResult,
		Score:        result.Score,
		Feedback:     result.Feedback,
		NextQuestion: result.NextQuestion,
		Completed:    result.Completed,
	})
}

// handleFinish finalizes the interview and reports whether the stream should
// end. An incomplete session keeps the stream open so the candidate can keep
// answering.
func (h *WSHandler) handleFinish(ctx context.Context, conn *websocket.Conn, wsLog zerolog.Logger, sessionID uuid.UUID) bool {
	result, err := h.interviews.Finalize(ctx, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, summary.ErrIncompleteSession):
			ws.WriteError(conn, "the interview is not completed yet")
			return false
		case errors.Is(err, service.ErrDuplicateCandidate):
			ws.WriteError(conn, "you have already completed this interview")
			return true
		case errors.Is(err, service.ErrSessionNotFound):
			ws.WriteError(conn, "no interview session for this token")
			return true
		default:
			wsLog.Error().Err(err).Msg("Finalize failed")
			ws.WriteError(conn, "failed to record the interview")
			return false
		}
	}

	ws.WriteTyped(conn, ws.SummaryResponse{
		Event:      ws.EventSummary,
		TotalScore: result.Record.TotalScore,
		MaxScore:   result.Record.MaxScore,
		Verdict:    result.Record.Verdict,
		ReportPath: result.ReportPath,
	})

	wsLog.Info().Msg("Interview finished over WebSocket")
	return true
}
