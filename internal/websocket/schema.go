package websocket

import "github.com/harsh-tr3010/excel-ai-interviewer/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionAnswer Action = "answer"
	ActionFinish Action = "finish"
	ActionPing   Action = "ping"
)

// RequestPayload is the single client → server message shape.
// Answer is only read for ActionAnswer.
type RequestPayload struct {
	Action Action `json:"action"`
	Answer string `json:"answer"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventQuestion Event = "question"
	EventResult   Event = "result"
	EventSummary  Event = "summary"
	EventError    Event = "error"
	EventPong     Event = "pong"
)

// QuestionResponse carries the pending question, or a completion marker when
// no question remains.
type QuestionResponse struct {
	Event     Event                       `json:"event"`
	Greeting  string                      `json:"greeting,omitempty"`
	Question  *model.QuestionForCandidate `json:"question,omitempty"`
	Completed bool                        `json:"completed"`
}

// ResultResponse carries the score for the just-submitted answer plus either
// the next question or a completion marker.
type ResultResponse struct {
	Event        Event                       `json:"event"`
	Score        float64                     `json:"score"`
	Feedback     string                      `json:"feedback"`
	NextQuestion *model.QuestionForCandidate `json:"next_question,omitempty"`
	Completed    bool                        `json:"completed"`
}

// SummaryResponse carries the finalized interview outcome.
type SummaryResponse struct {
	Event      Event         `json:"event"`
	TotalScore float64       `json:"total_score"`
	MaxScore   float64       `json:"max_score"`
	Verdict    model.Verdict `json:"verdict"`
	ReportPath string        `json:"report_path"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
