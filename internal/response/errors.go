package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Session tokens ────────────────────────────────────────────────
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid  ErrCode = "TOKEN_INVALID"
	ErrTokenExpired  ErrCode = "TOKEN_EXPIRED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Interview protocol ────────────────────────────────────────────
	ErrSessionNotFound        ErrCode = "SESSION_NOT_FOUND"
	ErrAlreadyStarted         ErrCode = "INTERVIEW_ALREADY_STARTED"
	ErrNoActiveQuestion       ErrCode = "NO_ACTIVE_QUESTION"
	ErrInterviewNotCompleted  ErrCode = "INTERVIEW_NOT_COMPLETED"
	ErrCandidateRecorded      ErrCode = "CANDIDATE_ALREADY_RECORDED"
	ErrCandidateSessionActive ErrCode = "CANDIDATE_SESSION_ACTIVE"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Session tokens ────────────────────────────────────────────────
	case ErrTokenRequired:
		return "A session token is required."
	case ErrTokenInvalid:
		return "The session token is not valid."
	case ErrTokenExpired:
		return "The session token has expired."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "The request payload is not valid."

	// ─── Interview protocol ────────────────────────────────────────────
	case ErrSessionNotFound:
		return "No interview session was found for this token."
	case ErrAlreadyStarted:
		return "This interview has already been started."
	case ErrNoActiveQuestion:
		return "There is no question awaiting an answer."
	case ErrInterviewNotCompleted:
		return "The interview is not completed yet."
	case ErrCandidateRecorded:
		return "You have already completed this interview."
	case ErrCandidateSessionActive:
		return "An interview session is already in progress for this email."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "The requested resource was not found."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
