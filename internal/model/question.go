package model

// Question is a single interview question paired with its reference answer.
// Questions are owned by the question bank and immutable after load; sessions
// refer to them by bank index only.
type Question struct {
	Index          int    `json:"index" csv:"-"`
	Prompt         string `json:"prompt" csv:"prompt"`
	ExpectedAnswer string `json:"-" csv:"expected_answer"`
}

// QuestionForCandidate is a question as sent to the candidate, without the
// reference answer.
type QuestionForCandidate struct {
	Number int    `json:"number"` // 1-based position within this session
	Total  int    `json:"total"`  // session question cap
	Prompt string `json:"prompt"`
}
