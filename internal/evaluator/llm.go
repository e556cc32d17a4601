package evaluator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	llmSystemPrompt = "You are an expert Excel interviewer. Grade the candidate's answer " +
		"against the reference answer. Reply with exactly two lines:\n" +
		"SCORE: a number between 0.0 and 1.0\n" +
		"FEEDBACK: one short sentence of feedback"

	llmRequestTimeout = 60 * time.Second
)

// LLMJudge delegates scoring to an OpenAI-compatible chat completions
// endpoint. It satisfies the same per-answer contract as the local
// strategies; retrying the upstream call is safe because the result store,
// not the judge, dedupes candidate identities.
type LLMJudge struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewLLMJudge creates an LLM-backed evaluator.
func NewLLMJudge(baseURL, apiKey, model string) *LLMJudge {
	return &LLMJudge{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: llmRequestTimeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Evaluate asks the judge for a score and feedback on a single answer.
// Empty input is scored locally without a network round trip.
func (e *LLMJudge) Evaluate(candidate, expected string) (Result, error) {
	if isBlank(candidate) {
		return Result{Score: 0, Feedback: FeedbackNoAnswer}, nil
	}

	prompt := fmt.Sprintf("Reference answer:\n%s\n\nCandidate answer:\n%s", expected, candidate)
	reply, err := e.complete(context.Background(), prompt)
	if err != nil {
		return Result{}, fmt.Errorf("llm evaluate: %w", err)
	}

	return parseJudgeReply(reply)
}

func (e *LLMJudge) complete(ctx context.Context, userPrompt string) (string, error) {
	body, _ := json.Marshal(chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "system", Content: llmSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm endpoint returned %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode llm response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("llm response has no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// parseJudgeReply extracts the SCORE and FEEDBACK lines from a judge reply.
// Tolerates extra prose around the expected lines; a missing score fails the
// evaluation rather than silently recording zero.
func parseJudgeReply(reply string) (Result, error) {
	var (
		score    = -1.0
		feedback string
	)

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(strings.ToUpper(line), "SCORE:"):
			raw := strings.TrimSpace(line[len("SCORE:"):])
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			score = v
		case strings.HasPrefix(strings.ToUpper(line), "FEEDBACK:"):
			feedback = strings.TrimSpace(line[len("FEEDBACK:"):])
		}
	}

	if score < 0 {
		return Result{}, fmt.Errorf("llm reply carried no parseable score: %s", truncate(reply, 200))
	}
	if score > 1 {
		score = 1
	}
	if feedback == "" {
		feedback = FeedbackNeedsWork
		if score > goodRatioThreshold {
			feedback = FeedbackGood
		}
	}
	return Result{Score: score, Feedback: feedback}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
