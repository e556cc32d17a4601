package evaluator

import "testing"

func TestParseJudgeReply(t *testing.T) {
	res, err := parseJudgeReply("SCORE: 0.8\nFEEDBACK: Solid explanation of INDEX-MATCH.")
	if err != nil {
		t.Fatalf("parseJudgeReply failed: %v", err)
	}
	if res.Score != 0.8 {
		t.Errorf("score %v, want 0.8", res.Score)
	}
	if res.Feedback != "Solid explanation of INDEX-MATCH." {
		t.Errorf("unexpected feedback: %q", res.Feedback)
	}
}

func TestParseJudgeReplyWithSurroundingProse(t *testing.T) {
	reply := "Here is my assessment.\n\nscore: 1.0\nfeedback: Complete answer.\nThanks."
	res, err := parseJudgeReply(reply)
	if err != nil {
		t.Fatalf("parseJudgeReply failed: %v", err)
	}
	if res.Score != 1 {
		t.Errorf("score %v, want 1", res.Score)
	}
}

func TestParseJudgeReplyClampsScore(t *testing.T) {
	res, err := parseJudgeReply("SCORE: 7\nFEEDBACK: over-enthusiastic judge")
	if err != nil {
		t.Fatalf("parseJudgeReply failed: %v", err)
	}
	if res.Score != 1 {
		t.Errorf("score %v, want clamped to 1", res.Score)
	}
}

func TestParseJudgeReplyMissingScore(t *testing.T) {
	if _, err := parseJudgeReply("The candidate did fine, I suppose."); err == nil {
		t.Fatal("expected an error for a reply with no score line")
	}
}

func TestParseJudgeReplyDefaultFeedback(t *testing.T) {
	res, err := parseJudgeReply("SCORE: 0.2")
	if err != nil {
		t.Fatalf("parseJudgeReply failed: %v", err)
	}
	if res.Feedback != FeedbackNeedsWork {
		t.Errorf("feedback %q, want %q", res.Feedback, FeedbackNeedsWork)
	}

	res, err = parseJudgeReply("SCORE: 0.9")
	if err != nil {
		t.Fatalf("parseJudgeReply failed: %v", err)
	}
	if res.Feedback != FeedbackGood {
		t.Errorf("feedback %q, want %q", res.Feedback, FeedbackGood)
	}
}

func TestLLMJudgeBlankAnswerSkipsRemoteCall(t *testing.T) {
	// A judge pointed at a dead endpoint still scores blank answers locally.
	judge := NewLLMJudge("http://127.0.0.1:1", "", "test-model")

	res, err := judge.Evaluate("   ", "reference answer")
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res.Score != 0 || res.Feedback != FeedbackNoAnswer {
		t.Errorf("blank answer got (%v, %q), want (0, %q)", res.Score, res.Feedback, FeedbackNoAnswer)
	}
}
