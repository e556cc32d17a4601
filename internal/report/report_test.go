package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harsh-tr3010/excel-ai-interviewer/internal/model"
)

func TestPathFor(t *testing.T) {
	got := PathFor("/tmp/reports", "Ada.Lovelace@Example.com")
	want := filepath.Join("/tmp/reports", "interview_ada.lovelace_example.com.pdf")
	if got != want {
		t.Errorf("PathFor = %q, want %q", got, want)
	}

	// Deterministic: the same identity always maps to the same artifact.
	if PathFor("/tmp/reports", "ada.lovelace@example.COM") != want {
		t.Error("PathFor should be case-insensitive on the email")
	}
}

func TestPathForHostileCharacters(t *testing.T) {
	got := PathFor("reports", "a/b\\c:d@example.com")
	if filepath.Dir(got) != "reports" {
		t.Fatalf("artifact escaped the report dir: %q", got)
	}
	if base := filepath.Base(got); base != "interview_a_b_c_d_example.com.pdf" {
		t.Errorf("unexpected slug: %q", base)
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	rec := &model.CandidateRecord{
		Name:       "Ada",
		Email:      "ada@example.com",
		TotalScore: 2.5,
		MaxScore:   3,
		Verdict:    model.VerdictPass,
		Answers: []model.AnsweredItem{
			{Prompt: "What is VLOOKUP?", Answer: "a lookup", Score: 0.5, Feedback: "Needs improvement"},
		},
	}

	path, err := Write(dir, rec)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if path != PathFor(dir, rec.Email) {
		t.Errorf("Write returned %q, PathFor says %q", path, PathFor(dir, rec.Email))
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("artifact missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("artifact is empty")
	}
}

func TestWriteCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	rec := &model.CandidateRecord{Name: "Ada", Email: "ada@example.com", Verdict: model.VerdictFail}

	if _, err := Write(dir, rec); err != nil {
		t.Fatalf("Write should create the directory: %v", err)
	}
}
