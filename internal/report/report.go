package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/harsh-tr3010/excel-ai-interviewer/internal/model"
)

// PathFor returns the per-candidate artifact path for an email. Deterministic
// so callers can hand out the path before the render finishes.
func PathFor(dir, email string) string {
	return filepath.Join(dir, fmt.Sprintf("interview_%s.pdf", slug(email)))
}

// Write renders the human-reviewable PDF report for a persisted record and
// returns its path.
func Write(dir string, rec *model.CandidateRecord) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Interview Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Candidate: %s <%s>", rec.Name, rec.Email))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Total score: %.2f of %.2f", rec.TotalScore, rec.MaxScore))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Verdict: %s", rec.Verdict))
	pdf.Ln(8)
	if !rec.CreatedAt.IsZero() {
		pdf.Cell(0, 8, "Recorded: "+rec.CreatedAt.UTC().Format("2006-01-02 15:04 UTC"))
		pdf.Ln(8)
	}
	pdf.Ln(4)

	for i, item := range rec.Answers {
		pdf.SetFont("Arial", "B", 12)
		pdf.MultiCell(0, 7, fmt.Sprintf("Q%d: %s", i+1, item.Prompt), "", "L", false)

		pdf.SetFont("Arial", "", 11)
		answer := item.Answer
		if strings.TrimSpace(answer) == "" {
			answer = "(no answer)"
		}
		pdf.MultiCell(0, 6, "Answer: "+answer, "", "L", false)
		pdf.MultiCell(0, 6, "Expected: "+item.ExpectedAnswer, "", "L", false)
		pdf.MultiCell(0, 6, fmt.Sprintf("Score: %.2f (%s)", item.Score, item.Feedback), "", "L", false)
		pdf.Ln(4)
	}

	path := PathFor(dir, rec.Email)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write report pdf: %w", err)
	}
	return path, nil
}

// slug lowercases an email and replaces filesystem-hostile characters.
func slug(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.', r == '_':
			return r
		default:
			return '_'
		}
	}, email)
}
