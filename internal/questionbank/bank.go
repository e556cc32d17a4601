package questionbank

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/harsh-tr3010/excel-ai-interviewer/internal/model"
)

// ErrSchema indicates the question source is malformed: missing required
// columns, empty file, or rows without a prompt or expected answer.
// Fatal at load time, before any session starts.
var ErrSchema = errors.New("question source schema is invalid")

// Bank is an immutable, index-addressed set of interview questions.
// Safe for concurrent readers after Load; sampling state lives entirely
// in the caller's exclusion set, so one bank serves all sessions.
type Bank struct {
	questions []model.Question
}

// Load parses a CSV question source. The source must carry a header row with
// "prompt" and "expected_answer" columns; anything else fails with ErrSchema.
func Load(r io.Reader) (*Bank, error) {
	gocsv.FailIfUnmatchedStructTags = true

	var rows []*model.Question
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no questions found", ErrSchema)
	}

	questions := make([]model.Question, 0, len(rows))
	for i, row := range rows {
		if strings.TrimSpace(row.Prompt) == "" || strings.TrimSpace(row.ExpectedAnswer) == "" {
			return nil, fmt.Errorf("%w: row %d is missing prompt or expected_answer", ErrSchema, i+1)
		}
		q := *row
		q.Index = len(questions)
		questions = append(questions, q)
	}

	return &Bank{questions: questions}, nil
}

// LoadFile opens and parses a CSV question file.
func LoadFile(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Question returns the question at the given bank index.
func (b *Bank) Question(i int) (model.Question, bool) {
	if i < 0 || i >= len(b.questions) {
		return model.Question{}, false
	}
	return b.questions[i], true
}

// Sample draws one question index uniformly at random from the indices not in
// excluding. Returns false when no eligible question remains. The bank itself
// is stateless; without-replacement semantics come from the exclusion set the
// session maintains.
func (b *Bank) Sample(rng *rand.Rand, excluding map[int]struct{}) (int, bool) {
	eligible := make([]int, 0, len(b.questions))
	for i := range b.questions {
		if _, skip := excluding[i]; !skip {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return 0, false
	}
	return eligible[rng.Intn(len(eligible))], true
}
