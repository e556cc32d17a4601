package questionbank

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

const sampleCSV = `prompt,expected_answer
"What is VLOOKUP?","A lookup over the first column of a range"
"What is a Pivot Table?","A summarization tool for large datasets"
"What does TRIM do?","Removes stray spaces from text"
`

func TestLoad(t *testing.T) {
	bank, err := Load(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if bank.Len() != 3 {
		t.Fatalf("expected 3 questions, got %d", bank.Len())
	}

	q, ok := bank.Question(1)
	if !ok {
		t.Fatal("expected question at index 1")
	}
	if q.Index != 1 {
		t.Errorf("expected index 1, got %d", q.Index)
	}
	if q.Prompt != "What is a Pivot Table?" {
		t.Errorf("unexpected prompt: %q", q.Prompt)
	}
}

func TestLoadMissingColumn(t *testing.T) {
	_, err := Load(strings.NewReader("prompt\n\"Only prompts here\"\n"))
	if !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	_, err := Load(strings.NewReader("prompt,expected_answer\n"))
	if !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema for empty file, got %v", err)
	}
}

func TestLoadBlankField(t *testing.T) {
	csv := "prompt,expected_answer\n\"What is TRIM?\",\"  \"\n"
	_, err := Load(strings.NewReader(csv))
	if !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema for blank expected_answer, got %v", err)
	}
}

func TestQuestionOutOfRange(t *testing.T) {
	bank, err := Load(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, ok := bank.Question(-1); ok {
		t.Error("expected no question at index -1")
	}
	if _, ok := bank.Question(bank.Len()); ok {
		t.Error("expected no question past the end")
	}
}

func TestSampleExcludes(t *testing.T) {
	bank, err := Load(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	excluding := map[int]struct{}{0: {}, 2: {}}
	for i := 0; i < 50; i++ {
		idx, ok := bank.Sample(rng, excluding)
		if !ok {
			t.Fatal("expected an eligible question")
		}
		if idx != 1 {
			t.Fatalf("sampled excluded index %d", idx)
		}
	}
}

func TestSampleExhausted(t *testing.T) {
	bank, err := Load(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	excluding := map[int]struct{}{0: {}, 1: {}, 2: {}}
	if _, ok := bank.Sample(rng, excluding); ok {
		t.Fatal("expected no eligible question")
	}
}

func TestSampleDeterministicWithFixedSeed(t *testing.T) {
	bank, err := Load(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	draw := func(seed int64) []int {
		rng := rand.New(rand.NewSource(seed))
		excluding := make(map[int]struct{})
		var order []int
		for {
			idx, ok := bank.Sample(rng, excluding)
			if !ok {
				break
			}
			order = append(order, idx)
			excluding[idx] = struct{}{}
		}
		return order
	}

	first := draw(42)
	second := draw(42)
	if len(first) != bank.Len() || len(second) != bank.Len() {
		t.Fatalf("expected full draws, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("draws diverged at position %d: %v vs %v", i, first, second)
		}
	}
}
