package verdict_test

import (
	"context"
	"errors"
	"testing"

	"github.com/crimson-sun/verdict/pkg/verdict"
)

// presenceScorer returns a high probability when the token ID for "good"
// (52 in the testdata vocabulary) appears in the sequence.
type presenceScorer struct{}

func (presenceScorer) Score(_ context.Context, seq []int64) (float64, error) {
	for _, id := range seq {
		if id == 52 {
			return 0.9, nil
		}
	}
	return 0.1, nil
}

func newTestVerdict(t *testing.T, opts ...verdict.Option) *verdict.Verdict {
	t.Helper()
	opts = append([]verdict.Option{
		verdict.WithVocabPath("testdata/vocab.json"),
		verdict.WithScorer(presenceScorer{}),
		verdict.WithMaxlen(8),
	}, opts...)
	v, err := verdict.New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { v.Close() })
	return v
}

func TestAnalyze(t *testing.T) {
	v := newTestVerdict(t)

	res, err := v.Analyze(context.Background(), "good movie")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !res.Positive() {
		t.Errorf("sentiment = %s, want Positive", res.Sentiment)
	}
	if res.Prediction != 0.9 {
		t.Errorf("prediction = %v, want 0.9", res.Prediction)
	}
	if res.TokenCount != 2 {
		t.Errorf("token count = %d, want 2", res.TokenCount)
	}
	if len(res.TopTokens) != 2 {
		t.Fatalf("top tokens = %d, want 2", len(res.TopTokens))
	}
	if res.TopTokens[0].Token != "good" {
		t.Errorf("top token = %q, want %q", res.TopTokens[0].Token, "good")
	}
	if res.TopTokens[0].Delta != 0.8 {
		t.Errorf("top delta = %v, want 0.8", res.TopTokens[0].Delta)
	}
	if res.MaxlenUsed != 8 {
		t.Errorf("maxlen used = %d, want 8", res.MaxlenUsed)
	}
}

func TestAnalyzeThresholdOption(t *testing.T) {
	v := newTestVerdict(t, verdict.WithThreshold(0.95))

	res, err := v.Analyze(context.Background(), "good movie")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Positive() {
		t.Errorf("sentiment = %s, want Negative at threshold 0.95", res.Sentiment)
	}
	if res.Threshold != 0.95 {
		t.Errorf("threshold = %v, want 0.95", res.Threshold)
	}
}

func TestAnalyzeInvalidInput(t *testing.T) {
	v := newTestVerdict(t)

	if _, err := v.Analyze(context.Background(), "broken \xff byte"); err == nil {
		t.Fatal("expected error for invalid UTF-8 input")
	}
}

func TestAnalyzeBatch(t *testing.T) {
	v := newTestVerdict(t)

	results, err := v.AnalyzeBatch(context.Background(), []string{"good movie", "bad movie"})
	if err != nil {
		t.Fatalf("AnalyzeBatch: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if !results[0].Positive() {
		t.Errorf("first sentiment = %s, want Positive", results[0].Sentiment)
	}
	if results[1].Positive() {
		t.Errorf("second sentiment = %s, want Negative", results[1].Sentiment)
	}
}

func TestAnalyzeBatchStopsOnFailure(t *testing.T) {
	v := newTestVerdict(t)

	_, err := v.AnalyzeBatch(context.Background(), []string{"good movie", "broken \xff"})
	if err == nil {
		t.Fatal("expected batch failure")
	}
}

func TestNewMissingVocab(t *testing.T) {
	_, err := verdict.New(
		verdict.WithVocabPath("testdata/no-such-vocab.json"),
		verdict.WithScorer(presenceScorer{}),
	)
	if err == nil {
		t.Fatal("expected error for missing vocabulary file")
	}
}

func TestScorerErrorsPropagate(t *testing.T) {
	fail := errors.New("oracle down")
	v, err := verdict.New(
		verdict.WithVocabPath("testdata/vocab.json"),
		verdict.WithScorer(scorerFunc(func(context.Context, []int64) (float64, error) {
			return 0, fail
		})),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer v.Close()

	if _, err := v.Analyze(context.Background(), "good movie"); !errors.Is(err, fail) {
		t.Errorf("Analyze error = %v, want wrapped %v", err, fail)
	}
}

type scorerFunc func(context.Context, []int64) (float64, error)

func (f scorerFunc) Score(ctx context.Context, seq []int64) (float64, error) {
	return f(ctx, seq)
}
