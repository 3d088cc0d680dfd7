package report

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/crimson-sun/verdict/internal/model"
)

func testEntries(n int) []model.Attribution {
	entries := make([]model.Attribution, n)
	for i := range entries {
		entries[i] = model.Attribution{
			Token:    "tok",
			Position: i,
			Delta:    float64(n-i) * 0.01,
			Rank:     i + 1,
		}
	}
	return entries
}

func TestDecideInclusiveBoundary(t *testing.T) {
	tests := []struct {
		name      string
		score     float64
		threshold float64
		want      model.Label
	}{
		{"above", 0.9, 0.5, model.Positive},
		{"below", 0.1, 0.5, model.Negative},
		{"exactly at threshold", 0.5, 0.5, model.Positive},
		{"zero threshold", 0.0, 0.0, model.Positive},
		{"threshold one", 0.999, 1.0, model.Negative},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decide(tc.score, tc.threshold); got != tc.want {
				t.Errorf("Decide(%v, %v) = %v, want %v", tc.score, tc.threshold, got, tc.want)
			}
		})
	}
}

func TestAssembleRejectsBadThreshold(t *testing.T) {
	for _, th := range []float64{-0.1, 1.1} {
		_, err := Assemble("x", 0.5, nil, nil, Params{Threshold: th, Maxlen: 10})
		var ce *model.ConfigurationError
		if !errors.As(err, &ce) {
			t.Errorf("threshold=%v: got %v, want ConfigurationError", th, err)
		}
	}
}

func TestAssembleTopNTruncation(t *testing.T) {
	entries := testEntries(30)
	rep, err := Assemble("x", 0.8, entries, nil, Params{Threshold: 0.5, Maxlen: 100})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(rep.TopTokenImportances) != DefaultTopN {
		t.Errorf("top entries = %d, want default %d", len(rep.TopTokenImportances), DefaultTopN)
	}
	// The full set is retained for callers that want every delta.
	if len(rep.AllAttributions) != 30 {
		t.Errorf("all entries = %d, want 30", len(rep.AllAttributions))
	}

	rep, err = Assemble("x", 0.8, entries, nil, Params{Threshold: 0.5, Maxlen: 100, TopN: 5})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(rep.TopTokenImportances) != 5 {
		t.Errorf("top entries = %d, want 5", len(rep.TopTokenImportances))
	}
}

func TestAssembleDiagnostics(t *testing.T) {
	words := make([]string, 80)
	for i := range words {
		words[i] = "w"
	}
	rep, err := Assemble("text", 0.3, nil, words, Params{Threshold: 0.5, Maxlen: 500})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if rep.TokenCount != 80 {
		t.Errorf("TokenCount = %d, want 80", rep.TokenCount)
	}
	if len(rep.DisplayedTokens) != DefaultDisplayTokens {
		t.Errorf("DisplayedTokens = %d, want %d", len(rep.DisplayedTokens), DefaultDisplayTokens)
	}
	if rep.Sentiment != model.Negative {
		t.Errorf("Sentiment = %v, want Negative", rep.Sentiment)
	}
	if rep.MaxlenUsed != 500 {
		t.Errorf("MaxlenUsed = %d, want 500", rep.MaxlenUsed)
	}
}

func TestCanonicalFieldOrder(t *testing.T) {
	entries := []model.Attribution{
		{Token: "good", Position: 0, Delta: 0.8, Rank: 1},
	}
	rep, err := Assemble("good movie", 0.9, entries, []string{"good", "movie"},
		Params{Threshold: 0.5, Maxlen: 4})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	data, err := json.Marshal(rep)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// Key order is the compatibility contract for downstream consumers.
	want := `{"input":"good movie","prediction":0.9,"sentiment":"Positive",` +
		`"top_token_importances":[{"token":"good","position":0,"delta":0.8}],` +
		`"maxlen_used":4,"threshold":0.5,"token_count":2,` +
		`"displayed_tokens":["good","movie"]}`
	if string(data) != want {
		t.Errorf("canonical JSON mismatch\n  want: %s\n  got:  %s", want, data)
	}
	if strings.Contains(string(data), "rank") {
		t.Error("rank must not leak into the interchange format")
	}
}

func TestAssembleDeterministic(t *testing.T) {
	entries := testEntries(3)
	words := []string{"a", "b", "c"}

	a, err := Assemble("abc", 0.42, entries, words, Params{Threshold: 0.5, Maxlen: 10})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	b, err := Assemble("abc", 0.42, entries, words, Params{Threshold: 0.5, Maxlen: 10})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	if string(ja) != string(jb) {
		t.Error("identical inputs produced different serialized reports")
	}
}
