package stdout

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/crimson-sun/verdict/internal/model"
	"github.com/crimson-sun/verdict/internal/output"
)

func testReport() model.Report {
	all := []model.Attribution{
		{Token: "good", Position: 0, Delta: 0.8, Rank: 1},
		{Token: "movie", Position: 1, Delta: 0.0, Rank: 2},
	}
	return model.Report{
		Input:               "good movie",
		Prediction:          0.9,
		Sentiment:           model.Positive,
		TopTokenImportances: all[:1],
		MaxlenUsed:          4,
		Threshold:           0.5,
		TokenCount:          2,
		DisplayedTokens:     []string{"good", "movie"},
		AllAttributions:     all,
	}
}

// captureStdout redirects os.Stdout to capture output.
func captureStdout(fn func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestOutputCompactJSON(t *testing.T) {
	result := captureStdout(func() {
		out := New(output.Top, false)
		out.Write(context.Background(), testReport())
	})

	// Single line (NDJSON).
	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if m["sentiment"] != "Positive" {
		t.Fatalf("expected sentiment=Positive, got %v", m["sentiment"])
	}
}

func TestOutputPrettyJSON(t *testing.T) {
	result := captureStdout(func() {
		out := New(output.Top, true)
		out.Write(context.Background(), testReport())
	})

	if !strings.Contains(result, "  ") {
		t.Fatal("expected indented output for pretty mode")
	}
	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected multi-line pretty output, got %d lines", len(lines))
	}
}

func TestOutputFullDetail(t *testing.T) {
	result := captureStdout(func() {
		out := New(output.Full, false)
		out.Write(context.Background(), testReport())
	})

	var m struct {
		Importances []any `json:"top_token_importances"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(result)), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(m.Importances) != 2 {
		t.Errorf("full detail importances = %d, want 2", len(m.Importances))
	}
}
