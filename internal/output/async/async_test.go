package async

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/crimson-sun/verdict/internal/model"
)

type mockOutput struct {
	mu      sync.Mutex
	reports []model.Report
	closed  bool
	err     error         // if set, Write returns this
	delay   time.Duration // if >0, Write sleeps first
}

func (m *mockOutput) Write(_ context.Context, report model.Report) error {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	m.mu.Lock()
	m.reports = append(m.reports, report)
	m.mu.Unlock()
	return m.err
}

func (m *mockOutput) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

func (m *mockOutput) reportCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reports)
}

func testReport(input string) model.Report {
	return model.Report{Input: input, Prediction: 0.7, Sentiment: model.Positive}
}

func TestReportsFlowThrough(t *testing.T) {
	inner := &mockOutput{}
	a := New(inner, WithBufferSize(16))

	for i := 0; i < 10; i++ {
		if err := a.Write(context.Background(), testReport("review")); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	if got := inner.reportCount(); got != 10 {
		t.Errorf("inner received %d reports, want 10", got)
	}
	if !inner.closed {
		t.Error("inner output should be closed")
	}
}

func TestInnerErrorsGoToCallback(t *testing.T) {
	var callbackCount atomic.Int64
	inner := &mockOutput{err: errors.New("write failed")}
	a := New(inner, WithOnError(func(error) { callbackCount.Add(1) }))

	for i := 0; i < 3; i++ {
		if err := a.Write(context.Background(), testReport("review")); err != nil {
			t.Fatalf("Write should not propagate inner errors, got %v", err)
		}
	}
	a.Close()

	if got := callbackCount.Load(); got != 3 {
		t.Errorf("error callback fired %d times, want 3", got)
	}
}

func TestDropOnFull(t *testing.T) {
	inner := &mockOutput{delay: 50 * time.Millisecond}
	a := New(inner, WithBufferSize(1), WithDropOnFull())

	// Flood well past the buffer; none of these may block.
	start := time.Now()
	for i := 0; i < 20; i++ {
		a.Write(context.Background(), testReport("review"))
	}
	if elapsed := time.Since(start); elapsed > 40*time.Millisecond {
		t.Errorf("Write blocked for %v with WithDropOnFull", elapsed)
	}
	a.Close()

	if got := inner.reportCount(); got >= 20 {
		t.Errorf("expected drops, but inner received all %d reports", got)
	}
}

func TestCloseIdempotent(t *testing.T) {
	a := New(&mockOutput{})
	if err := a.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
