// Package oracle defines the capability interface to the external sentiment
// classifier and its local ONNX-backed adapter.
package oracle

import (
	"context"
	"fmt"
	"math"
)

// Scorer is the scoring oracle: a pure mapping from a fixed-length ID
// sequence to the probability of the positive class. Implementations must
// be deterministic for a fixed sequence (the attribution engine relies on
// that for delta correctness) and safe for concurrent use.
type Scorer interface {
	Score(ctx context.Context, seq []int64) (float64, error)
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(ctx context.Context, seq []int64) (float64, error)

func (f ScorerFunc) Score(ctx context.Context, seq []int64) (float64, error) {
	return f(ctx, seq)
}

// CheckProbability validates an oracle output. A score outside [0,1] or NaN
// indicates a broken oracle, not a recoverable request.
func CheckProbability(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("score %v outside [0,1]", p)
	}
	return nil
}
