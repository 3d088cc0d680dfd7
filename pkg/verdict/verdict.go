package verdict

import (
	"context"
	"fmt"

	"github.com/crimson-sun/verdict/internal/engine"
	"github.com/crimson-sun/verdict/internal/engine/attributor"
	"github.com/crimson-sun/verdict/internal/engine/oracle"
	"github.com/crimson-sun/verdict/internal/engine/tokenizer"
	"github.com/crimson-sun/verdict/internal/model"
)

// Scorer scores a fixed-length token ID sequence, returning a probability
// in [0,1]. Implementations must be safe for concurrent use.
type Scorer interface {
	Score(ctx context.Context, seq []int64) (float64, error)
}

// Verdict is a sentiment classification engine. It scores review text and
// attributes the decision to individual tokens via leave-one-out analysis.
// Safe for concurrent use.
type Verdict struct {
	engine    *engine.Engine
	closer    func() error
	maxlen    int
	threshold float64
}

// New creates a Verdict instance. Unless WithScorer is set, this loads the
// ONNX model and vocabulary from disk; create once, reuse across requests.
func New(opts ...Option) (*Verdict, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	modelPath, vocabPath := resolvePaths(o)

	vocab, err := tokenizer.Load(vocabPath)
	if err != nil {
		return nil, fmt.Errorf("verdict: %w", err)
	}
	tok := tokenizer.NewTokenizer(vocab)

	var scorer oracle.Scorer
	closer := func() error { return nil }
	if o.scorer != nil {
		scorer = oracle.ScorerFunc(o.scorer.Score)
	} else {
		onnx, err := oracle.NewONNX(modelPath)
		if err != nil {
			return nil, fmt.Errorf("verdict: %w", err)
		}
		scorer = onnx
		closer = onnx.Close
	}

	attr := attributor.New(tok, scorer, o.workers)
	eng := engine.New(tok, attr, engine.Options{
		TopN:          o.topN,
		DisplayTokens: o.displayTokens,
		Timeout:       o.timeout,
	})

	return &Verdict{
		engine:    eng,
		closer:    closer,
		maxlen:    o.maxlen,
		threshold: o.threshold,
	}, nil
}

// Analyze classifies a single review and returns the decision with its
// token attributions.
func (v *Verdict) Analyze(ctx context.Context, text string) (Result, error) {
	rep, err := v.engine.Process(ctx, engine.Request{
		Text:      text,
		Maxlen:    v.maxlen,
		Threshold: v.threshold,
	})
	if err != nil {
		return Result{}, err
	}
	return resultFromReport(rep), nil
}

// AnalyzeBatch classifies multiple reviews. Processing stops at the first
// failure.
func (v *Verdict) AnalyzeBatch(ctx context.Context, texts []string) ([]Result, error) {
	reqs := make([]engine.Request, len(texts))
	for i, t := range texts {
		reqs[i] = engine.Request{Text: t, Maxlen: v.maxlen, Threshold: v.threshold}
	}
	reps, err := v.engine.ProcessBatch(ctx, reqs)
	if err != nil {
		return nil, err
	}
	results := make([]Result, len(reps))
	for i, rep := range reps {
		results[i] = resultFromReport(rep)
	}
	return results, nil
}

// Close releases model resources (ONNX runtime, memory).
// Must be called when the Verdict instance is no longer needed.
func (v *Verdict) Close() error {
	return v.closer()
}

// resultFromReport converts the internal report to the public Result type.
func resultFromReport(rep model.Report) Result {
	top := make([]TokenImportance, len(rep.TopTokenImportances))
	for i, a := range rep.TopTokenImportances {
		top[i] = TokenImportance{Token: a.Token, Position: a.Position, Delta: a.Delta}
	}
	all := make([]TokenImportance, len(rep.AllAttributions))
	for i, a := range rep.AllAttributions {
		all[i] = TokenImportance{Token: a.Token, Position: a.Position, Delta: a.Delta}
	}
	return Result{
		Input:           rep.Input,
		Prediction:      rep.Prediction,
		Sentiment:       string(rep.Sentiment),
		TopTokens:       top,
		AllTokens:       all,
		MaxlenUsed:      rep.MaxlenUsed,
		Threshold:       rep.Threshold,
		TokenCount:      rep.TokenCount,
		DisplayedTokens: rep.DisplayedTokens,
	}
}
