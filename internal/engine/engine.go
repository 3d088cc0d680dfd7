// Package engine orchestrates the preprocess → attribute → assemble
// pipeline for single classification requests.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/crimson-sun/verdict/internal/engine/attributor"
	"github.com/crimson-sun/verdict/internal/engine/tokenizer"
	"github.com/crimson-sun/verdict/internal/model"
	"github.com/crimson-sun/verdict/internal/report"
)

// Request is a single classification request. Maxlen and Threshold are
// per-request knobs, not build-time constants.
type Request struct {
	Text      string
	Maxlen    int
	Threshold float64
}

// Options tune report presentation and request execution.
type Options struct {
	TopN          int           // ranked entries surfaced in the report; 0 = default
	DisplayTokens int           // diagnostic token echo cap; 0 = default
	Timeout       time.Duration // per-request deadline over all oracle calls; 0 = none
}

// Engine wires the tokenizer, the attribution engine, and report assembly.
// Safe for concurrent use; per-request state is independently owned.
type Engine struct {
	tok  *tokenizer.Tokenizer
	attr *attributor.Engine
	opts Options
}

// New creates an Engine from its components.
func New(tok *tokenizer.Tokenizer, attr *attributor.Engine, opts Options) *Engine {
	return &Engine{tok: tok, attr: attr, opts: opts}
}

// Process classifies one review and produces its explanation report.
// Parameter validation happens before any oracle call; on timeout or oracle
// failure the whole request fails and no partial report is produced.
func (e *Engine) Process(ctx context.Context, req Request) (model.Report, error) {
	if req.Threshold < 0 || req.Threshold > 1 {
		return model.Report{}, &model.ConfigurationError{Field: "threshold", Value: req.Threshold, Reason: "must be in [0,1]"}
	}

	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	_, words, err := e.tok.Preprocess(req.Text, req.Maxlen)
	if err != nil {
		return model.Report{}, err
	}

	start := time.Now()
	base, entries, err := e.attr.Attribute(ctx, words, req.Maxlen)
	if err != nil {
		return model.Report{}, err
	}

	rep, err := report.Assemble(req.Text, base, entries, words, report.Params{
		Threshold:     req.Threshold,
		Maxlen:        req.Maxlen,
		TopN:          e.opts.TopN,
		DisplayTokens: e.opts.DisplayTokens,
	})
	if err != nil {
		return model.Report{}, err
	}

	slog.Debug("classified",
		"tokens", len(words),
		"score", base,
		"sentiment", rep.Sentiment,
		"oracle_calls", 1+len(entries),
		"duration", time.Since(start))
	return rep, nil
}

// ProcessBatch classifies a slice of requests sequentially.
func (e *Engine) ProcessBatch(ctx context.Context, reqs []Request) ([]model.Report, error) {
	reports := make([]model.Report, 0, len(reqs))
	for _, req := range reqs {
		rep, err := e.Process(ctx, req)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}
