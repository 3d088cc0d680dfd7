// Package attributor computes leave-one-out token attributions: for each
// token in the original list, the model is rescored with that token removed,
// and the score movement is recorded as the token's contribution.
package attributor

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/crimson-sun/verdict/internal/engine/oracle"
	"github.com/crimson-sun/verdict/internal/engine/tokenizer"
	"github.com/crimson-sun/verdict/internal/model"
)

// DefaultWorkers bounds concurrent oracle calls per request.
const DefaultWorkers = 4

// Engine computes leave-one-out attributions against an opaque scorer.
// Exactly 1 + min(len(words), maxlen) oracle calls are issued per request:
// one base call plus one per attributable position. Safe for concurrent use.
type Engine struct {
	tok     *tokenizer.Tokenizer
	scorer  oracle.Scorer
	workers int
}

// New creates an attribution engine. workers bounds concurrent oracle
// calls; values below 1 fall back to DefaultWorkers.
func New(tok *tokenizer.Tokenizer, scorer oracle.Scorer, workers int) *Engine {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Engine{tok: tok, scorer: scorer, workers: workers}
}

// Attribute scores the full sequence once, then rescores with each of the
// first min(len(words), maxlen) tokens removed. Positions beyond maxlen
// were truncated away and never reached the oracle, so they receive no
// attribution. Perturbed lists are fully re-encoded under the tokenizer's
// truncation/padding policy, so for over-length inputs a removal admits one
// previously-truncated token into the window.
//
// Entries come back ranked: |delta| descending, ties broken by original
// position ascending. Oracle calls are dispatched concurrently but results
// are collected by position, so the ranking never depends on completion
// order. Any oracle failure fails the whole request; partial attributions
// are never returned.
func (e *Engine) Attribute(ctx context.Context, words []string, maxlen int) (float64, []model.Attribution, error) {
	seq, err := e.tok.Encode(words, maxlen)
	if err != nil {
		return 0, nil, err
	}

	baseScore, err := e.score(ctx, seq)
	if err != nil {
		return 0, nil, &model.OracleError{Position: -1, Err: err}
	}

	n := min(len(words), maxlen)
	entries := make([]model.Attribution, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			perturbed := make([]string, 0, len(words)-1)
			perturbed = append(perturbed, words[:i]...)
			perturbed = append(perturbed, words[i+1:]...)

			pseq, err := e.tok.Encode(perturbed, maxlen)
			if err != nil {
				return err
			}
			without, err := e.score(gctx, pseq)
			if err != nil {
				return &model.OracleError{Position: i, Err: err}
			}
			entries[i] = model.Attribution{
				Token:    words[i],
				Position: i,
				Delta:    baseScore - without,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, nil, err
	}

	rank(entries)
	return baseScore, entries, nil
}

// rank sorts entries by |delta| descending, ties by position ascending, and
// assigns 1-based ranks.
func rank(entries []model.Attribution) {
	sort.Slice(entries, func(i, j int) bool {
		di, dj := math.Abs(entries[i].Delta), math.Abs(entries[j].Delta)
		if di != dj {
			return di > dj
		}
		return entries[i].Position < entries[j].Position
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

func (e *Engine) score(ctx context.Context, seq []int64) (float64, error) {
	p, err := e.scorer.Score(ctx, seq)
	if err != nil {
		return 0, err
	}
	if err := oracle.CheckProbability(p); err != nil {
		return 0, err
	}
	return p, nil
}
