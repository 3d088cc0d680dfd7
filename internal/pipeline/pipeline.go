// Package pipeline runs batch classification: one review per input line,
// one report per review, written to a configured output.
package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/crimson-sun/verdict/internal/engine"
	"github.com/crimson-sun/verdict/internal/output"
)

const maxLineBytes = 1024 * 1024 // 1MB per review line

// Pipeline connects a line source, the classification engine, and an output.
type Pipeline struct {
	engine    *engine.Engine
	out       output.Output
	maxlen    int
	threshold float64
}

// New creates a Pipeline. maxlen and threshold apply to every line.
func New(eng *engine.Engine, out output.Output, maxlen int, threshold float64) *Pipeline {
	return &Pipeline{
		engine:    eng,
		out:       out,
		maxlen:    maxlen,
		threshold: threshold,
	}
}

// Run reads reviews from r line by line, classifies each, and writes the
// report. Blank lines are skipped. Any classification or output error
// aborts the run: a half-processed batch is reported as failed rather
// than silently truncated.
func (p *Pipeline) Run(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		rep, err := p.engine.Process(ctx, engine.Request{
			Text:      line,
			Maxlen:    p.maxlen,
			Threshold: p.threshold,
		})
		if err != nil {
			return fmt.Errorf("pipeline process: %w", err)
		}
		if err := p.out.Write(ctx, rep); err != nil {
			return fmt.Errorf("pipeline output: %w", err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("pipeline read: %w", err)
	}
	return nil
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	return p.out.Close()
}
