// Package report applies the decision threshold and assembles the
// structured explanation report from already-computed values.
package report

import (
	"github.com/crimson-sun/verdict/internal/model"
)

const (
	// DefaultTopN is how many ranked attributions the report surfaces.
	DefaultTopN = 20
	// DefaultDisplayTokens caps the diagnostic token echo.
	DefaultDisplayTokens = 60
)

// Params control decision and presentation. Zero TopN and DisplayTokens
// pick the defaults; Threshold and Maxlen are always explicit.
type Params struct {
	Threshold     float64
	Maxlen        int
	TopN          int
	DisplayTokens int
}

// Decide applies the inclusive decision rule: a score at or above the
// threshold is Positive.
func Decide(score, threshold float64) model.Label {
	if score >= threshold {
		return model.Positive
	}
	return model.Negative
}

// Assemble builds the canonical report from already-computed values. It is
// a pure post-hoc function: changing the threshold never requires
// rescoring or re-attribution. Entries must already be ranked.
func Assemble(text string, baseScore float64, entries []model.Attribution, words []string, p Params) (model.Report, error) {
	if p.Threshold < 0 || p.Threshold > 1 {
		return model.Report{}, &model.ConfigurationError{Field: "threshold", Value: p.Threshold, Reason: "must be in [0,1]"}
	}
	topN := p.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	display := p.DisplayTokens
	if display <= 0 {
		display = DefaultDisplayTokens
	}

	top := entries
	if len(top) > topN {
		top = top[:topN]
	}

	// Diagnostics reflect what the user typed, independent of truncation
	// and padding.
	displayed := words
	if len(displayed) > display {
		displayed = displayed[:display]
	}

	return model.Report{
		Input:               text,
		Prediction:          baseScore,
		Sentiment:           Decide(baseScore, p.Threshold),
		TopTokenImportances: top,
		MaxlenUsed:          p.Maxlen,
		Threshold:           p.Threshold,
		TokenCount:          len(words),
		DisplayedTokens:     displayed,
		AllAttributions:     entries,
	}, nil
}
