package verdict

import (
	"path/filepath"
	"time"
)

type options struct {
	modelDir      string
	modelPath     string
	vocabPath     string
	maxlen        int
	threshold     float64
	topN          int
	displayTokens int
	workers       int
	timeout       time.Duration
	scorer        Scorer
}

// Option configures a Verdict instance.
type Option func(*options)

// WithModelDir sets the directory containing model files.
// Expects: sentiment.onnx, word_index.json.
func WithModelDir(dir string) Option {
	return func(o *options) {
		o.modelDir = dir
	}
}

// WithModelPaths sets explicit paths for the model and vocabulary files.
// Use this when model files aren't in the default directory layout.
func WithModelPaths(model, vocab string) Option {
	return func(o *options) {
		o.modelPath = model
		o.vocabPath = vocab
	}
}

// WithVocabPath sets the vocabulary file path alone. Combine with
// WithScorer when no ONNX model file is involved.
func WithVocabPath(path string) Option {
	return func(o *options) {
		o.vocabPath = path
	}
}

// WithMaxlen sets the fixed input sequence length. Default: 500.
func WithMaxlen(n int) Option {
	return func(o *options) {
		o.maxlen = n
	}
}

// WithThreshold sets the decision threshold: scores at or above it are
// Positive. Default: 0.5.
func WithThreshold(t float64) Option {
	return func(o *options) {
		o.threshold = t
	}
}

// WithTopN sets how many attributions are surfaced per result. Default: 20.
func WithTopN(n int) Option {
	return func(o *options) {
		o.topN = n
	}
}

// WithWorkers sets the number of concurrent attribution calls. Default: 4.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithTimeout bounds each Analyze call. Zero means no deadline. Default: 0.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithScorer injects a custom scoring oracle instead of loading the ONNX
// model. Useful for testing and for models served out of process. The
// model file options are ignored when a scorer is set.
func WithScorer(s Scorer) Option {
	return func(o *options) {
		o.scorer = s
	}
}

func defaultOptions() options {
	return options{
		maxlen:        500,
		threshold:     0.5,
		topN:          20,
		displayTokens: 60,
		workers:       4,
	}
}

// resolvePaths determines the model and vocabulary file paths from the
// configured options. Explicit paths take precedence over modelDir.
func resolvePaths(o options) (model, vocab string) {
	dir := o.modelDir
	if dir == "" {
		dir = "models"
	}
	model = o.modelPath
	if model == "" {
		model = filepath.Join(dir, "sentiment.onnx")
	}
	vocab = o.vocabPath
	if vocab == "" {
		vocab = filepath.Join(dir, "word_index.json")
	}
	return model, vocab
}
