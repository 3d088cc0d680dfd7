// Package tokenizer turns raw review text into the fixed-length integer
// sequences the scoring model expects.
//
// Sequence policy (fixed, relied on by attribution bookkeeping): inputs
// longer than maxlen keep their FIRST maxlen tokens (back truncation);
// shorter inputs are LEFT-padded with the padding index, matching the
// pre-padding convention the model was trained with.
package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/crimson-sun/verdict/internal/model"
)

// Tokenizer maps text to ID sequences over an immutable Vocabulary.
// Safe for concurrent use.
type Tokenizer struct {
	vocab *Vocabulary
}

// NewTokenizer creates a Tokenizer over the given vocabulary.
func NewTokenizer(v *Vocabulary) *Tokenizer {
	return &Tokenizer{vocab: v}
}

// Preprocess normalizes text and builds the maxlen-length ID sequence.
// It returns the sequence and the original (pre-pad, pre-truncate) word
// list; the caller's token count is len(words). Text that normalizes to
// zero words is legal and yields the all-padding sequence. The only
// rejected input is non-text (invalid UTF-8).
func (t *Tokenizer) Preprocess(text string, maxlen int) (seq []int64, words []string, err error) {
	if !utf8.ValidString(text) {
		return nil, nil, &model.InvalidInputError{Field: "text", Reason: "not valid UTF-8"}
	}
	words = Normalize(text)
	seq, err = t.Encode(words, maxlen)
	if err != nil {
		return nil, nil, err
	}
	return seq, words, nil
}

// Encode builds the fixed-length sequence for an already-normalized word
// list. Used directly by the attribution engine to re-encode perturbed
// lists under the same truncation and padding policy.
func (t *Tokenizer) Encode(words []string, maxlen int) ([]int64, error) {
	if maxlen < 1 {
		return nil, &model.ConfigurationError{Field: "maxlen", Value: maxlen, Reason: "must be at least 1"}
	}
	if len(words) > maxlen {
		words = words[:maxlen]
	}

	seq := make([]int64, maxlen)
	pad := maxlen - len(words)
	for i := 0; i < pad; i++ {
		seq[i] = t.vocab.padID
	}
	for i, w := range words {
		seq[pad+i] = t.vocab.Lookup(w)
	}
	return seq, nil
}

// Normalize lowercases, strips combining accents, and splits on
// non-alphanumeric boundaries. A token is a maximal run of Unicode letters
// and digits; punctuation is a separator and never becomes a token.
func Normalize(text string) []string {
	text = strings.ToLower(text)
	text = stripAccents(text)
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// stripAccents removes combining diacritical marks after NFD normalization.
func stripAccents(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range norm.NFD.String(text) {
		if unicode.In(r, unicode.Mn) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
