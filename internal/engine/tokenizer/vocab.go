package tokenizer

import (
	"encoding/json"
	"fmt"
	"os"
)

// Vocabulary maps case-normalized words to non-negative integer indices,
// with reserved indices for unknown words and padding. Built once at
// process start and read-only afterward, so concurrent requests share it
// without locking.
type Vocabulary struct {
	words map[string]int64
	unkID int64
	padID int64
}

// vocabFile is the on-disk JSON layout. IndexOffset is added to every word
// index at load time: IMDB-style word indexes ship 1-based and are shifted
// by 3 to clear the reserved range.
type vocabFile struct {
	PaddingIndex int64            `json:"padding_index"`
	UnknownIndex int64            `json:"unknown_index"`
	IndexOffset  int64            `json:"index_offset"`
	Words        map[string]int64 `json:"words"`
}

// Load reads a vocabulary from a JSON file.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vocab: %w", err)
	}

	var f vocabFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("vocab: parse %s: %w", path, err)
	}
	if len(f.Words) == 0 {
		return nil, fmt.Errorf("vocab: file has no words: %s", path)
	}

	words := make(map[string]int64, len(f.Words))
	for w, id := range f.Words {
		words[w] = id + f.IndexOffset
	}
	return New(words, f.UnknownIndex, f.PaddingIndex)
}

// New builds a Vocabulary from an already-constructed word index plus the
// two reserved indices. Word indices must not collide with the reserved
// ones.
func New(words map[string]int64, unkID, padID int64) (*Vocabulary, error) {
	if unkID < 0 || padID < 0 {
		return nil, fmt.Errorf("vocab: reserved indices must be non-negative (unk=%d, pad=%d)", unkID, padID)
	}
	if unkID == padID {
		return nil, fmt.Errorf("vocab: unknown and padding indices collide at %d", unkID)
	}
	for w, id := range words {
		if id < 0 {
			return nil, fmt.Errorf("vocab: word %q has negative index %d", w, id)
		}
		if id == unkID || id == padID {
			return nil, fmt.Errorf("vocab: word %q uses reserved index %d", w, id)
		}
	}
	return &Vocabulary{words: words, unkID: unkID, padID: padID}, nil
}

// Lookup returns the index for the given word, or the unknown index if the
// word is not in the vocabulary. Lookup never fails a request.
func (v *Vocabulary) Lookup(word string) int64 {
	if id, ok := v.words[word]; ok {
		return id
	}
	return v.unkID
}

// PaddingID returns the reserved padding index.
func (v *Vocabulary) PaddingID() int64 { return v.padID }

// UnknownID returns the reserved unknown-word index.
func (v *Vocabulary) UnknownID() int64 { return v.unkID }

// Size returns the number of words in the vocabulary.
func (v *Vocabulary) Size() int { return len(v.words) }
