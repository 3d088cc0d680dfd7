package model

// Label is the binary sentiment decision for a review.
type Label string

const (
	Positive Label = "Positive"
	Negative Label = "Negative"
)

// Attribution records how much a single token pushed the score toward the
// positive class. Delta is the base score minus the score with the token
// removed: positive delta means the token pulled the prediction up.
// Position indexes into the original (pre-pad, pre-truncate) token list.
type Attribution struct {
	Token    string  `json:"token"`
	Position int     `json:"position"`
	Delta    float64 `json:"delta"`
	Rank     int     `json:"-"`
}

// Report is the structured explanation for one classified review.
// The JSON field order is a compatibility contract with downstream report
// consumers; do not reorder fields.
type Report struct {
	Input               string        `json:"input"`
	Prediction          float64       `json:"prediction"`
	Sentiment           Label         `json:"sentiment"`
	TopTokenImportances []Attribution `json:"top_token_importances"`
	MaxlenUsed          int           `json:"maxlen_used"`
	Threshold           float64       `json:"threshold"`
	TokenCount          int           `json:"token_count"`
	DisplayedTokens     []string      `json:"displayed_tokens"`

	// AllAttributions retains every computed delta, ranked. Outputs running
	// at Full detail substitute it for the top-N view before encoding.
	AllAttributions []Attribution `json:"-"`
}
