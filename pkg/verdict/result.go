package verdict

// TokenImportance is a single leave-one-out attribution: how much the
// prediction dropped when the token at Position was removed.
type TokenImportance struct {
	Token    string  `json:"token"`
	Position int     `json:"position"`
	Delta    float64 `json:"delta"`
}

// Result is a classified review with its attribution breakdown.
type Result struct {
	Input           string            `json:"input"`
	Prediction      float64           `json:"prediction"`
	Sentiment       string            `json:"sentiment"`
	TopTokens       []TokenImportance `json:"top_token_importances"`
	AllTokens       []TokenImportance `json:"-"`
	MaxlenUsed      int               `json:"maxlen_used"`
	Threshold       float64           `json:"threshold"`
	TokenCount      int               `json:"token_count"`
	DisplayedTokens []string          `json:"displayed_tokens"`
}

// Positive reports whether the review was classified as positive sentiment.
func (r Result) Positive() bool {
	return r.Sentiment == "Positive"
}
