package cost

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// CountTokens counts tokens with the cl100k_base encoding. When the
// encoding cannot be loaded it falls back to the rough four characters
// per token estimate.
func CountTokens(text string) int {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			encoding = enc
		}
	})
	if encoding == nil {
		return len(text) / 4
	}
	return len(encoding.Encode(text, nil, nil))
}

// outputRatio is the assumed translated/original token ratio for
// pre-translation estimates.
const outputRatio = 1.2

// EstimateChapter predicts the cost of translating text before any call
// is made.
func EstimateChapter(provider, model, text string) Estimate {
	inputTokens := CountTokens(text)
	outputTokens := int(float64(inputTokens) * outputRatio)
	e := EstimateCost(provider, model, inputTokens, outputTokens)
	e.IsEstimate = true
	return e
}
