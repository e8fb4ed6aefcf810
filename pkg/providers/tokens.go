package providers

import (
	"math"
	"strings"
)

// tokensPerWord is the heuristic ratio used when a provider reports no usage.
// English text averages roughly 1.3 tokens per whitespace-separated word.
const tokensPerWord = 1.3

// EstimateTokens approximates a token count from whitespace-separated words.
// It is deterministic and intentionally crude; provider-reported usage always
// takes precedence when present.
func EstimateTokens(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) * tokensPerWord))
}
