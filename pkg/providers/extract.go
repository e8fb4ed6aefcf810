package providers

// Upstream providers nest the completion text differently. Rather than
// walking the decoded JSON dynamically, the known shapes are tried as an
// explicit, ordered list of strategies so the fallback order is visible and
// testable per provider.

// TextStrategy names one known response shape.
type TextStrategy string

const (
	// StrategyChatMessage reads choices[0].message.content (OpenAI chat format,
	// used by Cerebras, OpenRouter, and Llama).
	StrategyChatMessage TextStrategy = "choices[0].message.content"

	// StrategyChatText reads choices[0].text (legacy completion format).
	StrategyChatText TextStrategy = "choices[0].text"

	// StrategyOutput reads output[0].content (responses-style format).
	StrategyOutput TextStrategy = "output[0].content"

	// StrategyResult reads the top-level result field (MCP gateway format).
	StrategyResult TextStrategy = "result"

	// StrategyNone means no strategy matched; the text is empty.
	StrategyNone TextStrategy = "none"
)

// wireResponse captures every known provider response shape at once. Fields
// that a given provider does not send simply stay zero.
type wireResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Text string `json:"text"`
	} `json:"choices"`
	Output []struct {
		Content string `json:"content"`
	} `json:"output"`
	Result string     `json:"result"`
	Usage  *wireUsage `json:"usage"`
}

// wireUsage is the provider-reported token usage block.
type wireUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// textStrategies is the fixed priority order in which response shapes are
// tried. First non-empty match wins.
var textStrategies = []struct {
	name    TextStrategy
	extract func(*wireResponse) (string, bool)
}{
	{StrategyChatMessage, func(r *wireResponse) (string, bool) {
		if len(r.Choices) > 0 && r.Choices[0].Message.Content != "" {
			return r.Choices[0].Message.Content, true
		}
		return "", false
	}},
	{StrategyChatText, func(r *wireResponse) (string, bool) {
		if len(r.Choices) > 0 && r.Choices[0].Text != "" {
			return r.Choices[0].Text, true
		}
		return "", false
	}},
	{StrategyOutput, func(r *wireResponse) (string, bool) {
		if len(r.Output) > 0 && r.Output[0].Content != "" {
			return r.Output[0].Content, true
		}
		return "", false
	}},
	{StrategyResult, func(r *wireResponse) (string, bool) {
		if r.Result != "" {
			return r.Result, true
		}
		return "", false
	}},
}

// extractText returns the completion text from the first matching strategy,
// or an empty string with StrategyNone when nothing matched.
func extractText(resp *wireResponse) (string, TextStrategy) {
	for _, s := range textStrategies {
		if text, ok := s.extract(resp); ok {
			return text, s.name
		}
	}
	return "", StrategyNone
}
