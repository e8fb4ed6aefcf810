package providers

// NewOpenRouter creates the OpenRouter adapter. OpenRouter requires
// attribution headers alongside the OpenAI chat format.
func NewOpenRouter(cfg Config) *ChatAdapter {
	cfg.Name = "openrouter"
	cfg.RequiresAPIKey = true
	if cfg.ExtraHeaders == nil {
		cfg.ExtraHeaders = map[string]string{
			"HTTP-Referer": "https://github.com/promptpulse/promptpulse",
			"X-Title":      "PromptPulse",
		}
	}
	return NewChatAdapter(cfg)
}

// NewLlama creates the Llama adapter. It reaches Llama models through an
// OpenRouter-compatible endpoint with its own key and pricing, so the wire
// handling is the plain chat adapter.
func NewLlama(cfg Config) *ChatAdapter {
	cfg.Name = "llama"
	cfg.RequiresAPIKey = true
	return NewChatAdapter(cfg)
}
