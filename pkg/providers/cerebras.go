package providers

// NewCerebras creates the Cerebras adapter. Cerebras speaks the OpenAI chat
// format and reports usage on every response.
func NewCerebras(cfg Config) *ChatAdapter {
	cfg.Name = "cerebras"
	cfg.RequiresAPIKey = true
	return NewChatAdapter(cfg)
}
