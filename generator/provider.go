package generator

import "fmt"

// New picks the backend named by cfg.Provider. An empty provider is the simulator.
func New(cfg Settings) (Generator, error) {
	switch cfg.Provider {
	case "", "mock":
		return NewSimulator(cfg.Pacing), nil
	case "openai":
		return NewOpenAIFromSettings(&cfg)
	case "deepseek":
		// DeepSeek speaks the OpenAI wire format; base_url points at its endpoint.
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("generator provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return NewOpenAIFromSettings(&cfg)
	default:
		return nil, fmt.Errorf("generator provider %s not supported", cfg.Provider)
	}
}
