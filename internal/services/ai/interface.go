// File: internal/services/ai/interface.go
package ai

import "context"

// ProviderStatus represents AI provider health
type ProviderStatus struct {
	IsHealthy bool
	Message   string
}

// CompletionProvider handles chat completions against the external
// vendor. The system prompt is fixed by the caller per conversation
// surface, not by the provider.
type CompletionProvider interface {
	GetCompletion(ctx context.Context, systemPrompt, userMessage string) (string, error)
	HealthCheck(ctx context.Context) error
	GetStatus(ctx context.Context) ProviderStatus
}
