// Package provider defines the pluggable backend pattern shared by the
// diarization, transcription, and summarize packages: a base Provider
// interface, a Factory for config-driven construction, and a generic
// Registry of named backends.
package provider

import "context"

// Provider is the base interface all collaborator backends must implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// Factory creates a provider instance from configuration.
type Factory[T Provider] func(cfg map[string]any) (T, error)
