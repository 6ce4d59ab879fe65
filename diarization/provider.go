package diarization

import (
	"context"

	"github.com/skillsenselab/meetscribe/provider"
)

// Provider is the interface that diarization backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Diarize sends audio for speaker diarization and returns the result.
	Diarize(ctx context.Context, req Request) (*Response, error)
}

// NewRegistry creates a new provider registry for diarization backends.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}
