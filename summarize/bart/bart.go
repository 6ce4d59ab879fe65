// Package bart implements summarize.Provider against a BART summarization
// HTTP sidecar.
//
// The backend cannot summarize arbitrarily long inputs in one call, so the
// provider chunks the text into sentence windows of roughly chunkWords
// words, summarizes each window, and joins the partial summaries.
package bart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/skillsenselab/meetscribe/provider"
	"github.com/skillsenselab/meetscribe/summarize"
)

const (
	// ProviderName is the registered name for the BART provider.
	ProviderName = "bart"

	defaultBaseURL   = "http://localhost:8389"
	defaultTimeout   = 180 * time.Second
	defaultMaxLength = 150
	defaultMinLength = 50

	// chunkWords is the sentence-window size fed to the model per call.
	chunkWords = 200
)

// Config holds configuration for the BART summarization provider.
type Config struct {
	BaseURL string        `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// Provider implements summarize.Provider using the BART HTTP sidecar.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new BART summarization provider.
func NewProvider(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Provider{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Factory returns a provider.Factory that creates BART Provider instances
// from a generic config map.
func Factory() provider.Factory[summarize.Provider] {
	return func(cfg map[string]any) (summarize.Provider, error) {
		bc := Config{}
		if v, ok := cfg["base_url"].(string); ok {
			bc.BaseURL = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			bc.Timeout = v
		}
		return NewProvider(bc), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the BART sidecar is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.BaseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Summarize chunks the text into sentence windows, summarizes each window
// through the sidecar, and joins the partial summaries.
func (p *Provider) Summarize(ctx context.Context, req summarize.Request) (*summarize.Summary, error) {
	maxLength := req.MaxLength
	if maxLength == 0 {
		maxLength = defaultMaxLength
	}
	minLength := req.MinLength
	if minLength == 0 {
		minLength = defaultMinLength
	}

	chunks := chunkBySentence(req.Text, chunkWords)
	if len(chunks) == 0 {
		return &summarize.Summary{}, nil
	}

	summaries := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		s, err := p.summarizeChunk(ctx, chunk, maxLength, minLength)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	return &summarize.Summary{Text: strings.Join(summaries, " ")}, nil
}

func (p *Provider) summarizeChunk(ctx context.Context, text string, maxLength, minLength int) (string, error) {
	payload, err := json.Marshal(sidecarRequest{
		Text:      text,
		MaxLength: maxLength,
		MinLength: minLength,
	})
	if err != nil {
		return "", fmt.Errorf("encode summarize request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/summarize", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("summarize request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("summarize error (status %d): %s", resp.StatusCode, string(body))
	}

	var result sidecarResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode summarize response: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("summarize error: %s", result.Error)
	}

	return strings.TrimSpace(result.Summary), nil
}

// chunkBySentence groups sentences into windows of at most maxWords words.
// A single sentence longer than maxWords becomes its own window.
func chunkBySentence(text string, maxWords int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	sentences := strings.SplitAfter(text, ". ")
	var chunks []string
	var current strings.Builder
	currentWords := 0

	for _, sentence := range sentences {
		words := len(strings.Fields(sentence))
		if currentWords > 0 && currentWords+words > maxWords {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
			currentWords = 0
		}
		current.WriteString(sentence)
		currentWords += words
	}
	if currentWords > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}

	return chunks
}

// --- internal sidecar API types ---

type sidecarRequest struct {
	Text      string `json:"text"`
	MaxLength int    `json:"max_length"`
	MinLength int    `json:"min_length"`
}

type sidecarResponse struct {
	Summary string `json:"summary"`
	Error   string `json:"error,omitempty"`
}
