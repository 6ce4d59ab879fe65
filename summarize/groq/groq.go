// Package groq implements summarize.ReportProvider against the Groq
// OpenAI-compatible chat-completions API.
//
// The provider asks the model for a JSON object with the full meeting
// report and a short summary, using JSON response mode so the reply is
// machine-parseable.
package groq

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
	// ProviderName is the registered name for the Groq provider.
	ProviderName = "groq"

	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.3-70b-versatile"
	defaultTimeout = 120 * time.Second

	systemPrompt = "Tu es un assistant qui rédige des comptes rendus de réunion " +
		"professionnels en français. Réponds uniquement avec un objet JSON contenant " +
		"les clés \"full_report\" (compte rendu structuré complet) et " +
		"\"short_summary\" (résumé en quelques phrases)."
)

// Config holds configuration for the Groq report provider.
type Config struct {
	BaseURL     string        `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	APIKey      string        `json:"api_key" yaml:"api_key" mapstructure:"api_key"`
	Model       string        `json:"model" yaml:"model" mapstructure:"model"`
	Temperature float64       `json:"temperature" yaml:"temperature" mapstructure:"temperature"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// Provider implements summarize.ReportProvider using Groq's chat API.
type Provider struct {
	cfg    Config
	client *http.Client
}

// NewProvider creates a new Groq report provider.
func NewProvider(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
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

// Factory returns a provider.Factory that creates Groq Provider instances
// from a generic config map.
func Factory() provider.Factory[summarize.ReportProvider] {
	return func(cfg map[string]any) (summarize.ReportProvider, error) {
		gc := Config{}
		if v, ok := cfg["base_url"].(string); ok {
			gc.BaseURL = v
		}
		if v, ok := cfg["api_key"].(string); ok {
			gc.APIKey = v
		}
		if v, ok := cfg["model"].(string); ok {
			gc.Model = v
		}
		if v, ok := cfg["temperature"].(float64); ok {
			gc.Temperature = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			gc.Timeout = v
		}
		return NewProvider(gc), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether the provider is configured with an API key.
// The remote API has no cheap health endpoint worth probing.
func (p *Provider) IsAvailable(_ context.Context) bool {
	return p.cfg.APIKey != ""
}

// GenerateReport asks the model for the structured meeting report.
func (p *Provider) GenerateReport(ctx context.Context, req summarize.ReportRequest) (*summarize.Report, error) {
	if p.cfg.APIKey == "" {
		return nil, fmt.Errorf("groq: api key not configured")
	}

	chatReq := chatRequest{
		Model:       p.cfg.Model,
		Temperature: p.cfg.Temperature,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(req)},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	payload, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("chat error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("chat response contained no choices")
	}

	var report summarize.Report
	content := chatResp.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), &report); err != nil {
		return nil, fmt.Errorf("parse report JSON: %w", err)
	}
	if report.FullReport == "" {
		return nil, fmt.Errorf("report JSON missing full_report")
	}
	if report.ShortSummary == "" {
		report.ShortSummary = report.FullReport
	}

	return &report, nil
}

// buildPrompt assembles the user message from the cleaned transcript and
// the per-speaker summaries, in speaker order.
func buildPrompt(req summarize.ReportRequest) string {
	var b strings.Builder
	b.WriteString("Voici la transcription nettoyée d'une réunion :\n\n")
	b.WriteString(req.CleanedText)
	if len(req.Speakers) > 0 {
		b.WriteString("\n\nRésumés par intervenant :\n")
		for _, sp := range req.Speakers {
			b.WriteString(sp.Label)
			b.WriteString(" : ")
			b.WriteString(sp.Summary)
			b.WriteString("\n")
		}
	}
	b.WriteString("\nRédige le compte rendu.")
	return b.String()
}

// --- internal chat API types ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}
