package bart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/skillsenselab/meetscribe/summarize"
)

func TestChunkBySentence(t *testing.T) {
	t.Run("empty text yields no chunks", func(t *testing.T) {
		if got := chunkBySentence("   ", 10); got != nil {
			t.Errorf("chunkBySentence() = %v, want nil", got)
		}
	})

	t.Run("short text is one chunk", func(t *testing.T) {
		got := chunkBySentence("Une phrase. Une autre.", 100)
		if len(got) != 1 {
			t.Fatalf("got %d chunks, want 1: %v", len(got), got)
		}
	})

	t.Run("splits on sentence boundaries", func(t *testing.T) {
		text := strings.Repeat("Cette phrase contient exactement six mots. ", 10)
		got := chunkBySentence(text, 12)
		if len(got) != 5 {
			t.Fatalf("got %d chunks, want 5: %v", len(got), got)
		}
		for i, chunk := range got {
			if words := len(strings.Fields(chunk)); words > 12 {
				t.Errorf("chunk %d has %d words, want <= 12", i, words)
			}
		}
	})

	t.Run("oversized sentence is its own chunk", func(t *testing.T) {
		text := strings.Repeat("mot ", 30) + "fin. Courte phrase."
		got := chunkBySentence(text, 10)
		if len(got) != 2 {
			t.Fatalf("got %d chunks, want 2: %v", len(got), got)
		}
	})
}

func TestSummarize(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/summarize" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req sidecarRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.MaxLength != 150 || req.MinLength != 50 {
			t.Errorf("lengths = %d/%d, want defaults 150/50", req.MaxLength, req.MinLength)
		}
		calls++
		_ = json.NewEncoder(w).Encode(sidecarResponse{Summary: "résumé partiel"})
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL})
	sum, err := p.Summarize(context.Background(), summarize.Request{
		Text: "Première phrase du texte. Deuxième phrase du texte.",
	})
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if calls != 1 {
		t.Errorf("sidecar called %d times, want 1", calls)
	}
	if sum.Text != "résumé partiel" {
		t.Errorf("summary = %q", sum.Text)
	}
}

func TestSummarizeSidecarError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sidecarResponse{Error: "model not loaded"})
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL})
	_, err := p.Summarize(context.Background(), summarize.Request{Text: "du texte."})
	if err == nil || !strings.Contains(err.Error(), "model not loaded") {
		t.Errorf("error = %v, want sidecar error surfaced", err)
	}
}

func TestSummarizeEmptyText(t *testing.T) {
	p := NewProvider(Config{BaseURL: "http://localhost:0"})
	sum, err := p.Summarize(context.Background(), summarize.Request{Text: "  "})
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if sum.Text != "" {
		t.Errorf("summary = %q, want empty", sum.Text)
	}
}

func TestIsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if !NewProvider(Config{BaseURL: srv.URL}).IsAvailable(context.Background()) {
		t.Error("IsAvailable() = false, want true")
	}
	srv.Close()
	if NewProvider(Config{BaseURL: srv.URL}).IsAvailable(context.Background()) {
		t.Error("IsAvailable() = true after shutdown, want false")
	}
}
