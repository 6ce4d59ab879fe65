package whisper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/skillsenselab/meetscribe/transcription"
)

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	return path
}

func TestTranscribe(t *testing.T) {
	var gotModel, gotLanguage, gotFormat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		gotLanguage = r.FormValue("language")
		gotFormat = r.FormValue("response_format")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"text": " bonjour à tous merci ",
			"language": "fr",
			"duration": 9.5,
			"segments": [
				{"id": 0, "start": 0.0, "end": 4.0, "text": " bonjour à tous"},
				{"id": 1, "start": 5.0, "end": 9.0, "text": " merci"}
			]
		}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL, Model: "large-v3"})
	resp, err := p.Transcribe(context.Background(), transcription.Request{
		AudioPath: writeAudio(t),
		Language:  "fr",
	})
	if err != nil {
		t.Fatalf("Transcribe() error: %v", err)
	}

	if gotModel != "large-v3" || gotLanguage != "fr" || gotFormat != "verbose_json" {
		t.Errorf("form fields = model %q, language %q, format %q", gotModel, gotLanguage, gotFormat)
	}
	if resp.Text != "bonjour à tous merci" {
		t.Errorf("Text = %q", resp.Text)
	}
	if resp.Duration != 9.5 || resp.Language != "fr" {
		t.Errorf("Duration = %v, Language = %s", resp.Duration, resp.Language)
	}
	if len(resp.Segments) != 2 || resp.Segments[1].Text != " merci" {
		t.Errorf("Segments = %+v", resp.Segments)
	}
}

func TestTranscribeRequestOverridesModel(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		w.Write([]byte(`{"text": "ok", "segments": []}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL})
	_, err := p.Transcribe(context.Background(), transcription.Request{
		AudioPath: writeAudio(t),
		Model:     "medium",
	})
	if err != nil {
		t.Fatalf("Transcribe() error: %v", err)
	}
	if gotModel != "medium" {
		t.Errorf("model = %q, want medium", gotModel)
	}
}

func TestTranscribeDurationFromLastSegment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"text": "bonjour",
			"segments": [{"id": 0, "start": 0.0, "end": 3.2, "text": "bonjour"}]
		}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL})
	resp, err := p.Transcribe(context.Background(), transcription.Request{AudioPath: writeAudio(t)})
	if err != nil {
		t.Fatalf("Transcribe() error: %v", err)
	}
	if resp.Duration != 3.2 {
		t.Errorf("Duration = %v, want 3.2", resp.Duration)
	}
}

func TestTranscribeSidecarError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "model not loaded"}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL})
	if _, err := p.Transcribe(context.Background(), transcription.Request{AudioPath: writeAudio(t)}); err == nil {
		t.Error("Transcribe() accepted a sidecar error")
	}
}

func TestIsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))

	p := NewProvider(Config{BaseURL: srv.URL})
	if !p.IsAvailable(context.Background()) {
		t.Error("IsAvailable() = false for a healthy sidecar")
	}

	srv.Close()
	if p.IsAvailable(context.Background()) {
		t.Error("IsAvailable() = true for a closed sidecar")
	}
}
