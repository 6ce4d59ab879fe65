package pyannote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skillsenselab/meetscribe/diarization"
)

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	return path
}

func TestDiarize(t *testing.T) {
	var gotLanguage, gotNumSpeakers string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/diarize" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if _, _, err := r.FormFile("audio"); err != nil {
			t.Errorf("audio part missing: %v", err)
		}
		gotLanguage = r.FormValue("language")
		gotNumSpeakers = r.FormValue("num_speakers")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"segments": [
				{"speaker_id": "SPEAKER_00", "start_time": 0.0, "end_time": 4.5},
				{"speaker_id": "SPEAKER_01", "start_time": 4.5, "end_time": 9.0}
			],
			"num_speakers": 2
		}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL})
	resp, err := p.Diarize(context.Background(), diarization.Request{
		AudioPath:   writeAudio(t),
		Language:    "fr",
		NumSpeakers: 2,
	})
	if err != nil {
		t.Fatalf("Diarize() error: %v", err)
	}

	if gotLanguage != "fr" || gotNumSpeakers != "2" {
		t.Errorf("form fields = language %q, num_speakers %q", gotLanguage, gotNumSpeakers)
	}
	if resp.NumSpeakers != 2 || len(resp.Intervals) != 2 {
		t.Fatalf("resp = %+v", resp)
	}
	want := diarization.Interval{Start: 4.5, End: 9.0, Speaker: "SPEAKER_01"}
	if resp.Intervals[1] != want {
		t.Errorf("interval = %+v, want %+v", resp.Intervals[1], want)
	}
}

func TestDiarizeSidecarError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": "pipeline not loaded"}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL})
	_, err := p.Diarize(context.Background(), diarization.Request{AudioPath: writeAudio(t)})
	if err == nil || !strings.Contains(err.Error(), "pipeline not loaded") {
		t.Errorf("error = %v", err)
	}
}

func TestDiarizeHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL})
	if _, err := p.Diarize(context.Background(), diarization.Request{AudioPath: writeAudio(t)}); err == nil {
		t.Error("Diarize() accepted a 500 response")
	}
}

func TestDiarizeMissingAudio(t *testing.T) {
	p := NewProvider(Config{})
	if _, err := p.Diarize(context.Background(), diarization.Request{AudioPath: "/absent.wav"}); err == nil {
		t.Error("Diarize() accepted a missing audio file")
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

func TestFactory(t *testing.T) {
	p, err := Factory()(map[string]any{"base_url": "http://example.test:9000"})
	if err != nil {
		t.Fatalf("Factory() error: %v", err)
	}
	if p.Name() != ProviderName {
		t.Errorf("Name() = %s", p.Name())
	}
}
