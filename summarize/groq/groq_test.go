package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/skillsenselab/meetscribe/summarize"
)

func TestGenerateReport(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content":
				"{\"full_report\": \"Compte rendu structuré.\", \"short_summary\": \"Résumé bref.\"}"
			}}]
		}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL, APIKey: "gsk-test", Model: "llama-3.3-70b-versatile"})
	report, err := p.GenerateReport(context.Background(), summarize.ReportRequest{
		CleanedText: "Bonjour à tous.",
		Speakers: []summarize.SpeakerSummary{
			{Label: "SPEAKER_00", Summary: "A ouvert la réunion."},
		},
	})
	if err != nil {
		t.Fatalf("GenerateReport() error: %v", err)
	}

	if gotAuth != "Bearer gsk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != "llama-3.3-70b-versatile" {
		t.Errorf("model = %s", gotReq.Model)
	}
	if gotReq.ResponseFormat == nil || gotReq.ResponseFormat.Type != "json_object" {
		t.Errorf("response_format = %+v", gotReq.ResponseFormat)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Fatalf("messages = %+v", gotReq.Messages)
	}
	user := gotReq.Messages[1].Content
	if !strings.Contains(user, "Bonjour à tous.") || !strings.Contains(user, "SPEAKER_00 : A ouvert la réunion.") {
		t.Errorf("user prompt = %q", user)
	}

	if report.FullReport != "Compte rendu structuré." || report.ShortSummary != "Résumé bref." {
		t.Errorf("report = %+v", report)
	}
}

func TestGenerateReportDefaultsShortSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content":
				"{\"full_report\": \"Compte rendu seul.\"}"
			}}]
		}`))
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL, APIKey: "gsk-test"})
	report, err := p.GenerateReport(context.Background(), summarize.ReportRequest{CleanedText: "x"})
	if err != nil {
		t.Fatalf("GenerateReport() error: %v", err)
	}
	if report.ShortSummary != "Compte rendu seul." {
		t.Errorf("ShortSummary = %q", report.ShortSummary)
	}
}

func TestGenerateReportRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no choices", `{"choices": []}`},
		{"content not json", `{"choices": [{"message": {"content": "pas du json"}}]}`},
		{"missing full_report", `{"choices": [{"message": {"content": "{\"short_summary\": \"x\"}"}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewProvider(Config{BaseURL: srv.URL, APIKey: "gsk-test"})
			if _, err := p.GenerateReport(context.Background(), summarize.ReportRequest{CleanedText: "x"}); err == nil {
				t.Error("GenerateReport() accepted a bad payload")
			}
		})
	}
}

func TestGenerateReportRequiresAPIKey(t *testing.T) {
	p := NewProvider(Config{})
	if _, err := p.GenerateReport(context.Background(), summarize.ReportRequest{}); err == nil {
		t.Error("GenerateReport() accepted a missing api key")
	}
}

func TestIsAvailable(t *testing.T) {
	if NewProvider(Config{}).IsAvailable(context.Background()) {
		t.Error("IsAvailable() = true without an api key")
	}
	if !NewProvider(Config{APIKey: "gsk-test"}).IsAvailable(context.Background()) {
		t.Error("IsAvailable() = false with an api key")
	}
}
