package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/web-read/webread/pkg/models"
)

func TestReaderExtractor_PassesBodyThrough(t *testing.T) {
	markdown := "# Rendered Title\n\nRendered body from the reader service.\n"
	var gotPath, gotTimeout, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		gotTimeout = r.Header.Get("X-Timeout")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(markdown))
	}))
	defer server.Close()

	extractor := NewReader(server.URL+"/", "TestAgent/1.0")
	result := extractor.Extract(context.Background(), models.FetchRequest{
		URL:     "https://example.com/article",
		Timeout: 20 * time.Second,
	})

	if result.Reason != models.FailNone {
		t.Fatalf("Extract failed with reason %q", result.Reason)
	}
	if result.Text != markdown {
		t.Errorf("Expected body passed through untouched, got %q", result.Text)
	}
	if !strings.Contains(gotPath, "example.com/article") {
		t.Errorf("Expected target URL appended to the service prefix, got %q", gotPath)
	}
	if gotTimeout != "20" {
		t.Errorf("Expected X-Timeout header '20', got %q", gotTimeout)
	}
	if !strings.Contains(gotAccept, "text/plain") {
		t.Errorf("Expected a plain-text accept header, got %q", gotAccept)
	}
}

func TestReaderExtractor_TimeoutHeaderIsCapped(t *testing.T) {
	var gotTimeout string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTimeout = r.Header.Get("X-Timeout")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	extractor := NewReader(server.URL+"/", "TestAgent/1.0")
	extractor.Extract(context.Background(), models.FetchRequest{
		URL:     "https://example.com/",
		Timeout: 120 * time.Second,
	})

	if gotTimeout != "30" {
		t.Errorf("Expected X-Timeout capped at 30, got %q", gotTimeout)
	}
}

func TestReaderExtractor_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream busted", http.StatusBadGateway)
	}))
	defer server.Close()

	extractor := NewReader(server.URL+"/", "TestAgent/1.0")
	result := extractor.Extract(context.Background(), models.FetchRequest{
		URL:     "https://example.com/",
		Timeout: 5 * time.Second,
	})

	if result.Reason != models.FailTransport {
		t.Errorf("Expected transport failure on 502, got %q", result.Reason)
	}
}

func TestReaderExtractor_ConnectionError(t *testing.T) {
	extractor := NewReader("http://127.0.0.1:1/", "TestAgent/1.0")
	result := extractor.Extract(context.Background(), models.FetchRequest{
		URL:     "https://example.com/",
		Timeout: 1 * time.Second,
	})

	if result.Reason != models.FailTransport {
		t.Errorf("Expected transport failure, got %q", result.Reason)
	}
}

func TestReaderExtractor_Probe(t *testing.T) {
	tests := []struct {
		baseURL string
		want    models.Availability
	}{
		{"https://r.jina.ai/", models.Available},
		{"", models.Unavailable},
		{"not a url at all", models.ErrorDuringUse},
	}
	for _, tt := range tests {
		got := NewReader(tt.baseURL, "x").Probe()
		if got != tt.want {
			t.Errorf("Probe with base %q = %v, want %v", tt.baseURL, got, tt.want)
		}
	}
}
