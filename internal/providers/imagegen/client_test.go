package imagegen

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTextToImageSendsPromptForm(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	var gotPrompt, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/text-to-image/v1" {
			t.Errorf("path = %q, want /text-to-image/v1", r.URL.Path)
		}
		gotKey = r.Header.Get("x-api-key")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart form: %v", err)
		}
		gotPrompt = r.FormValue("prompt")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	client, err := NewClient(Options{APIKey: "clip-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	data, err := client.TextToImage(context.Background(), "a lighthouse at dusk")
	if err != nil {
		t.Fatalf("text to image: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Fatalf("image bytes mismatch: %v", data)
	}
	if gotPrompt != "a lighthouse at dusk" {
		t.Fatalf("prompt = %q", gotPrompt)
	}
	if gotKey != "clip-key" {
		t.Fatalf("x-api-key = %q, want clip-key", gotKey)
	}
}

func TestTextToImageRejectsBlankPrompt(t *testing.T) {
	client, err := NewClient(Options{APIKey: "clip-key"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.TextToImage(context.Background(), "   "); err == nil {
		t.Fatalf("expected error for blank prompt")
	}
}

func TestTextToImageRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	client, err := NewClient(Options{APIKey: "clip-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.TextToImage(context.Background(), "anything"); err == nil {
		t.Fatalf("expected error for non-2xx status")
	}
}

func TestTextToImageRejectsEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewClient(Options{APIKey: "clip-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.TextToImage(context.Background(), "anything"); err == nil {
		t.Fatalf("expected error for empty response body")
	}
}
