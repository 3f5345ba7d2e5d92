package genai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestGenerateTextNotConfigured(t *testing.T) {
	client := NewClient(Options{})
	if _, err := client.GenerateText(context.Background(), "sys", "user"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("error = %v, want ErrNotConfigured", err)
	}
}

func TestGenerateTextExtractsFirstCandidate(t *testing.T) {
	var gotPath, gotKey string
	client := NewClient(Options{
		APIKey: "dummy",
		Model:  "gemini-1.5-flash",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			gotPath = r.URL.Path
			gotKey = r.Header.Get("x-goog-api-key")
			return respond(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"hello"}]}}]}`), nil
		})},
	})

	text, err := client.GenerateText(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("GenerateText returned error: %v", err)
	}
	if text != "hello" {
		t.Fatalf("text = %q, want %q", text, "hello")
	}
	if !strings.HasSuffix(gotPath, "/models/gemini-1.5-flash:generateContent") {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotKey != "dummy" {
		t.Fatalf("api key header = %q, want %q", gotKey, "dummy")
	}
}

func TestGenerateTextTransportError(t *testing.T) {
	client := NewClient(Options{
		APIKey: "dummy",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return nil, errors.New("boom")
		})},
	})
	if _, err := client.GenerateText(context.Background(), "sys", "user"); err == nil {
		t.Fatal("expected a transport error")
	}
}

func TestGenerateTextBadStatus(t *testing.T) {
	client := NewClient(Options{
		APIKey: "dummy",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return respond(http.StatusInternalServerError, `{"error":{"code":500}}`), nil
		})},
	})
	if _, err := client.GenerateText(context.Background(), "sys", "user"); err == nil {
		t.Fatal("expected an error for a non-2xx status")
	}
}

func TestGenerateTextEmptyCandidates(t *testing.T) {
	client := NewClient(Options{
		APIKey: "dummy",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, `{"candidates":[]}`), nil
		})},
	})
	if _, err := client.GenerateText(context.Background(), "sys", "user"); err == nil {
		t.Fatal("expected an error for an empty response")
	}
}
