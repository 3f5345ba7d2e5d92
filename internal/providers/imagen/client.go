// Package imagen wraps the Imagen predict REST API behind a single call
// returning base64 image bytes. Wrapping the result into a data URI is
// the caller's business.
package imagen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 60 * time.Second

// ErrNoImage is returned when the provider answers without image bytes.
var ErrNoImage = errors.New("imagen: no image in response")

// Options controls how the Imagen client is configured.
type Options struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// Client requests single square JPEG images from the image model.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewClient builds a Client. Without an API key the client is a no-op:
// GenerateBase64 reports no image and no error.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "imagen-4.0-generate-001"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		apiKey:  opts.APIKey,
		model:   model,
		baseURL: baseURL,
		client:  client,
	}
}

// Configured reports whether the client holds an API key.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type predictParameters struct {
	SampleCount   int            `json:"sampleCount"`
	AspectRatio   string         `json:"aspectRatio,omitempty"`
	OutputOptions *outputOptions `json:"outputOptions,omitempty"`
}

type outputOptions struct {
	MimeType string `json:"mimeType,omitempty"`
}

type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
	} `json:"predictions"`
}

// GenerateBase64 requests exactly one 1:1 JPEG for the prompt and
// returns its base64 payload. With no API key configured it returns
// ("", nil) so mock-mode deployments skip image enrichment silently.
func (c *Client) GenerateBase64(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", nil
	}

	payload := predictRequest{
		Instances: []predictInstance{{Prompt: prompt}},
		Parameters: predictParameters{
			SampleCount:   1,
			AspectRatio:   "1:1",
			OutputOptions: &outputOptions{MimeType: "image/jpeg"},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", fmt.Errorf("imagen: encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:predict", c.baseURL, url.PathEscape(c.model))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("imagen: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("imagen: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("imagen: unexpected status %d", resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("imagen: decode response: %w", err)
	}
	for _, pred := range out.Predictions {
		if pred.BytesBase64Encoded != "" {
			return pred.BytesBase64Encoded, nil
		}
	}
	return "", ErrNoImage
}
