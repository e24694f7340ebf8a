// Package honeypot provides a client for the honeypot chat API.
package honeypot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Message is one conversation turn on the wire.
type Message struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// ChatRequest is the /api/chat request body.
type ChatRequest struct {
	SessionID string         `json:"sessionId"`
	Message   Message        `json:"message"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// ChatResponse is the /api/chat response body.
type ChatResponse struct {
	Status string `json:"status"`
	Reply  string `json:"reply"`
}

// Client is a honeypot API client.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a client for the given server.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Chat sends one adversary message and returns the persona's reply.
func (c *Client) Chat(ctx context.Context, sessionID, text string) (string, error) {
	req := ChatRequest{
		SessionID: sessionID,
		Message: Message{
			Sender:    "scammer",
			Text:      text,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	var resp ChatResponse
	if err := c.postJSON(ctx, "/api/chat", req, &resp); err != nil {
		return "", err
	}
	return resp.Reply, nil
}

// VoiceRequest is the /api/voice-detection request body.
type VoiceRequest struct {
	Language    string `json:"language"`
	AudioFormat string `json:"audioFormat"`
	AudioBase64 string `json:"audioBase64"`
}

// VoiceResponse is the /api/voice-detection response body.
type VoiceResponse struct {
	Status          string  `json:"status"`
	Language        string  `json:"language"`
	Classification  string  `json:"classification"`
	ConfidenceScore float64 `json:"confidenceScore"`
	Explanation     string  `json:"explanation"`
}

// Voice submits an audio sample for AI-voice classification.
func (c *Client) Voice(ctx context.Context, req VoiceRequest) (*VoiceResponse, error) {
	var resp VoiceResponse
	if err := c.postJSON(ctx, "/api/voice-detection", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health fetches the server health document.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-Key", c.APIKey)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, string(data))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
