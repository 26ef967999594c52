package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Client calls a /v1/audio/transcriptions-shaped endpoint. It accepts both
// a bare text response body and a JSON object carrying the text field, and
// normalizes both to the same return value. No automatic retry: a failed
// dictation fails fast and visibly.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// Config holds the transcription endpoint settings.
type Config struct {
	BaseURL string // API base, e.g. "https://api.groq.com/openai/v1"
	APIKey  string
	Model   string
	Timeout time.Duration // Request timeout, default 60s
}

// NewClient creates a transcription client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		http:    &http.Client{Timeout: timeout},
	}
}

// transcriptionResponse is the JSON response shape; plain-text bodies skip
// this entirely.
type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads one encoded utterance and returns the transcript.
func (c *Client) Transcribe(ctx context.Context, req Request) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(req.WAV); err != nil {
		return "", fmt.Errorf("write audio data: %w", err)
	}

	if err := writer.WriteField("model", c.model); err != nil {
		return "", fmt.Errorf("write model field: %w", err)
	}

	// OpenAI-compatible endpoints reject 'auto'; empty means auto-detect.
	if req.Language != "" && req.Language != "auto" {
		if err := writer.WriteField("language", req.Language); err != nil {
			return "", fmt.Errorf("write language field: %w", err)
		}
	}

	if err := writer.WriteField("response_format", "text"); err != nil {
		return "", fmt.Errorf("write response_format field: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	return extractText(body), nil
}

// extractText normalizes the two accepted response shapes. A JSON object
// with a "text" field wins; anything else is treated as a bare transcript.
func extractText(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var apiResp transcriptionResponse
		if err := json.Unmarshal(trimmed, &apiResp); err == nil {
			return strings.TrimSpace(apiResp.Text)
		}
	}
	return strings.TrimSpace(string(body))
}
