package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a minimal OpenAI Responses API client covering what the
// generators need.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	HTTP    *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		BaseURL: "https://api.openai.com/v1",
		APIKey:  apiKey,
		Model:   model,
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

type inputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesRequest struct {
	Model string         `json:"model"`
	Input []inputMessage `json:"input"`
}

type responsesReply struct {
	Output []struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (r *responsesReply) outputText() string {
	var b strings.Builder
	for _, out := range r.Output {
		for _, c := range out.Content {
			if c.Type == "output_text" {
				b.WriteString(c.Text)
			}
		}
	}
	return b.String()
}

// Complete sends a system+user prompt pair and returns the raw model text.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	b, _ := json.Marshal(responsesRequest{
		Model: c.Model,
		Input: []inputMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/responses", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openai responses: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai read: %w", err)
	}

	if resp.StatusCode >= 400 {
		// Error bodies are usually the JSON envelope, but a proxy can hand
		// back HTML; keep the status either way.
		var out responsesReply
		if json.Unmarshal(body, &out) == nil && out.Error != nil {
			return "", fmt.Errorf("openai error (status %d): %s", resp.StatusCode, out.Error.Message)
		}
		return "", fmt.Errorf("openai error (status %d): %s", resp.StatusCode, truncate(string(body), 200))
	}

	var out responsesReply
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("openai decode: %w", err)
	}

	return out.outputText(), nil
}
