package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"GoldPulse/internal/domain/models"
	xhttp "GoldPulse/pkg/http"
)

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	baseURL   string
	apiKey    string
	model     string
	maxTokens int
	client    *xhttp.Client
}

// NewClient creates a narration client. An empty API key disables it.
func NewClient(baseURL, apiKey, model string, timeout time.Duration, maxTokens int) *Client {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if maxTokens <= 0 {
		maxTokens = 512
	}
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
		client:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// Enabled reports whether a credential is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Narrate generates a short commentary for the analysis context.
func (c *Client) Narrate(ctx context.Context, result *models.AnalysisResult, macro *models.MacroAssessment, news *models.NewsDigest) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("narration not configured")
	}

	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildPrompt(result, macro, news)},
		},
		MaxTokens: c.maxTokens,
	}

	var resp chatResponse
	err := c.client.PostJSON(ctx, c.baseURL+"/v1/chat/completions", req,
		map[string]string{"Authorization": "Bearer " + c.apiKey}, &resp)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("chat completion: %s", resp.Error.Message)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("chat completion returned empty content")
	}
	return text, nil
}
