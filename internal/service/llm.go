package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Persona frames a single completion call: who the model should act as, what
// it is trying to achieve, and the background it should assume.
type Persona struct {
	Role      string
	Goal      string
	Backstory string
}

// GroqClient handles interactions with Groq's OpenAI-compatible chat API
type GroqClient struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewGroqClient creates a new GroqClient instance
func NewGroqClient(apiKey, apiURL, model string) (*GroqClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY must be set")
	}
	if apiURL == "" {
		apiURL = "https://api.groq.com/openai/v1/chat/completions"
	}

	return &GroqClient{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a request to the chat completions API
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

// Complete sends a single synchronous completion request and returns the raw
// text of the first choice. No streaming, no retries.
func (c *GroqClient) Complete(ctx context.Context, persona Persona, task, expectedOutput string) (string, error) {
	system := fmt.Sprintf("You are a %s. Your goal: %s Background: %s", persona.Role, persona.Goal, persona.Backstory)
	if expectedOutput != "" {
		system += "\nExpected output: " + expectedOutput
	}

	reqBody := Request{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: task},
		},
		Temperature: 0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &UpstreamError{Service: "completion", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{Service: "completion", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{
			Service: "completion",
			Err:     fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return result.Choices[0].Message.Content, nil
}
