package categorize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Ollama is the generative tier backed by a local Ollama instance.
type Ollama struct {
	baseURL    string
	model      string
	categories []string
	client     *http.Client
}

// NewOllama creates an Ollama classifier tier. Any text model works; the
// default is a small instruction-tuned llama.
func NewOllama(baseURL, modelName string, categories []string) (*Ollama, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if modelName == "" {
		modelName = "llama3.1:latest"
	}
	if len(categories) == 0 {
		categories = DefaultRuleTable().Categories
	}

	return &Ollama{
		baseURL:    baseURL,
		model:      modelName,
		categories: categories,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// ollamaChatRequest represents the request body for Ollama's chat API.
type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

// ollamaChatResponse represents the response from Ollama's chat API.
type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

// Classify asks the local model for a category and validates the answer
// against the category list. Transport failures degrade to an uncategorized
// zero-confidence match so one flaky call never fails a batch.
func (o *Ollama) Classify(itemName string) (*Match, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	reqBody := ollamaChatRequest{
		Model:  o.model,
		Stream: false,
		Messages: []ollamaMessage{
			{
				Role:    "system",
				Content: "You are an expert for German supermarket products and assign each item to exactly one category.",
			},
			{
				Role:    "user",
				Content: categoryPrompt(itemName, o.categories),
			},
		},
		Options: ollamaOptions{Temperature: 0.0},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/api/chat", o.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		slog.Warn("Ollama categorization failed", "item", itemName, "error", err)
		return &Match{Category: Uncategorized}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		slog.Warn("Ollama API error", "item", itemName, "status", resp.StatusCode, "body", string(body))
		return &Match{Category: Uncategorized}, nil
	}

	var chatResp ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return matchCategory(strings.TrimSpace(chatResp.Message.Content), o.categories), nil
}

// Close closes the Ollama tier (no-op for the HTTP client).
func (o *Ollama) Close() error {
	return nil
}
