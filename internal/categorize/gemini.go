package categorize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini is the generative tier backed by Google Gemini.
type Gemini struct {
	client     *genai.Client
	model      *genai.GenerativeModel
	categories []string
}

// NewGemini creates a Gemini classifier tier.
func NewGemini(apiKey, modelName string, categories []string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-pro"
	}
	if len(categories) == 0 {
		categories = DefaultRuleTable().Categories
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Gemini{
		client:     client,
		model:      client.GenerativeModel(modelName),
		categories: categories,
	}, nil
}

// Classify asks Gemini for a category and validates the answer against the
// category list. Transport failures degrade to an uncategorized zero-
// confidence match so one flaky call never fails a batch.
func (g *Gemini) Classify(itemName string) (*Match, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := g.model.GenerateContent(ctx, genai.Text(categoryPrompt(itemName, g.categories)))
	if err != nil {
		slog.Warn("Gemini categorization failed", "item", itemName, "error", err)
		return &Match{Category: Uncategorized}, nil
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		slog.Warn("No response from gemini", "item", itemName)
		return &Match{Category: Uncategorized}, nil
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	return matchCategory(strings.TrimSpace(responseText.String()), g.categories), nil
}

// Close closes the Gemini client.
func (g *Gemini) Close() error {
	return g.client.Close()
}
