package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiBackend generates via Google's Gemini models.
type GeminiBackend struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiBackend binds one Gemini model. The client is shared per backend and
// released by Close.
func NewGeminiBackend(ctx context.Context, apiKey, model string) (*GeminiBackend, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiBackend{client: client, model: client.GenerativeModel(model)}, nil
}

// Close releases the underlying client.
func (b *GeminiBackend) Close() {
	b.client.Close()
}

func (b *GeminiBackend) Generate(ctx context.Context, prompt string) (*Response, error) {
	resp, err := b.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini: API returned empty candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	out := &Response{Content: sb.String()}
	if usage := resp.UsageMetadata; usage != nil {
		out.PromptTokens = int(usage.PromptTokenCount)
		out.CompletionTokens = int(usage.CandidatesTokenCount)
		out.TotalTokens = int(usage.TotalTokenCount)
	}
	return out, nil
}

// CleanJSON strips markdown code fences that models wrap around JSON output.
func CleanJSON(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
