package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const ProviderGemini = "gemini"

// GeminiClient serves the same contract as the Ollama client on Google's
// hosted Gemini models.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient authenticates with apiKey. Extra options are applied after
// the key, so an endpoint or HTTP client passed here takes precedence.
func NewGeminiClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*GeminiClient, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

func (g *GeminiClient) Provider() string { return ProviderGemini }

func (g *GeminiClient) Close() error { return g.client.Close() }

// Chat maps system messages onto the model's system instruction and sends
// the remaining turns as the prompt.
func (g *GeminiClient) Chat(ctx context.Context, req ChatRequest) (string, error) {
	model := g.client.GenerativeModel(req.Model)
	model.SetTemperature(float32(req.Temperature))
	model.SetMaxOutputTokens(int32(req.MaxTokens))

	var system []genai.Part
	var prompt []genai.Part
	for _, m := range req.Messages {
		if m.Role == RoleSystem {
			system = append(system, genai.Text(m.Content))
			continue
		}
		prompt = append(prompt, genai.Text(m.Content))
	}
	if len(system) > 0 {
		model.SystemInstruction = &genai.Content{Parts: system}
	}

	resp, err := model.GenerateContent(ctx, prompt...)
	if err != nil {
		return "", &UnavailableError{Provider: ProviderGemini, Err: err}
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &MalformedReplyError{Provider: ProviderGemini}
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	if sb.Len() == 0 {
		return "", &MalformedReplyError{Provider: ProviderGemini}
	}
	return sb.String(), nil
}

// ListModels returns model names without the "models/" resource prefix.
func (g *GeminiClient) ListModels(ctx context.Context) ([]string, error) {
	var names []string
	it := g.client.ListModels(ctx)
	for {
		info, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, &UnavailableError{Provider: ProviderGemini, Err: err}
		}
		names = append(names, strings.TrimPrefix(info.Name, "models/"))
	}
	return names, nil
}
