package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const ProviderOllama = "ollama"

// OllamaClient calls a local Ollama server over its REST API.
type OllamaClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewOllamaClient creates a client for the server at baseURL.
// A zero timeout leaves requests bounded only by the caller's context.
func NewOllamaClient(baseURL string, timeout time.Duration, logger *zap.Logger) *OllamaClient {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OllamaClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (o *OllamaClient) Provider() string { return ProviderOllama }

// Chat sends one non-streamed request to /api/chat.
func (o *OllamaClient) Chat(ctx context.Context, req ChatRequest) (string, error) {
	payload := ollamaChatRequest{
		Model:    req.Model,
		Messages: req.Messages,
		Options: ollamaOptions{
			Temperature: req.Temperature,
			NumPredict:  req.MaxTokens,
		},
		Stream: false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", &UnavailableError{Provider: ProviderOllama, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		o.logger.Error("Ollama chat returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(snippet)),
		)
		return "", &StatusError{Provider: ProviderOllama, StatusCode: resp.StatusCode}
	}

	var result ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &MalformedReplyError{Provider: ProviderOllama, Err: err}
	}
	if result.Message == nil || result.Message.Content == "" {
		o.logger.Error("Unexpected response format from Ollama", zap.String("model", result.Model))
		return "", &MalformedReplyError{Provider: ProviderOllama}
	}
	return result.Message.Content, nil
}

// ListModels returns the model names reported by /api/tags.
func (o *OllamaClient) ListModels(ctx context.Context) ([]string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, &UnavailableError{Provider: ProviderOllama, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Provider: ProviderOllama, StatusCode: resp.StatusCode}
	}

	var tags ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, &MalformedReplyError{Provider: ProviderOllama, Err: err}
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaChatRequest struct {
	Model    string        `json:"model"`
	Messages []Message     `json:"messages"`
	Options  ollamaOptions `json:"options"`
	Stream   bool          `json:"stream"`
}

type ollamaChatResponse struct {
	Model   string   `json:"model"`
	Message *Message `json:"message"`
	Done    bool     `json:"done"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}
