// Package ai talks to the language-model server that writes each section.
package ai

import (
	"context"
	"math"
)

const (
	// DefaultTemperature keeps the prose varied without drifting off-brief.
	DefaultTemperature = 0.7
	// MinTokenBudget is the floor for every section's generation budget.
	MinTokenBudget = 1000

	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is one non-streamed generation call.
type ChatRequest struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// ModelClient is implemented by every inference backend.
type ModelClient interface {
	// Chat returns the generated text for req.
	Chat(ctx context.Context, req ChatRequest) (string, error)
	// ListModels returns the names of the models the server can run.
	ListModels(ctx context.Context) ([]string, error)
	// Provider names the backend, e.g. "ollama".
	Provider() string
}

// TokenBudget derives the max-token budget for a section of wordLimit words.
func TokenBudget(wordLimit int) int {
	budget := int(math.Floor(float64(wordLimit) * 2.5))
	if budget < MinTokenBudget {
		return MinTokenBudget
	}
	return budget
}
