package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamUnavailable means the inference server could not be reached.
	ErrUpstreamUnavailable = errors.New("inference server unreachable")
	// ErrUpstreamProtocol covers non-success statuses and malformed replies.
	ErrUpstreamProtocol = errors.New("inference server protocol error")
	// ErrMalformedReply means the reply lacked the generated content.
	ErrMalformedReply = fmt.Errorf("%w: reply missing content", ErrUpstreamProtocol)
)

// UnavailableError wraps a transport failure talking to a provider.
type UnavailableError struct {
	Provider string
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("Failed to communicate with %s API - %v", providerLabel(e.Provider), e.Err)
}

func (e *UnavailableError) Unwrap() []error { return []error{ErrUpstreamUnavailable, e.Err} }

// StatusError is returned when the provider answers with a non-2xx status.
type StatusError struct {
	Provider   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API returned status code %d", providerLabel(e.Provider), e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrUpstreamProtocol }

// MalformedReplyError is returned when a reply decodes but carries no content.
type MalformedReplyError struct {
	Provider string
	Err      error
}

func (e *MalformedReplyError) Error() string {
	msg := fmt.Sprintf("Unexpected response format from %s API", providerLabel(e.Provider))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedReplyError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedReply}
	}
	return []error{ErrMalformedReply, e.Err}
}

func providerLabel(provider string) string {
	switch provider {
	case ProviderOllama:
		return "Ollama"
	case ProviderGemini:
		return "Gemini"
	case "":
		return "Model"
	default:
		return provider
	}
}
