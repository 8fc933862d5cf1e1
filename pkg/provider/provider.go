// Package provider defines the adapter interface for LLM services and a
// generic REST engine that serves most of them from small per-provider
// spec records.
package provider

import (
	"context"
	"fmt"
)

//go:generate mockgen -destination=./mocks/mock_provider.go -package=mocks github.com/mmichie/askfleet/pkg/provider Provider

// Provider translates a generic prompt into one LLM service's
// request/response contract.
type Provider interface {
	// GenerateResponse performs a single bounded outbound call.
	GenerateResponse(ctx context.Context, request Request) (Response, error)

	// Name is the registry identifier (lowercase).
	Name() string

	// DisplayName is the human-readable provider name used in answers.
	DisplayName() string

	// Model is the model identifier the adapter targets.
	Model() string
}

// Request contains the parameters for a generation request
type Request struct {
	// Prompt is the text prompt or query
	Prompt string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature controls randomness (0.0-1.0)
	Temperature float64
}

// Response contains the output from an AI provider
type Response struct {
	// Content is the text response
	Content string

	// Model identifies the model used
	Model string

	// Provider identifies the provider used
	Provider string
}

// Placeholder is the canned success text substituted when a provider has
// no credential configured. It is not a failure.
func Placeholder(displayName string) string {
	return fmt.Sprintf("No API key configured for %s.", displayName)
}

// NotConfigured is the adapter registered in place of a provider whose
// credential is absent. It never performs a network call.
type NotConfigured struct {
	name    string
	display string
	message string
}

// NewNotConfigured creates a credential-less stand-in adapter. An empty
// message defaults to the standard placeholder.
func NewNotConfigured(name, display, message string) *NotConfigured {
	if message == "" {
		message = Placeholder(display)
	}
	return &NotConfigured{name: name, display: display, message: message}
}

// GenerateResponse returns the placeholder without touching the network.
func (p *NotConfigured) GenerateResponse(ctx context.Context, request Request) (Response, error) {
	return Response{
		Content:  p.message,
		Provider: p.name,
	}, nil
}

// Name returns the provider name
func (p *NotConfigured) Name() string {
	return p.name
}

// DisplayName returns the human-readable provider name
func (p *NotConfigured) DisplayName() string {
	return p.display
}

// Model returns the empty string; there is no model to call.
func (p *NotConfigured) Model() string {
	return ""
}
