package provider

import (
	"context"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	aierrors "github.com/mmichie/askfleet/pkg/errors"
)

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiProvider implements the Provider interface for Google's Gemini
// through the official SDK rather than the generic REST engine.
type GeminiProvider struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini creates a Gemini adapter. The client is built once at
// startup; per-request state lives in the GenerativeModel handle.
func NewGemini(apiKey, model string, timeout time.Duration) (*GeminiProvider, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, aierrors.New("gemini", "create", err)
	}

	if model == "" {
		model = defaultGeminiModel
	}

	return &GeminiProvider{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// DisplayName returns the human-readable provider name
func (p *GeminiProvider) DisplayName() string {
	return "Gemini"
}

// Model returns the model the adapter targets
func (p *GeminiProvider) Model() string {
	return p.model
}

// GenerateResponse sends the prompt to Gemini and collects the text parts.
func (p *GeminiProvider) GenerateResponse(ctx context.Context, request Request) (Response, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	model := p.client.GenerativeModel(p.model)
	if request.Temperature > 0 {
		model.SetTemperature(float32(request.Temperature))
	}
	if request.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(request.MaxTokens))
	}

	resp, err := model.GenerateContent(callCtx, genai.Text(request.Prompt))
	if err != nil {
		return Response{}, aierrors.New("gemini", "generate_response", err)
	}

	var text strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}

	content := strings.TrimSpace(text.String())
	if content == "" {
		return Response{}, aierrors.New("gemini", "extract_text", aierrors.ErrNoContent)
	}

	return Response{
		Content:  content,
		Model:    p.model,
		Provider: "gemini",
	}, nil
}
