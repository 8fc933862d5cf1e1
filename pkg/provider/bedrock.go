package provider

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	aierrors "github.com/mmichie/askfleet/pkg/errors"
)

const defaultBedrockModelID = "anthropic.claude-3-haiku-20240307-v1:0"

// bedrockInvoker is the slice of the bedrockruntime client the adapter
// needs; tests substitute it.
type bedrockInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput,
		optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockProvider implements the Provider interface for Anthropic models
// hosted on Amazon Bedrock.
type BedrockProvider struct {
	client  bedrockInvoker
	modelID string
	timeout time.Duration
}

// NewBedrock creates a Bedrock adapter for the given region. AWS
// credentials come from the default chain.
func NewBedrock(region, modelID string, timeout time.Duration) (*BedrockProvider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, aierrors.New("bedrock", "create", err)
	}

	if modelID == "" {
		modelID = defaultBedrockModelID
	}

	return &BedrockProvider{
		client:  bedrockruntime.NewFromConfig(cfg),
		modelID: modelID,
		timeout: timeout,
	}, nil
}

// Name returns the provider name
func (p *BedrockProvider) Name() string {
	return "bedrock"
}

// DisplayName returns the human-readable provider name
func (p *BedrockProvider) DisplayName() string {
	return "Amazon Bedrock"
}

// Model returns the Bedrock model identifier
func (p *BedrockProvider) Model() string {
	return p.modelID
}

type bedrockAnthropicRequest struct {
	AnthropicVersion string                    `json:"anthropic_version"`
	MaxTokens        int                       `json:"max_tokens"`
	Temperature      float64                   `json:"temperature,omitempty"`
	Messages         []bedrockAnthropicMessage `json:"messages"`
}

type bedrockAnthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type bedrockAnthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// GenerateResponse invokes the hosted model with the Anthropic messages
// payload Bedrock expects.
func (p *BedrockProvider) GenerateResponse(ctx context.Context, request Request) (Response, error) {
	maxTokens := request.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	payload := bedrockAnthropicRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        maxTokens,
		Temperature:      request.Temperature,
		Messages: []bedrockAnthropicMessage{
			{Role: "user", Content: request.Prompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, aierrors.New("bedrock", "marshal_request", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	output, err := p.client.InvokeModel(callCtx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(p.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return Response{}, aierrors.New("bedrock", "invoke_model", err)
	}

	var parsed bedrockAnthropicResponse
	if err := json.Unmarshal(output.Body, &parsed); err != nil {
		return Response{}, aierrors.New("bedrock", "parse_response", err)
	}

	var text strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	content := strings.TrimSpace(text.String())
	if content == "" {
		return Response{}, aierrors.New("bedrock", "extract_text", aierrors.ErrNoContent)
	}

	return Response{
		Content:  content,
		Model:    p.modelID,
		Provider: "bedrock",
	}, nil
}
