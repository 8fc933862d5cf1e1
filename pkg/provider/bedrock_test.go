package provider

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	aierrors "github.com/mmichie/askfleet/pkg/errors"
)

// fakeInvoker stands in for the bedrockruntime client.
type fakeInvoker struct {
	output   *bedrockruntime.InvokeModelOutput
	err      error
	gotInput *bedrockruntime.InvokeModelInput
}

func (f *fakeInvoker) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput,
	optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.gotInput = params
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

func TestBedrockGenerateResponse(t *testing.T) {
	fake := &fakeInvoker{
		output: &bedrockruntime.InvokeModelOutput{
			Body: []byte(`{"content":[{"type":"text","text":"haiku here"}]}`),
		},
	}
	p := &BedrockProvider{client: fake, modelID: "anthropic.claude-3-haiku-20240307-v1:0", timeout: time.Second}

	resp, err := p.GenerateResponse(context.Background(), Request{Prompt: "write a haiku"})
	if err != nil {
		t.Fatalf("GenerateResponse failed: %v", err)
	}
	if resp.Content != "haiku here" {
		t.Errorf("Expected 'haiku here', got %q", resp.Content)
	}

	if fake.gotInput == nil || *fake.gotInput.ModelId != p.modelID {
		t.Fatal("Expected the configured model id in the invoke input")
	}

	var payload bedrockAnthropicRequest
	if err := json.Unmarshal(fake.gotInput.Body, &payload); err != nil {
		t.Fatalf("Invoke body is not valid JSON: %v", err)
	}
	if payload.AnthropicVersion != "bedrock-2023-05-31" {
		t.Errorf("Unexpected anthropic_version: %q", payload.AnthropicVersion)
	}
	if len(payload.Messages) != 1 || payload.Messages[0].Content != "write a haiku" {
		t.Errorf("Unexpected messages payload: %+v", payload.Messages)
	}
}

func TestBedrockInvokeError(t *testing.T) {
	fake := &fakeInvoker{err: errors.New("operation error Bedrock Runtime: AccessDeniedException")}
	p := &BedrockProvider{client: fake, modelID: "m", timeout: time.Second}

	_, err := p.GenerateResponse(context.Background(), Request{Prompt: "hi"})
	if err == nil {
		t.Fatal("Expected invoke error to propagate")
	}
}

func TestBedrockNoContent(t *testing.T) {
	fake := &fakeInvoker{
		output: &bedrockruntime.InvokeModelOutput{Body: []byte(`{"content":[]}`)},
	}
	p := &BedrockProvider{client: fake, modelID: "m", timeout: time.Second}

	_, err := p.GenerateResponse(context.Background(), Request{Prompt: "hi"})
	if !errors.Is(err, aierrors.ErrNoContent) {
		t.Errorf("Expected ErrNoContent, got %v", err)
	}
}
