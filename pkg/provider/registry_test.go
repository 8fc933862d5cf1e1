package provider

import (
	"context"
	"testing"
	"time"

	"github.com/mmichie/askfleet/pkg/config"
)

// stubProvider is a minimal test provider
type stubProvider struct {
	name    string
	display string
	content string
}

func (p *stubProvider) GenerateResponse(ctx context.Context, request Request) (Response, error) {
	return Response{Content: p.content, Provider: p.name}, nil
}

func (p *stubProvider) Name() string        { return p.name }
func (p *stubProvider) DisplayName() string { return p.display }
func (p *stubProvider) Model() string       { return "stub-model" }

func TestRegistryOrder(t *testing.T) {
	reg := NewRegistry()

	for _, name := range []string{"charlie", "alpha", "bravo"} {
		if err := reg.Register(&stubProvider{name: name, display: name}); err != nil {
			t.Fatalf("Failed to register %s: %v", name, err)
		}
	}

	names := reg.Names()
	expected := []string{"charlie", "alpha", "bravo"}
	if len(names) != len(expected) {
		t.Fatalf("Expected %d names, got %d", len(expected), len(names))
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("Expected names[%d] = %q, got %q", i, name, names[i])
		}
	}
}

func TestRegistryDuplicate(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register(&stubProvider{name: "alpha"}); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}
	if err := reg.Register(&stubProvider{name: "alpha"}); err == nil {
		t.Error("Expected error when registering duplicate provider")
	}
	if err := reg.Register(&stubProvider{name: ""}); err == nil {
		t.Error("Expected error when registering empty name")
	}
}

func TestRegistryGet(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&stubProvider{name: "alpha", display: "Alpha"})

	p, err := reg.Get("  ALPHA ")
	if err != nil {
		t.Fatalf("Expected case-insensitive lookup to succeed: %v", err)
	}
	if p.Name() != "alpha" {
		t.Errorf("Expected provider alpha, got %s", p.Name())
	}

	if _, err := reg.Get("nonexistent"); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestRegistryResolve(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"a", "b", "c"} {
		reg.Register(&stubProvider{name: name, display: name})
	}

	// Empty selection resolves to everything in registration order.
	all := reg.Resolve(nil)
	if len(all) != 3 {
		t.Fatalf("Expected 3 providers, got %d", len(all))
	}
	if all[0].Name() != "a" || all[2].Name() != "c" {
		t.Error("Expected registration order for empty selection")
	}

	// Selection order wins over registration order.
	picked := reg.Resolve([]string{"b", "a"})
	if len(picked) != 2 {
		t.Fatalf("Expected 2 providers, got %d", len(picked))
	}
	if picked[0].Name() != "b" || picked[1].Name() != "a" {
		t.Errorf("Expected [b a], got [%s %s]", picked[0].Name(), picked[1].Name())
	}

	// Unknown identifiers are silently dropped.
	picked = reg.Resolve([]string{"a", "not-a-real-provider"})
	if len(picked) != 1 || picked[0].Name() != "a" {
		t.Errorf("Expected only 'a' to resolve, got %d providers", len(picked))
	}

	// Normalization: whitespace and case are forgiven, duplicates collapse.
	picked = reg.Resolve([]string{" A ", "a", "B"})
	if len(picked) != 2 {
		t.Fatalf("Expected 2 providers after normalization, got %d", len(picked))
	}
	if picked[0].Name() != "a" || picked[1].Name() != "b" {
		t.Errorf("Expected [a b], got [%s %s]", picked[0].Name(), picked[1].Name())
	}
}

func TestBuildRegistryOrderAndPlaceholders(t *testing.T) {
	// No credentials at all: every provider registers as NotConfigured.
	settings := config.New(config.WithCallTimeout(time.Second))

	reg, err := BuildRegistry(settings)
	if err != nil {
		t.Fatalf("BuildRegistry failed: %v", err)
	}

	names := reg.Names()
	if len(names) != len(Order) {
		t.Fatalf("Expected %d providers, got %d", len(Order), len(names))
	}
	for i, name := range Order {
		if names[i] != name {
			t.Errorf("Expected names[%d] = %q, got %q", i, name, names[i])
		}
	}

	for _, info := range reg.AllInfo() {
		if info.Configured {
			t.Errorf("Expected %s to be unconfigured", info.Name)
		}
	}
}

func TestBuildRegistryConfiguredProvider(t *testing.T) {
	settings := config.New(
		config.WithCallTimeout(time.Second),
		config.WithProvider("openai", "test-key", "gpt-4o"),
	)

	reg, err := BuildRegistry(settings)
	if err != nil {
		t.Fatalf("BuildRegistry failed: %v", err)
	}

	p, err := reg.Get("openai")
	if err != nil {
		t.Fatalf("Expected openai to be registered: %v", err)
	}
	if _, ok := p.(*RESTProvider); !ok {
		t.Errorf("Expected a REST adapter for configured openai, got %T", p)
	}
	if p.Model() != "gpt-4o" {
		t.Errorf("Expected model override gpt-4o, got %s", p.Model())
	}
}

func TestNotConfiguredPlaceholder(t *testing.T) {
	p := NewNotConfigured("openai", "OpenAI", "")

	resp, err := p.GenerateResponse(context.Background(), Request{Prompt: "hello"})
	if err != nil {
		t.Fatalf("NotConfigured should never fail: %v", err)
	}
	if resp.Content != "No API key configured for OpenAI." {
		t.Errorf("Unexpected placeholder text: %q", resp.Content)
	}
}
