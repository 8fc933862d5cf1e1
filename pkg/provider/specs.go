package provider

import (
	"github.com/mmichie/askfleet/pkg/config"
)

const (
	defaultOpenAIModel     = "gpt-4o-mini"
	defaultMistralModel    = "mistral-small-latest"
	defaultGroqModel       = "llama-3.1-8b-instant"
	defaultDeepSeekModel   = "deepseek-chat"
	defaultClaudeModel     = "claude-3-5-sonnet-20240620"
	defaultGrokModel       = "grok-2-latest"
	defaultCohereModel     = "command-r"
	defaultHFModel         = "meta-llama/Llama-3.1-8B-Instruct"
	defaultPerplexityModel = "sonar"
)

// openAICompatPaths covers every provider speaking the OpenAI
// chat-completions dialect: message content first, legacy completion
// text second.
var openAICompatPaths = []string{
	"choices.0.message.content",
	"choices.0.text",
}

// restSpecs are the plain-HTTP provider records, in dispatch order.
// Gemini and Bedrock use SDK adapters and are wired separately in
// BuildRegistry.
var restSpecs = []Spec{
	{
		Name:         "openai",
		DisplayName:  "OpenAI",
		URL:          "https://api.openai.com/v1/chat/completions",
		DefaultModel: defaultOpenAIModel,
		ExtractPaths: openAICompatPaths,
	},
	{
		Name:         "mistral",
		DisplayName:  "Mistral",
		URL:          "https://api.mistral.ai/v1/chat/completions",
		DefaultModel: defaultMistralModel,
		ExtractPaths: openAICompatPaths,
	},
	{
		Name:         "groq",
		DisplayName:  "Groq",
		URL:          "https://api.groq.com/openai/v1/chat/completions",
		DefaultModel: defaultGroqModel,
		ExtractPaths: openAICompatPaths,
		// Groq retires model names aggressively; retry these in order
		// when the configured one is gone.
		FallbackModels: []string{
			"llama-3.3-70b-versatile",
			"gemma2-9b-it",
		},
	},
	{
		Name:         "deepseek",
		DisplayName:  "DeepSeek",
		URL:          "https://api.deepseek.com/chat/completions",
		DefaultModel: defaultDeepSeekModel,
		ExtractPaths: openAICompatPaths,
	},
	{
		Name:         "claude",
		DisplayName:  "Claude",
		URL:          "https://api.anthropic.com/v1/messages",
		DefaultModel: defaultClaudeModel,
		AuthHeader:   "x-api-key",
		Headers: map[string]string{
			"anthropic-version": "2023-06-01",
		},
		BuildBody:    anthropicBody,
		ExtractPaths: []string{"content.0.text"},
	},
	{
		Name:         "grok",
		DisplayName:  "Grok",
		URL:          "https://api.x.ai/v1/chat/completions",
		DefaultModel: defaultGrokModel,
		ExtractPaths: openAICompatPaths,
	},
	{
		Name:         "cohere",
		DisplayName:  "Cohere",
		URL:          "https://api.cohere.com/v2/chat",
		DefaultModel: defaultCohereModel,
		ExtractPaths: []string{
			"message.content.0.text",
			"text",
		},
	},
	{
		Name:         "huggingface",
		DisplayName:  "Hugging Face",
		URL:          "https://router.huggingface.co/v1/chat/completions",
		DefaultModel: defaultHFModel,
		ExtractPaths: openAICompatPaths,
	},
	{
		Name:         "perplexity",
		DisplayName:  "Perplexity",
		URL:          "https://api.perplexity.ai/chat/completions",
		DefaultModel: defaultPerplexityModel,
		ExtractPaths: openAICompatPaths,
	},
}

// anthropicBody shapes the Anthropic messages payload. max_tokens is
// mandatory there.
func anthropicBody(model string, request Request) interface{} {
	maxTokens := request.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	body := map[string]interface{}{
		"model":      model,
		"max_tokens": maxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": request.Prompt},
		},
	}
	if request.Temperature > 0 {
		body["temperature"] = request.Temperature
	}
	return body
}

// Order is the canonical dispatch order when a request names no
// providers.
var Order = []string{
	"openai",
	"mistral",
	"gemini",
	"groq",
	"deepseek",
	"claude",
	"grok",
	"cohere",
	"huggingface",
	"perplexity",
	"bedrock",
}

// BuildRegistry constructs one adapter per known provider in the
// canonical order. Providers without a credential register as
// NotConfigured stand-ins so every selection still yields an answer.
func BuildRegistry(settings config.Settings) (*Registry, error) {
	specsByName := make(map[string]Spec, len(restSpecs))
	for _, spec := range restSpecs {
		specsByName[spec.Name] = spec
	}

	registry := NewRegistry()
	for _, name := range Order {
		var p Provider
		var err error

		switch name {
		case "gemini":
			p, err = newGeminiFromSettings(settings)
		case "bedrock":
			p, err = newBedrockFromSettings(settings)
		default:
			spec := specsByName[name]
			cfg := settings.Provider(name)
			if cfg.APIKey == "" {
				p = NewNotConfigured(spec.Name, spec.DisplayName, "")
			} else {
				p = NewREST(spec, cfg.APIKey, cfg.Model, settings.CallTimeout)
			}
		}
		if err != nil {
			return nil, err
		}

		if err := registry.Register(p); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

func newGeminiFromSettings(settings config.Settings) (Provider, error) {
	cfg := settings.Provider("gemini")
	if cfg.APIKey == "" {
		return NewNotConfigured("gemini", "Gemini", ""), nil
	}
	return NewGemini(cfg.APIKey, cfg.Model, settings.CallTimeout)
}

func newBedrockFromSettings(settings config.Settings) (Provider, error) {
	cfg := settings.Provider("bedrock")
	if cfg.APIKey == "" {
		return NewNotConfigured("bedrock", "Amazon Bedrock",
			"No AWS region configured for Amazon Bedrock."), nil
	}
	return NewBedrock(cfg.APIKey, cfg.Model, settings.CallTimeout)
}
