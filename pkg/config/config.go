// Package config provides explicit, immutable configuration for askfleet.
// Settings are constructed once at startup and handed to each adapter;
// nothing reads the environment during request handling.
package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	aierrors "github.com/mmichie/askfleet/pkg/errors"
)

const (
	// DefaultMaxPromptChars is the prompt truncation cap. Zero disables it.
	DefaultMaxPromptChars = 2000

	// DefaultCallTimeout bounds each outbound provider call.
	DefaultCallTimeout = 20 * time.Second
)

// ProviderConfig holds the credential and optional model override for
// one provider. An empty APIKey disables the adapter (placeholder text)
// without failing the process.
type ProviderConfig struct {
	APIKey string
	Model  string
}

// Settings is the full process configuration.
type Settings struct {
	// ListenAddr is the HTTP bind address.
	ListenAddr string

	// DirectoryPath locates the static AI-directory JSON file.
	DirectoryPath string

	// MaxPromptChars caps prompts by truncation, never rejection.
	// Zero disables the cap.
	MaxPromptChars int

	// RejectEmptyPrompt makes POST /ask return 400 for a blank prompt
	// instead of forwarding it.
	RejectEmptyPrompt bool

	// CallTimeout bounds each individual outbound provider call.
	CallTimeout time.Duration

	// Providers maps provider name to its credential and model override.
	Providers map[string]ProviderConfig
}

// Option mutates Settings during construction, mainly for tests.
type Option func(*Settings)

// WithProvider sets one provider's credential and model override.
func WithProvider(name, apiKey, model string) Option {
	return func(s *Settings) {
		s.Providers[name] = ProviderConfig{APIKey: apiKey, Model: model}
	}
}

// WithMaxPromptChars sets the prompt truncation cap.
func WithMaxPromptChars(n int) Option {
	return func(s *Settings) {
		s.MaxPromptChars = n
	}
}

// WithRejectEmptyPrompt makes empty prompts a client error.
func WithRejectEmptyPrompt(reject bool) Option {
	return func(s *Settings) {
		s.RejectEmptyPrompt = reject
	}
}

// WithCallTimeout sets the per-call timeout.
func WithCallTimeout(d time.Duration) Option {
	return func(s *Settings) {
		s.CallTimeout = d
	}
}

// New creates Settings with defaults and applies options.
func New(options ...Option) Settings {
	s := Settings{
		ListenAddr:     ":8080",
		DirectoryPath:  "data/ai_directory.json",
		MaxPromptChars: DefaultMaxPromptChars,
		CallTimeout:    DefaultCallTimeout,
		Providers:      make(map[string]ProviderConfig),
	}

	for _, option := range options {
		option(&s)
	}

	return s
}

// Validate rejects settings no server could run with. Env-sourced
// numeric knobs can go negative or zero without it.
func (s Settings) Validate() error {
	if s.ListenAddr == "" {
		return errors.Wrap(aierrors.ErrInvalidConfig, "listen address is empty")
	}
	if s.MaxPromptChars < 0 {
		return errors.Wrapf(aierrors.ErrInvalidConfig, "max prompt chars is negative (%d)", s.MaxPromptChars)
	}
	if s.CallTimeout <= 0 {
		return errors.Wrapf(aierrors.ErrInvalidConfig, "call timeout is not positive (%s)", s.CallTimeout)
	}
	return nil
}

// envKeys names the credential and model-override environment variables
// for each provider. Bedrock has no API key; its region gates the adapter.
var envKeys = map[string][2]string{
	"openai":      {"OPENAI_API_KEY", "OPENAI_MODEL"},
	"mistral":     {"MISTRAL_API_KEY", "MISTRAL_MODEL"},
	"gemini":      {"GEMINI_API_KEY", "GEMINI_MODEL"},
	"groq":        {"GROQ_API_KEY", "GROQ_MODEL"},
	"deepseek":    {"DEEPSEEK_API_KEY", "DEEPSEEK_MODEL"},
	"claude":      {"CLAUDE_API_KEY", "CLAUDE_MODEL"},
	"grok":        {"GROK_API_KEY", "GROK_MODEL"},
	"cohere":      {"COHERE_API_KEY", "COHERE_MODEL"},
	"huggingface": {"HF_API_KEY", "HF_MODEL"},
	"perplexity":  {"PERPLEXITY_API_KEY", "PERPLEXITY_MODEL"},
	"bedrock":     {"BEDROCK_REGION", "BEDROCK_MODEL_ID"},
}

// FromEnvironment loads Settings from environment variables via viper.
// Missing credentials are left empty; the corresponding adapters answer
// with placeholder text instead of calling out.
func FromEnvironment() Settings {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ASKFLEET_ADDR", ":8080")
	v.SetDefault("ASKFLEET_DIRECTORY", "data/ai_directory.json")
	v.SetDefault("ASKFLEET_MAX_PROMPT_CHARS", DefaultMaxPromptChars)
	v.SetDefault("ASKFLEET_REJECT_EMPTY_PROMPT", false)
	v.SetDefault("ASKFLEET_CALL_TIMEOUT", DefaultCallTimeout)

	s := Settings{
		ListenAddr:        v.GetString("ASKFLEET_ADDR"),
		DirectoryPath:     v.GetString("ASKFLEET_DIRECTORY"),
		MaxPromptChars:    v.GetInt("ASKFLEET_MAX_PROMPT_CHARS"),
		RejectEmptyPrompt: v.GetBool("ASKFLEET_REJECT_EMPTY_PROMPT"),
		CallTimeout:       v.GetDuration("ASKFLEET_CALL_TIMEOUT"),
		Providers:         make(map[string]ProviderConfig, len(envKeys)),
	}

	for name, keys := range envKeys {
		s.Providers[name] = ProviderConfig{
			APIKey: v.GetString(keys[0]),
			Model:  v.GetString(keys[1]),
		}
	}

	return s
}

// Provider returns the configuration for a provider, or a zero value
// when none was set.
func (s Settings) Provider(name string) ProviderConfig {
	return s.Providers[name]
}
