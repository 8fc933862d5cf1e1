package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	aierrors "github.com/mmichie/askfleet/pkg/errors"
	"github.com/mmichie/askfleet/pkg/httputil"
)

// BodyBuilder produces a provider's request payload for a model and request.
type BodyBuilder func(model string, request Request) interface{}

// Spec is the per-provider configuration record the REST engine runs on.
// A new provider is a new record, not new code.
type Spec struct {
	// Name is the registry identifier (lowercase).
	Name string

	// DisplayName is the human-readable name used in answers.
	DisplayName string

	// URL is the chat/generation endpoint.
	URL string

	// DefaultModel is used when no override is configured.
	DefaultModel string

	// Headers are extra static request headers. When BearerAuth is false
	// the credential must be injected here via the AuthHeader name.
	Headers map[string]string

	// AuthHeader names a custom credential header (e.g. "x-api-key").
	// Empty means standard "Authorization: Bearer <key>".
	AuthHeader string

	// BuildBody shapes the request payload. Nil means the OpenAI-compatible
	// chat-completions shape, which most providers speak.
	BuildBody BodyBuilder

	// ExtractPaths are dot-separated locations of the answer text in the
	// response payload, tried in order.
	ExtractPaths []string

	// FallbackModels is an ordered list of alternate models to retry
	// against when the primary model is rejected as retired. Most
	// providers leave this empty.
	FallbackModels []string
}

// RESTProvider is the generic engine driving every plain-HTTP provider.
type RESTProvider struct {
	spec    Spec
	apiKey  string
	model   string
	timeout time.Duration
	client  httputil.ClientOptions
}

// NewREST builds a REST adapter from its spec record. The model override
// may be empty; the spec's default is used then.
func NewREST(spec Spec, apiKey, model string, timeout time.Duration) *RESTProvider {
	if model == "" {
		model = spec.DefaultModel
	}
	return &RESTProvider{
		spec:    spec,
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
		client:  httputil.ClientOptions{Timeout: timeout},
	}
}

// Name returns the provider name
func (p *RESTProvider) Name() string {
	return p.spec.Name
}

// DisplayName returns the human-readable provider name
func (p *RESTProvider) DisplayName() string {
	return p.spec.DisplayName
}

// Model returns the model the adapter targets
func (p *RESTProvider) Model() string {
	return p.model
}

// GenerateResponse performs one bounded call, retrying through the
// spec's fallback models only when the primary model was retired.
func (p *RESTProvider) GenerateResponse(ctx context.Context, request Request) (Response, error) {
	resp, err := p.call(ctx, p.model, request)
	if err == nil {
		return resp, nil
	}

	if !isModelRetired(err) || len(p.spec.FallbackModels) == 0 {
		return Response{}, err
	}

	for _, fallback := range p.spec.FallbackModels {
		if fallback == p.model {
			continue
		}
		resp, ferr := p.call(ctx, fallback, request)
		if ferr == nil {
			return resp, nil
		}
	}

	// All fallbacks failed; the primary failure is the one to report.
	return Response{}, err
}

func (p *RESTProvider) call(ctx context.Context, model string, request Request) (Response, error) {
	build := p.spec.BuildBody
	if build == nil {
		build = openAIChatBody
	}

	details := httputil.RequestDetails{
		URL:         p.spec.URL,
		RequestBody: build(model, request),
		Headers:     p.headers(),
	}
	if p.spec.AuthHeader == "" {
		details.BearerToken = p.apiKey
	}

	body, err := httputil.SendRequest(ctx, details, p.client)
	if err != nil {
		if hasRetiredMarker(err) {
			err = fmt.Errorf("%w: %w", aierrors.ErrModelRetired, err)
		}
		return Response{}, aierrors.Wrap(err, p.spec.Name, "generate_response")
	}

	text, ok := extractText(body, p.spec.ExtractPaths)
	if !ok {
		return Response{}, aierrors.New(p.spec.Name, "extract_text", aierrors.ErrNoContent)
	}

	return Response{
		Content:  strings.TrimSpace(text),
		Model:    model,
		Provider: p.spec.Name,
	}, nil
}

func (p *RESTProvider) headers() map[string]string {
	headers := make(map[string]string, len(p.spec.Headers)+1)
	for k, v := range p.spec.Headers {
		headers[k] = v
	}
	if p.spec.AuthHeader != "" {
		headers[p.spec.AuthHeader] = p.apiKey
	}
	return headers
}

// openAIChatBody is the chat-completions payload most providers accept.
func openAIChatBody(model string, request Request) interface{} {
	body := map[string]interface{}{
		"model": model,
		"messages": []map[string]string{
			{"role": "user", "content": request.Prompt},
		},
	}
	if request.MaxTokens > 0 {
		body["max_tokens"] = request.MaxTokens
	}
	if request.Temperature > 0 {
		body["temperature"] = request.Temperature
	}
	return body
}

// retiredMarkers are the upstream phrasings for a model that no longer
// exists. Failures matching one are tagged with ErrModelRetired and are
// the only fallback-eligible ones.
var retiredMarkers = []string{
	"decommissioned",
	"deprecated",
	"no longer supported",
	"has been retired",
	"model_not_found",
	"model not found",
}

func hasRetiredMarker(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range retiredMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func isModelRetired(err error) bool {
	return errors.Is(err, aierrors.ErrModelRetired)
}

// extractText walks the decoded payload along each dot-separated path in
// turn and returns the first non-blank string it finds.
func extractText(body []byte, paths []string) (string, bool) {
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", false
	}

	for _, path := range paths {
		if text, ok := walkPath(doc, strings.Split(path, ".")); ok && strings.TrimSpace(text) != "" {
			return text, true
		}
	}

	return "", false
}

func walkPath(node interface{}, steps []string) (string, bool) {
	for _, step := range steps {
		switch v := node.(type) {
		case map[string]interface{}:
			next, exists := v[step]
			if !exists {
				return "", false
			}
			node = next
		case []interface{}:
			idx, err := strconv.Atoi(step)
			if err != nil || idx < 0 || idx >= len(v) {
				return "", false
			}
			node = v[idx]
		default:
			return "", false
		}
	}

	text, ok := node.(string)
	return text, ok
}
