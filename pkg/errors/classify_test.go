package errors

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{"status 401", "request failed with status 401: invalid key", CategoryAuth},
		{"unauthorized word", "Unauthorized access", CategoryAuth},
		{"status 403", "request failed with status 403: region blocked", CategoryAccess},
		{"forbidden word", "this model is Forbidden", CategoryAccess},
		{"not allowed", "operation not allowed for this tier", CategoryAccess},
		{"permission", "missing permission for model", CategoryAccess},
		{"status 429", "request failed with status 429: slow down", CategoryRateLimit},
		{"quota word", "monthly quota exhausted", CategoryRateLimit},
		{"rate word", "rate limited, retry later", CategoryRateLimit},
		{"capacity word", "over capacity", CategoryRateLimit},
		{"status 500", "request failed with status 500: oops", CategoryUnavailable},
		{"status 503", "request failed with status 503", CategoryUnavailable},
		{"unavailable word", "service temporarily unavailable", CategoryUnavailable},
		{"timeout word", "i/o timeout while reading", CategoryUnavailable},
		{"timed out", "operation timed out", CategoryUnavailable},
		{"connection reset", "read: connection reset by peer", CategoryUnavailable},
		{"connection refused", "dial tcp: connection refused", CategoryUnavailable},
		{"no such host", "dial tcp: lookup api.example: no such host", CategoryUnavailable},
		{"deadline exceeded", "context deadline exceeded", CategoryUnavailable},
		{"bare eof", "error sending request to https://api.openai.com/v1/chat/completions: EOF", CategoryUnavailable},
		{"unexpected eof", "read response: unexpected EOF", CategoryUnavailable},
		{"unknown message", "foo bar", "Unexpected error: foo bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.message); got != tt.expected {
				t.Errorf("Classify(%q) = %q, want %q", tt.message, got, tt.expected)
			}
		})
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	// Auth outranks rate limiting when a message mentions both.
	msg := "status 401 after 429 throttling"
	if got := Classify(msg); got != CategoryAuth {
		t.Errorf("Classify(%q) = %q, want %q", msg, got, CategoryAuth)
	}

	// Access denial outranks unavailability.
	msg = "forbidden: upstream unavailable"
	if got := Classify(msg); got != CategoryAccess {
		t.Errorf("Classify(%q) = %q, want %q", msg, got, CategoryAccess)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	if got := Classify("UNAUTHORIZED"); got != CategoryAuth {
		t.Errorf("Classify uppercase = %q, want %q", got, CategoryAuth)
	}
	if got := Classify("Request Timed Out"); got != CategoryUnavailable {
		t.Errorf("Classify mixed case = %q, want %q", got, CategoryUnavailable)
	}
}

func TestClassifyError(t *testing.T) {
	err := errors.New("request failed with status 429: too many requests")
	if got := ClassifyError(err); got != CategoryRateLimit {
		t.Errorf("ClassifyError = %q, want %q", got, CategoryRateLimit)
	}
}
