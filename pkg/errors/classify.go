package errors

import "strings"

// Category strings returned to clients in place of raw transport errors.
const (
	CategoryAuth        = "Auth failed (check API key)."
	CategoryAccess      = "Access denied (model/region)."
	CategoryRateLimit   = "Rate limit or quota exceeded."
	CategoryUnavailable = "Provider unavailable."
)

// rule maps a set of message substrings to a category. Rules are
// evaluated in order; the first rule with a matching substring wins.
type rule struct {
	keywords []string
	category string
}

var classifyRules = []rule{
	{[]string{"401", "unauthorized"}, CategoryAuth},
	{[]string{"403", "forbidden", "not allowed", "permission"}, CategoryAccess},
	{[]string{"429", "quota", "rate", "capacity"}, CategoryRateLimit},
	{[]string{
		"500", "502", "503", "504",
		"unavailable", "timeout", "timed out",
		"connection reset", "connection refused", "no such host",
		"context deadline exceeded", "eof",
	}, CategoryUnavailable},
}

// Classify maps a raw transport or HTTP error message to a short
// human-readable category. It is a pure function of the message:
// matching is case-insensitive and the rule order is the priority
// order, so a message mentioning both 401 and 429 is an auth failure.
func Classify(msg string) string {
	lower := strings.ToLower(msg)
	for _, r := range classifyRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category
			}
		}
	}
	return "Unexpected error: " + msg
}

// ClassifyError applies Classify to an error's message.
func ClassifyError(err error) string {
	return Classify(err.Error())
}
