// Package httputil performs the single outbound JSON POST every REST
// adapter shares: marshal body, set auth headers, bounded timeout, read
// response. Failures keep the HTTP status code in the error message so
// they can be classified downstream.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RequestDetails holds the details for an HTTP request
type RequestDetails struct {
	URL         string
	BearerToken string
	RequestBody interface{}
	Headers     map[string]string
}

// ClientOptions holds options for customizing the HTTP client
type ClientOptions struct {
	Timeout time.Duration
	Client  *http.Client
}

// HTTPError is a non-2xx response, preserved with enough of the body to
// make the failure legible.
type HTTPError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
}

const maxErrorBodyBytes = 512

func drainAndCloseBody(body io.ReadCloser) {
	io.Copy(io.Discard, body)
	body.Close()
}

func createRequest(ctx context.Context, details RequestDetails) (*http.Request, error) {
	jsonBody, err := json.Marshal(details.RequestBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", details.URL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("error creating request for URL %s: %w", details.URL, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if details.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+details.BearerToken)
	}

	for key, value := range details.Headers {
		req.Header.Set(key, value)
	}

	return req, nil
}

// SendRequest performs one JSON POST and returns the raw response body.
// There is no retry: a failed call is the caller's to classify.
func SendRequest(ctx context.Context, details RequestDetails, options ClientOptions) ([]byte, error) {
	timeout := options.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}

	client := options.Client
	if client == nil {
		client = http.DefaultClient
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := createRequest(callCtx, details)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request to %s: %w", details.URL, err)
	}
	defer drainAndCloseBody(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response from %s: %w", details.URL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(body)
		if len(snippet) > maxErrorBodyBytes {
			snippet = snippet[:maxErrorBodyBytes]
		}
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			URL:        details.URL,
			Body:       snippet,
		}
	}

	return body, nil
}
