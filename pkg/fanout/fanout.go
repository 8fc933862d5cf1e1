// Package fanout dispatches one prompt to many providers concurrently
// and aggregates every outcome into an ordered answer list.
package fanout

import (
	"context"
	"errors"
	"strings"
	"sync"

	aierrors "github.com/mmichie/askfleet/pkg/errors"
	"github.com/mmichie/askfleet/pkg/provider"
)

// NoContentText replaces a successful response whose payload carried no
// recognizable answer text.
const NoContentText = "No content returned."

// Answer is one provider's outcome. Failures arrive here as classified
// text, never as absent entries.
type Answer struct {
	Provider string `json:"provider"`
	Text     string `json:"text"`
}

// Result is the aggregate of one prompt across all selected providers.
// Answers follow dispatch order, not completion order.
type Result struct {
	Prompt  string   `json:"prompt"`
	Answers []Answer `json:"answers"`
}

// Aggregator fans a prompt out to the registry's providers.
type Aggregator struct {
	registry       *provider.Registry
	maxPromptChars int
}

// New creates an Aggregator. maxPromptChars caps prompts by truncation;
// zero disables the cap.
func New(registry *provider.Registry, maxPromptChars int) *Aggregator {
	return &Aggregator{
		registry:       registry,
		maxPromptChars: maxPromptChars,
	}
}

// Aggregate resolves the selection, queries every resolved provider
// concurrently, and waits for all of them to settle. It never fails:
// each adapter's error is isolated and rendered into its answer text.
func (a *Aggregator) Aggregate(ctx context.Context, prompt string, selection []string) Result {
	prompt = a.truncate(prompt)
	resolved := a.registry.Resolve(selection)

	type indexedAnswer struct {
		index  int
		answer Answer
	}
	answerChan := make(chan indexedAnswer, len(resolved))

	var wg sync.WaitGroup
	wg.Add(len(resolved))

	for i, p := range resolved {
		go func(index int, prov provider.Provider) {
			defer wg.Done()
			answerChan <- indexedAnswer{
				index: index,
				answer: Answer{
					Provider: prov.DisplayName(),
					Text:     a.ask(ctx, prov, prompt),
				},
			}
		}(i, p)
	}

	go func() {
		wg.Wait()
		close(answerChan)
	}()

	answers := make([]Answer, len(resolved))
	for ia := range answerChan {
		answers[ia.index] = ia.answer
	}

	return Result{Prompt: prompt, Answers: answers}
}

// ask runs one provider call and renders its outcome as answer text.
func (a *Aggregator) ask(ctx context.Context, prov provider.Provider, prompt string) string {
	resp, err := prov.GenerateResponse(ctx, provider.Request{Prompt: prompt})
	if err != nil {
		if errors.Is(err, aierrors.ErrNoContent) {
			return NoContentText
		}
		return aierrors.Classify(rootMessage(err))
	}

	if strings.TrimSpace(resp.Content) == "" {
		return NoContentText
	}

	return resp.Content
}

// rootMessage strips the adapter's provider/op wrapping so classification
// sees only the transport or HTTP failure text.
func rootMessage(err error) string {
	var perr *aierrors.ProviderError
	if errors.As(err, &perr) && perr.Err != nil {
		return perr.Err.Error()
	}
	return err.Error()
}

func (a *Aggregator) truncate(prompt string) string {
	if a.maxPromptChars <= 0 {
		return prompt
	}
	runes := []rune(prompt)
	if len(runes) <= a.maxPromptChars {
		return prompt
	}
	return string(runes[:a.maxPromptChars])
}
