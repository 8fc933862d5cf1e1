package provider

import (
	"fmt"
	"strings"
	"sync"

	aierrors "github.com/mmichie/askfleet/pkg/errors"
)

// Registry manages the configured providers. Registration order is the
// dispatch order: Names and Resolve preserve it, and the aggregator's
// answers come back in it.
type Registry struct {
	mu        sync.RWMutex
	order     []string
	providers map[string]Provider
}

// NewRegistry creates a new provider registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider to the registry
func (r *Registry) Register(p Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(p.Name())
	if name == "" {
		return aierrors.New("registry", "register",
			fmt.Errorf("provider name cannot be empty"))
	}

	if _, exists := r.providers[name]; exists {
		return aierrors.New("registry", "register",
			fmt.Errorf("provider %q already registered", name))
	}

	r.providers[name] = p
	r.order = append(r.order, name)
	return nil
}

// Get returns a provider by name, matched case-insensitively.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.providers[strings.ToLower(strings.TrimSpace(name))]
	if !exists {
		return nil, aierrors.New("registry", "get",
			fmt.Errorf("provider %q not registered", name))
	}

	return p, nil
}

// Names returns registered provider names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, len(r.order))
	copy(result, r.order)
	return result
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Resolve maps a caller's provider selection to adapters. Entries are
// trimmed and lowercased; unknown or duplicate identifiers are silently
// dropped. An empty selection resolves to every provider in
// registration order.
func (r *Registry) Resolve(selection []string) []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(selection) == 0 {
		result := make([]Provider, 0, len(r.order))
		for _, name := range r.order {
			result = append(result, r.providers[name])
		}
		return result
	}

	seen := make(map[string]bool, len(selection))
	result := make([]Provider, 0, len(selection))
	for _, entry := range selection {
		name := strings.ToLower(strings.TrimSpace(entry))
		if name == "" || seen[name] {
			continue
		}
		if p, exists := r.providers[name]; exists {
			seen[name] = true
			result = append(result, p)
		}
	}

	return result
}

// Info describes a registered provider for the listing endpoint.
type Info struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Model       string `json:"model,omitempty"`
	Configured  bool   `json:"configured"`
}

// AllInfo returns information about every provider in registration order.
func (r *Registry) AllInfo() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Info, 0, len(r.order))
	for _, name := range r.order {
		p := r.providers[name]
		_, disabled := p.(*NotConfigured)
		result = append(result, Info{
			Name:        p.Name(),
			DisplayName: p.DisplayName(),
			Model:       p.Model(),
			Configured:  !disabled,
		})
	}

	return result
}
