package provider

import (
	"strings"
	"testing"
)

func TestSpecRecordsAreComplete(t *testing.T) {
	seen := make(map[string]bool)
	for _, spec := range restSpecs {
		if spec.Name == "" || spec.Name != strings.ToLower(spec.Name) {
			t.Errorf("Spec name must be non-empty lowercase, got %q", spec.Name)
		}
		if seen[spec.Name] {
			t.Errorf("Duplicate spec name %q", spec.Name)
		}
		seen[spec.Name] = true

		if spec.DisplayName == "" {
			t.Errorf("Spec %s missing display name", spec.Name)
		}
		if !strings.HasPrefix(spec.URL, "https://") {
			t.Errorf("Spec %s has a non-https URL: %q", spec.Name, spec.URL)
		}
		if spec.DefaultModel == "" {
			t.Errorf("Spec %s missing default model", spec.Name)
		}
		if len(spec.ExtractPaths) == 0 {
			t.Errorf("Spec %s has no extraction paths", spec.Name)
		}
	}
}

func TestOrderCoversEverySpec(t *testing.T) {
	inOrder := make(map[string]bool, len(Order))
	for _, name := range Order {
		inOrder[name] = true
	}

	for _, spec := range restSpecs {
		if !inOrder[spec.Name] {
			t.Errorf("Spec %q missing from dispatch order", spec.Name)
		}
	}
	if !inOrder["gemini"] || !inOrder["bedrock"] {
		t.Error("SDK-backed providers must appear in the dispatch order")
	}
}
