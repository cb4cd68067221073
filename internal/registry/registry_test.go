package registry_test

import (
	"errors"
	"testing"

	"github.com/runesmith/runesmith/internal/registry"
)

// TestContextWindowKnownModel verifies registered pairs resolve to their window size.
func TestContextWindowKnownModel(testingHandle *testing.T) {
	windowSize, lookupError := registry.ContextWindow("openai", "gpt-4o")
	if lookupError != nil {
		testingHandle.Fatalf("ContextWindow failed: %v", lookupError)
	}
	if windowSize != 128_000 {
		testingHandle.Fatalf("expected 128000 tokens, got %d", windowSize)
	}
}

// TestContextWindowIsCaseInsensitiveOnProvider verifies provider normalization.
func TestContextWindowIsCaseInsensitiveOnProvider(testingHandle *testing.T) {
	windowSize, lookupError := registry.ContextWindow("Anthropic", "claude-3-opus")
	if lookupError != nil {
		testingHandle.Fatalf("ContextWindow failed: %v", lookupError)
	}
	if windowSize != 200_000 {
		testingHandle.Fatalf("expected 200000 tokens, got %d", windowSize)
	}
}

// TestContextWindowUnknownModel verifies unknown pairs fail explicitly and never
// return a default value.
func TestContextWindowUnknownModel(testingHandle *testing.T) {
	unknownCases := []struct {
		provider string
		model    string
	}{
		{"nonexistent-provider", "nonexistent-model"},
		{"openai", "nonexistent-model"},
	}
	for _, unknownCase := range unknownCases {
		windowSize, lookupError := registry.ContextWindow(unknownCase.provider, unknownCase.model)
		if lookupError == nil {
			testingHandle.Fatalf("expected error for %q/%q, got window %d", unknownCase.provider, unknownCase.model, windowSize)
		}
		var unknownModelError *registry.UnknownModelError
		if !errors.As(lookupError, &unknownModelError) {
			testingHandle.Fatalf("expected UnknownModelError, got %T: %v", lookupError, lookupError)
		}
		if windowSize != 0 {
			testingHandle.Fatalf("unknown model must not return a window size, got %d", windowSize)
		}
	}
}

// TestSupportedProviders verifies the closed provider set.
func TestSupportedProviders(testingHandle *testing.T) {
	providers := registry.SupportedProviders()
	if len(providers) != 5 {
		testingHandle.Fatalf("expected 5 providers, got %v", providers)
	}
	for _, providerName := range providers {
		if !registry.IsSupportedProvider(providerName) {
			testingHandle.Fatalf("provider %q not reported as supported", providerName)
		}
		if len(registry.Models(providerName)) == 0 {
			testingHandle.Fatalf("provider %q has no registered models", providerName)
		}
	}
	if registry.IsSupportedProvider("nonexistent-provider") {
		testingHandle.Fatalf("unexpected provider reported as supported")
	}
}
