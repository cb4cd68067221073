// Package registry holds the static mapping from provider and model
// identifiers to context-window sizes. The tables are immutable after process
// start and consulted once per document request's budget check.
package registry

import (
	"fmt"
	"sort"
	"strings"
)

// Canonical provider identifiers. Lookups normalize case before matching.
const (
	ProviderOpenAI      = "openai"
	ProviderAzureOpenAI = "azureopenai"
	ProviderAnthropic   = "anthropic"
	ProviderGoogle      = "google"
	ProviderOllama      = "ollama"
)

// UnknownModelError reports a (provider, model) pair absent from the registry.
// A wrong window size risks truncated or rejected requests, so lookups never
// fall back to a default.
type UnknownModelError struct {
	Provider string
	Model    string
}

// Error describes the missing registry entry.
func (unknownModelError *UnknownModelError) Error() string {
	return fmt.Sprintf("unknown model %q for provider %q", unknownModelError.Model, unknownModelError.Provider)
}

// contextWindows maps canonical provider names to their models' context-window
// sizes in tokens.
var contextWindows = map[string]map[string]int{
	ProviderOpenAI: {
		"gpt-4.1":     1_000_000,
		"gpt-4o":      128_000,
		"gpt-4.5":     128_000,
		"gpt-4-turbo": 128_000,
	},
	ProviderAzureOpenAI: {
		"gpt-4o":      128_000,
		"gpt-4-turbo": 128_000,
		"gpt-4o-mini": 128_000,
	},
	ProviderAnthropic: {
		"claude-3.7-sonnet": 200_000,
		"claude-3.5-haiku":  200_000,
		"claude-3-opus":     200_000,
	},
	ProviderGoogle: {
		"gemini-2.5-pro-preview-03-25":   1_000_000,
		"gemini-2.5-flash-preview-04-17": 1_000_000,
		"gemini-2.0-flash":               1_000_000,
		"gemini-1.5-pro":                 2_000_000,
	},
	ProviderOllama: {
		"llama3.1":      131_072,
		"llama3":        8_192,
		"mistral":       32_768,
		"qwen2.5-coder": 32_768,
	},
}

// NormalizeProvider lowercases and trims a provider identifier.
func NormalizeProvider(providerName string) string {
	return strings.ToLower(strings.TrimSpace(providerName))
}

// IsSupportedProvider reports whether providerName names a known variant.
func IsSupportedProvider(providerName string) bool {
	_, supported := contextWindows[NormalizeProvider(providerName)]
	return supported
}

// SupportedProviders returns the sorted canonical provider names.
func SupportedProviders() []string {
	providers := make([]string, 0, len(contextWindows))
	for providerName := range contextWindows {
		providers = append(providers, providerName)
	}
	sort.Strings(providers)
	return providers
}

// Models returns the sorted model names registered for providerName.
func Models(providerName string) []string {
	providerModels := contextWindows[NormalizeProvider(providerName)]
	models := make([]string, 0, len(providerModels))
	for modelName := range providerModels {
		models = append(models, modelName)
	}
	sort.Strings(models)
	return models
}

// ContextWindow returns the context-window size in tokens for the given
// provider and model, or an UnknownModelError when the pair is not registered.
func ContextWindow(providerName string, modelName string) (int, error) {
	providerModels, providerKnown := contextWindows[NormalizeProvider(providerName)]
	if !providerKnown {
		return 0, &UnknownModelError{Provider: providerName, Model: modelName}
	}
	windowSize, modelKnown := providerModels[modelName]
	if !modelKnown {
		return 0, &UnknownModelError{Provider: providerName, Model: modelName}
	}
	return windowSize, nil
}
