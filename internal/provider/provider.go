// Package provider normalizes heterogeneous language-model backends behind a
// single generation contract.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"

	"github.com/runesmith/runesmith/internal/registry"
	"github.com/runesmith/runesmith/internal/utils"
)

// Request carries one generation call to a backend.
type Request struct {
	Provider    string
	Model       string
	Instruction string
	Corpus      string
	Temperature float64
}

// Generator is the call contract the pipeline depends on.
type Generator interface {
	Generate(ctx context.Context, request Request) (string, error)
}

// UnsupportedProviderError reports a provider string outside the known
// variants. It is raised before any network attempt.
type UnsupportedProviderError struct {
	Provider string
}

// Error lists the valid provider options.
func (unsupportedProviderError *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported provider %q; valid options: %s",
		unsupportedProviderError.Provider, strings.Join(registry.SupportedProviders(), ", "))
}

// GenerationError wraps a backend failure with the provider identity.
type GenerationError struct {
	Provider string
	Err      error
}

// Error describes the failed generation.
func (generationError *GenerationError) Error() string {
	return fmt.Sprintf("generation via %s failed: %v", generationError.Provider, generationError.Err)
}

// Unwrap exposes the underlying cause.
func (generationError *GenerationError) Unwrap() error {
	return generationError.Err
}

// backendFactory constructs the langchaingo model for one provider variant.
type backendFactory func(ctx context.Context, modelName string) (llms.Model, error)

// backendFactories is the closed dispatch table; it is initialized once and
// never mutated.
var backendFactories = map[string]backendFactory{
	registry.ProviderOpenAI:      newOpenAIBackend,
	registry.ProviderAzureOpenAI: newAzureOpenAIBackend,
	registry.ProviderAnthropic:   newAnthropicBackend,
	registry.ProviderGoogle:      newGoogleBackend,
	registry.ProviderOllama:      newOllamaBackend,
}

// Dispatcher routes requests to the backend registered for their provider and
// normalizes the returned text.
type Dispatcher struct {
	logger *zap.Logger
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{logger: utils.LoggerOrNop(logger)}
}

// Generate dispatches the request and returns the unwrapped document text.
// Backend failures surface as a GenerationError; no retries are attempted.
func (dispatcher *Dispatcher) Generate(ctx context.Context, request Request) (string, error) {
	providerName := registry.NormalizeProvider(request.Provider)
	factory, supported := backendFactories[providerName]
	if !supported {
		return "", &UnsupportedProviderError{Provider: request.Provider}
	}

	backendModel, factoryError := factory(ctx, request.Model)
	if factoryError != nil {
		return "", &GenerationError{Provider: providerName, Err: factoryError}
	}

	dispatcher.logger.Debug("dispatching generation request",
		zap.String("provider", providerName), zap.String("model", request.Model))

	responseText, callError := generateText(ctx, backendModel, request)
	if callError != nil {
		return "", &GenerationError{Provider: providerName, Err: callError}
	}
	return UnwrapFencedBlock(responseText), nil
}

// generateText performs the uniform system-instruction plus corpus call and
// extracts plain text from the response.
func generateText(ctx context.Context, backendModel llms.Model, request Request) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, request.Instruction),
		llms.TextParts(llms.ChatMessageTypeHuman, request.Corpus),
	}
	response, generationError := backendModel.GenerateContent(ctx, messages, llms.WithTemperature(request.Temperature))
	if generationError != nil {
		return "", generationError
	}
	if response == nil || len(response.Choices) == 0 {
		return "", errors.New("backend returned an empty response")
	}
	return response.Choices[0].Content, nil
}
