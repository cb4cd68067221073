package provider

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Environment variables carrying provider credentials. The local variant
// requires none.
const (
	openAIKeyVariable          = "OPENAI_API_KEY"
	azureOpenAIKeyVariable     = "AZURE_OPENAI_KEY"
	azureEndpointVariable      = "AZURE_OPENAI_ENDPOINT"
	azureAPIVersionVariable    = "AZURE_OPENAI_API_VERSION"
	defaultAzureAPIVersion     = "2024-02-01"
	anthropicKeyVariable       = "ANTHROPIC_API_KEY"
	geminiKeyVariable          = "GEMINI_API_KEY"
	ollamaHostVariable         = "OLLAMA_HOST"
	defaultOllamaServerAddress = "http://localhost:11434"
)

// requireSecret reads a credential from the process environment, failing with
// a descriptive error when absent.
func requireSecret(variableName string) (string, error) {
	secretValue := strings.TrimSpace(os.Getenv(variableName))
	if secretValue == "" {
		return "", fmt.Errorf("environment variable %s is not set", variableName)
	}
	return secretValue, nil
}

// newOpenAIBackend builds the OpenAI-compatible variant.
func newOpenAIBackend(_ context.Context, modelName string) (llms.Model, error) {
	secretValue, secretError := requireSecret(openAIKeyVariable)
	if secretError != nil {
		return nil, secretError
	}
	return openai.New(
		openai.WithToken(secretValue),
		openai.WithModel(modelName),
	)
}

// newAzureOpenAIBackend builds the Azure-hosted OpenAI-compatible variant.
func newAzureOpenAIBackend(_ context.Context, modelName string) (llms.Model, error) {
	secretValue, secretError := requireSecret(azureOpenAIKeyVariable)
	if secretError != nil {
		return nil, secretError
	}
	endpointValue, endpointError := requireSecret(azureEndpointVariable)
	if endpointError != nil {
		return nil, endpointError
	}
	apiVersion := strings.TrimSpace(os.Getenv(azureAPIVersionVariable))
	if apiVersion == "" {
		apiVersion = defaultAzureAPIVersion
	}
	return openai.New(
		openai.WithAPIType(openai.APITypeAzure),
		openai.WithToken(secretValue),
		openai.WithBaseURL(endpointValue),
		openai.WithAPIVersion(apiVersion),
		openai.WithModel(modelName),
	)
}

// newAnthropicBackend builds the Anthropic variant.
func newAnthropicBackend(_ context.Context, modelName string) (llms.Model, error) {
	secretValue, secretError := requireSecret(anthropicKeyVariable)
	if secretError != nil {
		return nil, secretError
	}
	return anthropic.New(
		anthropic.WithToken(secretValue),
		anthropic.WithModel(modelName),
	)
}

// newGoogleBackend builds the Gemini variant.
func newGoogleBackend(ctx context.Context, modelName string) (llms.Model, error) {
	secretValue, secretError := requireSecret(geminiKeyVariable)
	if secretError != nil {
		return nil, secretError
	}
	return googleai.New(ctx,
		googleai.WithAPIKey(secretValue),
		googleai.WithDefaultModel(modelName),
	)
}

// newOllamaBackend builds the local-inference variant; no credential is needed.
func newOllamaBackend(_ context.Context, modelName string) (llms.Model, error) {
	serverAddress := strings.TrimSpace(os.Getenv(ollamaHostVariable))
	if serverAddress == "" {
		serverAddress = defaultOllamaServerAddress
	}
	return ollama.New(
		ollama.WithServerURL(serverAddress),
		ollama.WithModel(modelName),
	)
}
