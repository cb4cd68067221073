package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// executeCommand runs the root command with the given arguments and returns
// captured standard output.
func executeCommand(testingHandle *testing.T, arguments ...string) (string, error) {
	testingHandle.Helper()
	outputBuffer := &bytes.Buffer{}
	rootCommand := createRootCommand(zap.NewNop())
	rootCommand.SetOut(outputBuffer)
	rootCommand.SetErr(outputBuffer)
	rootCommand.SetArgs(arguments)
	executionError := rootCommand.Execute()
	return outputBuffer.String(), executionError
}

// TestModelsCommandListsRegistry verifies every provider section appears with
// at least one model and its window size.
func TestModelsCommandListsRegistry(testingHandle *testing.T) {
	commandOutput, executionError := executeCommand(testingHandle, "models")
	if executionError != nil {
		testingHandle.Fatalf("models command failed: %v", executionError)
	}
	for _, expectedFragment := range []string{
		"openai:", "azureopenai:", "anthropic:", "google:", "ollama:",
		"gpt-4o (context window 128000 tokens)",
		"claude-3-opus (context window 200000 tokens)",
	} {
		if !strings.Contains(commandOutput, expectedFragment) {
			testingHandle.Errorf("models output missing %q:\n%s", expectedFragment, commandOutput)
		}
	}
}

// TestExtensionsCommandScansPaths verifies the crawl-equivalent extension
// listing over two independent roots.
func TestExtensionsCommandScansPaths(testingHandle *testing.T) {
	firstRoot := testingHandle.TempDir()
	secondRoot := testingHandle.TempDir()
	if writeError := os.WriteFile(filepath.Join(firstRoot, "main.py"), []byte("print(1)\n"), 0o644); writeError != nil {
		testingHandle.Fatalf("writing fixture: %v", writeError)
	}
	if writeError := os.WriteFile(filepath.Join(secondRoot, "notes.txt"), []byte("notes\n"), 0o644); writeError != nil {
		testingHandle.Fatalf("writing fixture: %v", writeError)
	}

	commandOutput, executionError := executeCommand(testingHandle, "extensions", firstRoot, secondRoot)
	if executionError != nil {
		testingHandle.Fatalf("extensions command failed: %v", executionError)
	}
	firstIndex := strings.Index(commandOutput, ".py")
	secondIndex := strings.Index(commandOutput, ".txt")
	if firstIndex < 0 || secondIndex < 0 {
		testingHandle.Fatalf("extensions output missing entries:\n%s", commandOutput)
	}
	if firstIndex > secondIndex {
		testingHandle.Fatalf("extensions must be reported in input path order:\n%s", commandOutput)
	}
}

// TestExtensionsCommandMissingPath verifies scan failures surface as errors.
func TestExtensionsCommandMissingPath(testingHandle *testing.T) {
	missingPath := filepath.Join(testingHandle.TempDir(), "absent")
	_, executionError := executeCommand(testingHandle, "extensions", missingPath)
	if executionError == nil {
		testingHandle.Fatalf("expected error for a missing scan path")
	}
}

// TestGenerateRejectsInvalidConfiguration verifies validation runs before any
// pipeline work.
func TestGenerateRejectsInvalidConfiguration(testingHandle *testing.T) {
	configurationPath := filepath.Join(testingHandle.TempDir(), "config.yaml")
	configurationContent := `code_path: ./src
output_dir: ./docs
doc_types:
  - Changelog
model: gpt-4o
provider: openai
`
	if writeError := os.WriteFile(configurationPath, []byte(configurationContent), 0o644); writeError != nil {
		testingHandle.Fatalf("writing configuration: %v", writeError)
	}
	_, executionError := executeCommand(testingHandle, "generate", "--config", configurationPath)
	if executionError == nil || !strings.Contains(executionError.Error(), "unsupported documentation type") {
		testingHandle.Fatalf("expected documentation-type validation error, got %v", executionError)
	}
}

// TestGenerateFlagOverridesConfiguration verifies a command line flag wins
// over the file setting.
func TestGenerateFlagOverridesConfiguration(testingHandle *testing.T) {
	configurationPath := filepath.Join(testingHandle.TempDir(), "config.yaml")
	configurationContent := `code_path: ./src
output_dir: ./docs
doc_types:
  - Readme
model: gpt-4o
provider: openai
`
	if writeError := os.WriteFile(configurationPath, []byte(configurationContent), 0o644); writeError != nil {
		testingHandle.Fatalf("writing configuration: %v", writeError)
	}
	_, executionError := executeCommand(testingHandle,
		"generate", "--config", configurationPath, "--provider", "nonexistent")
	if executionError == nil || !strings.Contains(executionError.Error(), "unsupported provider") {
		testingHandle.Fatalf("expected the flag override to reach validation, got %v", executionError)
	}
}

// TestGenerateRequiresConfigurationOrFlags verifies the command refuses to
// run with nothing configured.
func TestGenerateRequiresConfigurationOrFlags(testingHandle *testing.T) {
	_, executionError := executeCommand(testingHandle, "generate")
	if executionError == nil || !strings.Contains(executionError.Error(), "code_path") {
		testingHandle.Fatalf("expected missing code_path error, got %v", executionError)
	}
}
