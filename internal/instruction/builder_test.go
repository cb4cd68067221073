package instruction_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/runesmith/runesmith/internal/instruction"
)

const existingReadmeContent = "# Old Readme\n\nPreviously generated content.\n"

// TestOutputFileNameNormalization verifies lowercasing and space substitution.
func TestOutputFileNameNormalization(testingHandle *testing.T) {
	fileNameCases := []struct {
		documentType string
		expected     string
	}{
		{"Readme", "readme.md"},
		{"API documentation", "api_documentation.md"},
		{"Quickstart guide", "quickstart_guide.md"},
		{"User guide", "user_guide.md"},
	}
	for _, fileNameCase := range fileNameCases {
		if actual := instruction.OutputFileName(fileNameCase.documentType); actual != fileNameCase.expected {
			testingHandle.Errorf("OutputFileName(%q) = %q, want %q", fileNameCase.documentType, actual, fileNameCase.expected)
		}
	}
}

// TestBuildRejectsUnknownDocumentType verifies vocabulary enforcement.
func TestBuildRejectsUnknownDocumentType(testingHandle *testing.T) {
	_, buildError := instruction.Build("Changelog", "", testingHandle.TempDir(), testingHandle.TempDir())
	if buildError == nil {
		testingHandle.Fatalf("expected error for an unsupported documentation type")
	}
}

// TestBuildEmbedsExistingDocumentOutsideCodePath verifies the minimal-update
// trigger: a prior document in a disjoint output directory is embedded.
func TestBuildEmbedsExistingDocumentOutsideCodePath(testingHandle *testing.T) {
	codePath := testingHandle.TempDir()
	outputDirectory := testingHandle.TempDir()
	existingPath := filepath.Join(outputDirectory, "readme.md")
	if writeError := os.WriteFile(existingPath, []byte(existingReadmeContent), 0o644); writeError != nil {
		testingHandle.Fatalf("writing existing document: %v", writeError)
	}

	instructionText, buildError := instruction.Build(instruction.DocTypeReadme, "", outputDirectory, codePath)
	if buildError != nil {
		testingHandle.Fatalf("Build failed: %v", buildError)
	}
	if !strings.Contains(instructionText, existingReadmeContent) {
		testingHandle.Fatalf("instruction must embed the existing document content")
	}
	if !strings.Contains(instructionText, "minimal, safe changes") {
		testingHandle.Fatalf("instruction must carry the minimal-update directive")
	}
}

// TestBuildSkipsExistingDocumentInsideCodePath verifies the self-capture guard:
// a prior document underneath the crawled path is never embedded.
func TestBuildSkipsExistingDocumentInsideCodePath(testingHandle *testing.T) {
	codePath := testingHandle.TempDir()
	outputDirectory := filepath.Join(codePath, "docs")
	if makeDirError := os.MkdirAll(outputDirectory, 0o755); makeDirError != nil {
		testingHandle.Fatalf("mkdir: %v", makeDirError)
	}
	existingPath := filepath.Join(outputDirectory, "readme.md")
	if writeError := os.WriteFile(existingPath, []byte(existingReadmeContent), 0o644); writeError != nil {
		testingHandle.Fatalf("writing existing document: %v", writeError)
	}

	instructionText, buildError := instruction.Build(instruction.DocTypeReadme, "", outputDirectory, codePath)
	if buildError != nil {
		testingHandle.Fatalf("Build failed: %v", buildError)
	}
	if strings.Contains(instructionText, existingReadmeContent) {
		testingHandle.Fatalf("instruction must not embed a document that lies inside the code path")
	}
	if strings.Contains(instructionText, "minimal, safe changes") {
		testingHandle.Fatalf("instruction must not carry the minimal-update directive without a usable prior document")
	}
}

// TestBuildAppendsCustomInstructionVerbatim verifies pass-through of operator guidance.
func TestBuildAppendsCustomInstructionVerbatim(testingHandle *testing.T) {
	customInstruction := "Write in British English. Keep sections under 200 words."
	instructionText, buildError := instruction.Build(instruction.DocTypeReference, customInstruction, testingHandle.TempDir(), testingHandle.TempDir())
	if buildError != nil {
		testingHandle.Fatalf("Build failed: %v", buildError)
	}
	if !strings.Contains(instructionText, customInstruction) {
		testingHandle.Fatalf("custom instruction must be appended verbatim")
	}
}

// TestSupportedDocumentTypes verifies the fixed vocabulary.
func TestSupportedDocumentTypes(testingHandle *testing.T) {
	documentTypes := instruction.SupportedDocumentTypes()
	if len(documentTypes) != 6 {
		testingHandle.Fatalf("expected 6 document types, got %v", documentTypes)
	}
	for _, documentType := range documentTypes {
		if !instruction.IsSupportedDocumentType(documentType) {
			testingHandle.Fatalf("document type %q not reported as supported", documentType)
		}
	}
	if instruction.IsSupportedDocumentType("Changelog") {
		testingHandle.Fatalf("unexpected document type reported as supported")
	}
}
