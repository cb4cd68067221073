package output_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runesmith/runesmith/internal/output"
)

// TestWriteDocumentCreatesDirectoryAndFile verifies the output layout.
func TestWriteDocumentCreatesDirectoryAndFile(testingHandle *testing.T) {
	outputDirectory := filepath.Join(testingHandle.TempDir(), "docs")
	writtenPath, writeError := output.WriteDocument(outputDirectory, "API documentation", "# API\n")
	if writeError != nil {
		testingHandle.Fatalf("WriteDocument failed: %v", writeError)
	}
	if filepath.Base(writtenPath) != "api_documentation.md" {
		testingHandle.Fatalf("unexpected destination file name %q", writtenPath)
	}
	writtenBytes, readError := os.ReadFile(writtenPath)
	if readError != nil {
		testingHandle.Fatalf("reading written document: %v", readError)
	}
	if string(writtenBytes) != "# API\n" {
		testingHandle.Fatalf("unexpected document content %q", writtenBytes)
	}
}
