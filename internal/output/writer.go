// Package output persists generated documents to the output directory.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/runesmith/runesmith/internal/instruction"
)

// DocumentPath returns the destination path for documentType inside
// outputDirectory.
func DocumentPath(outputDirectory string, documentType string) string {
	return filepath.Join(outputDirectory, instruction.OutputFileName(documentType))
}

// WriteDocument writes content to the destination for documentType, creating
// the output directory when needed, and returns the written path. Writing is
// the terminal event of a generated document's lifecycle.
func WriteDocument(outputDirectory string, documentType string, content string) (string, error) {
	if makeDirError := os.MkdirAll(outputDirectory, 0o755); makeDirError != nil {
		return "", fmt.Errorf("creating output directory %s: %w", outputDirectory, makeDirError)
	}
	destinationPath := DocumentPath(outputDirectory, documentType)
	if writeError := os.WriteFile(destinationPath, []byte(content), 0o644); writeError != nil {
		return "", fmt.Errorf("writing %s: %w", destinationPath, writeError)
	}
	return destinationPath, nil
}
