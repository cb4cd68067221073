// Package instruction assembles the system instruction for one documentation
// request, choosing between fresh generation and a minimal update of an
// existing document.
package instruction

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/runesmith/runesmith/internal/utils"
)

// Document type vocabulary.
const (
	DocTypeReadme     = "Readme"
	DocTypeAPI        = "API documentation"
	DocTypeQuickstart = "Quickstart guide"
	DocTypeTutorial   = "Tutorial"
	DocTypeUserGuide  = "User guide"
	DocTypeReference  = "Reference"
)

const (
	// minimalUpdateDirective instructs the model to revise conservatively
	// instead of rewriting. Minimal update is a prompting strategy; the actual
	// edit behavior is delegated to the model.
	minimalUpdateDirective = "The documentation already exists. Update, proofread, and tweak it, making only minimal, safe changes. " +
		"Preserve all critical information or replace with equivalent, updated information. " +
		"IMPORTANT: do NOT introduce major rewrites or alter content unnecessarily."
	existingDocumentHeader   = "The existing document follows:"
	freshGenerationDirective = "No prior document exists. Write it from the provided codebase alone, in well-structured Markdown."
)

// documentTypeTemplates holds the base instruction for each supported type,
// describing the target document's purpose and expected structure.
var documentTypeTemplates = map[string]string{
	DocTypeReadme: "You are an expert coder and explainer that writes a high-quality project Readme for developers. " +
		"Cover what the project does, why it is useful, how to install it, basic usage, and how to contribute.",
	DocTypeAPI: "You are an expert coder and explainer that writes high-quality API documentation for developers. " +
		"Document every public interface: signatures, parameters, return values, errors, and a short example per entry point.",
	DocTypeQuickstart: "You are an expert coder and explainer that writes a high-quality Quickstart guide for developers. " +
		"Lead a newcomer from installation to a first working result in as few steps as possible.",
	DocTypeTutorial: "You are an expert coder and explainer that writes a high-quality Tutorial for developers. " +
		"Walk through a realistic task end to end, explaining each step and the reasoning behind it.",
	DocTypeUserGuide: "You are an expert coder and explainer that writes a high-quality User guide for developers. " +
		"Organize by task: configuration, everyday operations, and troubleshooting, with examples.",
	DocTypeReference: "You are an expert coder and explainer that writes a high-quality Reference for developers. " +
		"Enumerate commands, options, file formats, and environment variables exhaustively and precisely.",
}

// documentTypeOrder fixes the canonical vocabulary ordering.
var documentTypeOrder = []string{
	DocTypeReadme,
	DocTypeAPI,
	DocTypeQuickstart,
	DocTypeTutorial,
	DocTypeUserGuide,
	DocTypeReference,
}

// SupportedDocumentTypes returns the fixed documentation vocabulary in
// canonical order.
func SupportedDocumentTypes() []string {
	documentTypes := make([]string, len(documentTypeOrder))
	copy(documentTypes, documentTypeOrder)
	return documentTypes
}

// IsSupportedDocumentType reports whether documentType belongs to the vocabulary.
func IsSupportedDocumentType(documentType string) bool {
	_, supported := documentTypeTemplates[documentType]
	return supported
}

// OutputFileName returns the destination file name for a document type:
// lowercased, spaces replaced with underscores, with a Markdown suffix.
func OutputFileName(documentType string) string {
	return strings.ReplaceAll(strings.ToLower(documentType), " ", "_") + utils.MarkdownFileSuffix
}

// Build assembles the instruction text for documentType. The custom
// instruction is appended verbatim when non-empty. When a prior document
// exists at outputDirectory and does not lie inside codePath, its content is
// embedded with a minimal-update directive; otherwise the instruction directs
// fresh generation. Build is a pure function of filesystem state at call time.
func Build(documentType string, customInstruction string, outputDirectory string, codePath string) (string, error) {
	template, known := documentTypeTemplates[documentType]
	if !known {
		return "", fmt.Errorf("unsupported documentation type %q", documentType)
	}

	var builder strings.Builder
	builder.WriteString(template)
	if strings.TrimSpace(customInstruction) != "" {
		builder.WriteString("\n")
		builder.WriteString(customInstruction)
	}

	existingDocumentPath := filepath.Join(outputDirectory, OutputFileName(documentType))
	existingContent, usable := readExistingDocument(existingDocumentPath, codePath)
	if usable {
		builder.WriteString("\n")
		builder.WriteString(minimalUpdateDirective)
		builder.WriteString("\n")
		builder.WriteString(existingDocumentHeader)
		builder.WriteString("\n")
		builder.WriteString(existingContent)
	} else {
		builder.WriteString("\n")
		builder.WriteString(freshGenerationDirective)
	}
	return builder.String(), nil
}

// readExistingDocument returns the prior document's content when it exists and
// does not resolve to a path under codePath. The containment guard prevents
// the model from treating its own crawled, unfinished output as ground truth.
func readExistingDocument(documentPath string, codePath string) (string, bool) {
	documentInformation, statError := os.Stat(documentPath)
	if statError != nil || documentInformation.IsDir() {
		return "", false
	}
	if isWithinDirectory(documentPath, codePath) {
		return "", false
	}
	documentBytes, readError := os.ReadFile(documentPath)
	if readError != nil {
		return "", false
	}
	return string(documentBytes), true
}

// isWithinDirectory reports whether path lies under directory. Both paths are
// made absolute and symlinks are resolved first, so a symlinked output
// directory pointing into the crawled tree still counts as inside.
func isWithinDirectory(path string, directory string) bool {
	resolvedPath, pathError := resolvePath(path)
	resolvedDirectory, directoryError := resolvePath(directory)
	if pathError != nil || directoryError != nil {
		return false
	}
	relativePath, relativeError := filepath.Rel(resolvedDirectory, resolvedPath)
	if relativeError != nil {
		return false
	}
	if relativePath == "." || relativePath == ".." {
		return relativePath == "."
	}
	return !strings.HasPrefix(relativePath, ".."+string(filepath.Separator))
}

// resolvePath returns the absolute, symlink-resolved form of path.
func resolvePath(path string) (string, error) {
	absolutePath, absoluteError := filepath.Abs(path)
	if absoluteError != nil {
		return "", absoluteError
	}
	resolvedPath, resolveError := filepath.EvalSymlinks(absolutePath)
	if resolveError != nil {
		return absolutePath, nil
	}
	return resolvedPath, nil
}
