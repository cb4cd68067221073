// Package crawler walks a code path and concatenates eligible file contents
// into a single delimited corpus for language-model consumption.
package crawler

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/runesmith/runesmith/internal/ignore"
	"github.com/runesmith/runesmith/internal/utils"
)

// segmentHeaderFormat introduces every file segment inside the corpus.
const segmentHeaderFormat = "\n\n# File: %s\n"

// Segment is one collected file: its crawl-relative path and decoded content.
type Segment struct {
	Path    string
	Content string
}

// Corpus is the ordered sequence of collected segments. Traversal is lexical
// per directory level, so an unchanged tree always yields a byte-identical
// rendering.
type Corpus struct {
	Segments []Segment
}

// String renders the corpus as one delimited text, each segment preceded by a
// header identifying its originating path.
func (corpus *Corpus) String() string {
	var builder strings.Builder
	for _, segment := range corpus.Segments {
		builder.WriteString(fmt.Sprintf(segmentHeaderFormat, segment.Path))
		builder.WriteString(segment.Content)
	}
	return builder.String()
}

// FileCount returns the number of collected segments.
func (corpus *Corpus) FileCount() int {
	return len(corpus.Segments)
}

// Blacklist is a set of file-extension strings excluded from collection. Each
// entry includes the leading dot; extensionless files are listed under the
// no-extension marker.
type Blacklist map[string]struct{}

// NewBlacklist builds a Blacklist from configured extension strings.
func NewBlacklist(extensions []string) Blacklist {
	blacklist := make(Blacklist, len(extensions))
	for _, extension := range extensions {
		trimmedExtension := strings.TrimSpace(extension)
		if trimmedExtension == "" {
			continue
		}
		blacklist[trimmedExtension] = struct{}{}
	}
	return blacklist
}

// Contains reports whether the extension is blacklisted.
func (blacklist Blacklist) Contains(extension string) bool {
	_, present := blacklist[extension]
	return present
}

// NormalizedExtension returns the extension of filePath including the leading
// dot, or the no-extension marker when the file has none.
func NormalizedExtension(filePath string) string {
	extension := filepath.Ext(filePath)
	if extension == "" {
		return utils.NoExtensionLabel
	}
	return extension
}

// Collect gathers the eligible file contents under codePath into a Corpus.
// A directory is walked recursively with the root's ignore spec and the
// extension blacklist applied; a single file is included unless blacklisted.
// Unreadable or binary files are skipped with a warning, never fatally.
func Collect(codePath string, extensionBlacklist Blacklist, logger *zap.Logger) (*Corpus, error) {
	logger = utils.LoggerOrNop(logger)

	absoluteCodePath, absolutePathError := filepath.Abs(codePath)
	if absolutePathError != nil {
		return nil, fmt.Errorf("resolving %s: %w", codePath, absolutePathError)
	}
	cleanedCodePath := filepath.Clean(absoluteCodePath)

	pathInformation, statError := os.Stat(cleanedCodePath)
	if statError != nil {
		return nil, fmt.Errorf("stat %s: %w", codePath, statError)
	}

	if !pathInformation.IsDir() {
		return collectSingleFile(cleanedCodePath, extensionBlacklist, logger)
	}

	ignoreSpec, ignoreLoadError := ignore.Load(cleanedCodePath)
	if ignoreLoadError != nil {
		return nil, ignoreLoadError
	}

	corpus := &Corpus{}
	directoryWalkError := filepath.WalkDir(cleanedCodePath, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		if accessError != nil {
			logger.Warn("skipping inaccessible path", zap.String("path", walkedPath), zap.Error(accessError))
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relativePath := relativeForwardSlashPath(walkedPath, cleanedCodePath)
		if relativePath == "." {
			return nil
		}

		if directoryEntry.IsDir() {
			if directoryEntry.Name() == utils.GitDirectoryName || ignoreSpec.MatchesDirectory(relativePath) {
				return filepath.SkipDir
			}
			return nil
		}

		if directoryEntry.Name() == utils.GitIgnoreFileName {
			return nil
		}
		if ignoreSpec.Matches(relativePath) {
			return nil
		}
		if extensionBlacklist.Contains(NormalizedExtension(walkedPath)) {
			logger.Debug("skipping blacklisted file", zap.String("path", relativePath))
			return nil
		}

		segment, readable := readSegment(walkedPath, relativePath, logger)
		if readable {
			corpus.Segments = append(corpus.Segments, segment)
		}
		return nil
	})
	if directoryWalkError != nil {
		return nil, directoryWalkError
	}
	return corpus, nil
}

// collectSingleFile includes a bare file argument unless its extension is
// blacklisted. The containing directory's ignore spec is intentionally not
// consulted: a bare file carries no crawl root to derive ignore context from.
func collectSingleFile(filePath string, extensionBlacklist Blacklist, logger *zap.Logger) (*Corpus, error) {
	corpus := &Corpus{}
	if extensionBlacklist.Contains(NormalizedExtension(filePath)) {
		logger.Debug("skipping blacklisted file", zap.String("path", filePath))
		return corpus, nil
	}
	segment, readable := readSegment(filePath, filepath.Base(filePath), logger)
	if readable {
		corpus.Segments = append(corpus.Segments, segment)
	}
	return corpus, nil
}

// readSegment reads one file as text. Unreadable and binary files are reported
// as not readable after logging a warning.
func readSegment(filePath string, relativePath string, logger *zap.Logger) (Segment, bool) {
	fileBytes, readError := os.ReadFile(filePath)
	if readError != nil {
		logger.Warn("could not read file", zap.String("path", relativePath), zap.Error(readError))
		return Segment{}, false
	}
	if utils.IsBinary(fileBytes) {
		logger.Warn("skipping binary file", zap.String("path", relativePath))
		return Segment{}, false
	}
	return Segment{Path: relativePath, Content: string(fileBytes)}, true
}

// FindExtensions walks codePath with the same traversal and ignore policy as
// Collect and returns the sorted set of distinct extensions seen. Callers use
// it upstream to choose a blacklist.
func FindExtensions(codePath string) ([]string, error) {
	absoluteCodePath, absolutePathError := filepath.Abs(codePath)
	if absolutePathError != nil {
		return nil, fmt.Errorf("resolving %s: %w", codePath, absolutePathError)
	}
	cleanedCodePath := filepath.Clean(absoluteCodePath)

	pathInformation, statError := os.Stat(cleanedCodePath)
	if statError != nil {
		return nil, fmt.Errorf("stat %s: %w", codePath, statError)
	}
	if !pathInformation.IsDir() {
		return []string{NormalizedExtension(cleanedCodePath)}, nil
	}

	ignoreSpec, ignoreLoadError := ignore.Load(cleanedCodePath)
	if ignoreLoadError != nil {
		return nil, ignoreLoadError
	}

	extensionSet := make(map[string]struct{})
	directoryWalkError := filepath.WalkDir(cleanedCodePath, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		if accessError != nil {
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		relativePath := relativeForwardSlashPath(walkedPath, cleanedCodePath)
		if relativePath == "." {
			return nil
		}
		if directoryEntry.IsDir() {
			if directoryEntry.Name() == utils.GitDirectoryName || ignoreSpec.MatchesDirectory(relativePath) {
				return filepath.SkipDir
			}
			return nil
		}
		if directoryEntry.Name() == utils.GitIgnoreFileName || ignoreSpec.Matches(relativePath) {
			return nil
		}
		extensionSet[NormalizedExtension(walkedPath)] = struct{}{}
		return nil
	})
	if directoryWalkError != nil {
		return nil, directoryWalkError
	}

	extensions := make([]string, 0, len(extensionSet))
	for extension := range extensionSet {
		extensions = append(extensions, extension)
	}
	sort.Strings(extensions)
	return extensions, nil
}

// relativeForwardSlashPath returns walkedPath relative to root in forward-slash
// form, or the cleaned walkedPath when no relative form exists.
func relativeForwardSlashPath(walkedPath string, root string) string {
	relativePath, relativeError := filepath.Rel(root, walkedPath)
	if relativeError != nil {
		return filepath.ToSlash(filepath.Clean(walkedPath))
	}
	return filepath.ToSlash(relativePath)
}
