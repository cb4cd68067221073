// Package ignore resolves a crawl root's ignore-pattern file into a compiled matcher.
package ignore

import (
	"fmt"
	"os"
	"path/filepath"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/runesmith/runesmith/internal/utils"
)

// Spec matches crawl-relative paths against the compiled patterns of a root's
// ignore file. A nil Spec matches nothing.
type Spec struct {
	matcher *gitignore.GitIgnore
}

// Load reads the ignore-pattern file at rootDirectory and compiles it into a
// Spec. A missing file is not an error and yields a nil Spec.
func Load(rootDirectory string) (*Spec, error) {
	ignoreFilePath := filepath.Join(rootDirectory, utils.GitIgnoreFileName)
	matcher, compileError := gitignore.CompileIgnoreFile(ignoreFilePath)
	if compileError != nil {
		if os.IsNotExist(compileError) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading %s: %w", ignoreFilePath, compileError)
	}
	return &Spec{matcher: matcher}, nil
}

// Matches reports whether the forward-slash relative path is excluded.
func (spec *Spec) Matches(relativePath string) bool {
	if spec == nil || spec.matcher == nil {
		return false
	}
	return spec.matcher.MatchesPath(relativePath)
}

// MatchesDirectory reports whether a directory at the forward-slash relative
// path is excluded, honoring trailing-slash directory-only rules.
func (spec *Spec) MatchesDirectory(relativePath string) bool {
	if spec == nil || spec.matcher == nil {
		return false
	}
	return spec.matcher.MatchesPath(relativePath) || spec.matcher.MatchesPath(relativePath+"/")
}
