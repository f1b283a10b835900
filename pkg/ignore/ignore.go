// Package ignore layers gitignore-style exclusion rules: a global rule file
// first, then project-specific rule files, so later and more specific
// patterns (including "!" re-includes) win.
package ignore

import (
	"fmt"
	"os"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// IgnoreFileName is looked up at the root of every base path.
const IgnoreFileName = ".notecat-ignore"

// RuleSet holds the compiled pattern list for one run. Patterns are applied
// in order; the last matching pattern decides, per gitignore convention.
type RuleSet struct {
	lines   []string
	matcher *gitignore.GitIgnore
}

// Load builds a RuleSet from an optional global rule file followed by any
// project-specific rule files. Missing files are skipped silently; rule
// files are optional everywhere.
func Load(globalPath string, projectPaths []string, logger *zap.Logger) (*RuleSet, error) {
	rs := &RuleSet{}

	paths := make([]string, 0, len(projectPaths)+1)
	if globalPath != "" {
		paths = append(paths, globalPath)
	}
	paths = append(paths, projectPaths...)

	for _, path := range paths {
		lines, err := readLines(path)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Debug("Ignore file not present", zap.String("path", path))
				continue
			}
			return nil, fmt.Errorf("failed to read ignore file %s: %w", path, err)
		}
		rs.lines = append(rs.lines, lines...)
		logger.Debug("Loaded ignore file",
			zap.String("path", path),
			zap.Int("lineCount", len(lines)))
	}

	rs.compile()
	return rs, nil
}

// AddLines appends additional patterns after everything already loaded, so
// they take precedence over file-sourced rules.
func (rs *RuleSet) AddLines(lines ...string) {
	rs.lines = append(rs.lines, lines...)
	rs.compile()
}

// Match reports whether a file at the given slash-separated relative path is
// excluded after all rules, including negations, are applied.
func (rs *RuleSet) Match(relPath string) bool {
	if rs.matcher == nil {
		return false
	}
	return rs.matcher.MatchesPath(relPath)
}

// MatchDir is Match for directories. The trailing slash makes
// directory-only patterns ("build/") apply, which lets traversal prune the
// whole subtree.
func (rs *RuleSet) MatchDir(relPath string) bool {
	if rs.matcher == nil {
		return false
	}
	return rs.matcher.MatchesPath(strings.TrimSuffix(relPath, "/") + "/")
}

// Len returns the number of raw pattern lines loaded, comments included.
func (rs *RuleSet) Len() int {
	return len(rs.lines)
}

func (rs *RuleSet) compile() {
	rs.matcher = gitignore.CompileIgnoreLines(rs.lines...)
}

// readLines splits an ignore file into lines. Comment and blank handling is
// left to the pattern compiler.
func readLines(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n"), nil
}
