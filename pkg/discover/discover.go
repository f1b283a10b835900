// Package discover walks configured base paths and returns the ordered list
// of files matching a profile's glob pattern and extension filter, minus
// anything excluded by the ignore rules.
package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"

	"notecat/pkg/ignore"
)

// File describes one discovered file. Produced here, consumed read-only by
// the reader and formatter.
type File struct {
	Path    string // absolute resolved path
	RelPath string // slash-separated path relative to its base path
	Ext     string // lowercased extension including the dot
	Size    int64  // size in bytes
}

// Discover expands the glob pattern under each base path in declaration
// order, then filesystem traversal order. Candidates are filtered by
// extension (when the set is non-empty) and by the ignore rules before being
// added. Duplicate resolved paths keep their first occurrence.
//
// A base path that does not exist is logged and skipped; the run continues
// with the remaining base paths. Deciding whether an empty overall result is
// fatal is left to the caller.
func Discover(basePaths []string, pattern string, extensions []string, rules *ignore.RuleSet, logger *zap.Logger) []File {
	// The profile pattern shares gitignore glob semantics with the ignore
	// rules: "**" spans directories, a leading "/" anchors to the base
	// path, unanchored patterns match at any depth.
	patternMatcher := gitignore.CompileIgnoreLines(pattern)

	exts := normalizeExtensions(extensions)

	var files []File
	seen := make(map[string]struct{})

	for _, base := range basePaths {
		absBase, err := filepath.Abs(base)
		if err != nil {
			logger.Warn("Failed to resolve base path", zap.String("path", base), zap.Error(err))
			continue
		}

		info, err := os.Stat(absBase)
		if err != nil {
			logger.Warn("Base path does not exist or cannot be accessed",
				zap.String("path", absBase), zap.Error(err))
			continue
		}

		if !info.IsDir() {
			// A base path pointing straight at a file is accepted as a
			// single candidate.
			rel := filepath.ToSlash(filepath.Base(absBase))
			if candidate, ok := accept(absBase, rel, info.Size(), patternMatcher, exts, rules); ok {
				addUnique(&files, seen, candidate, logger)
			}
			continue
		}

		walkErr := filepath.WalkDir(absBase, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.Warn("Error accessing path during traversal",
					zap.String("path", path), zap.Error(err))
				return nil
			}
			if path == absBase {
				return nil
			}

			rel, relErr := filepath.Rel(absBase, path)
			if relErr != nil {
				return nil
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if rules.MatchDir(rel) {
					logger.Debug("Skipping ignored directory", zap.String("directory", path))
					return filepath.SkipDir
				}
				return nil
			}

			if !patternMatcher.MatchesPath(rel) {
				return nil
			}
			if !matchesExtension(rel, exts) {
				return nil
			}
			if rules.Match(rel) {
				logger.Debug("Skipping ignored file", zap.String("file", path))
				return nil
			}

			fileInfo, infoErr := d.Info()
			if infoErr != nil {
				logger.Warn("Failed to stat file during traversal",
					zap.String("path", path), zap.Error(infoErr))
				return nil
			}

			addUnique(&files, seen, File{
				Path:    resolvePath(path),
				RelPath: rel,
				Ext:     strings.ToLower(filepath.Ext(rel)),
				Size:    fileInfo.Size(),
			}, logger)
			return nil
		})
		if walkErr != nil {
			logger.Warn("Failed to traverse base path",
				zap.String("path", absBase), zap.Error(walkErr))
		}
	}

	logger.Debug("Discovery complete", zap.Int("fileCount", len(files)))
	return files
}

func accept(absPath, rel string, size int64, pattern *gitignore.GitIgnore, exts []string, rules *ignore.RuleSet) (File, bool) {
	if !pattern.MatchesPath(rel) || !matchesExtension(rel, exts) || rules.Match(rel) {
		return File{}, false
	}
	return File{
		Path:    resolvePath(absPath),
		RelPath: rel,
		Ext:     strings.ToLower(filepath.Ext(rel)),
		Size:    size,
	}, true
}

func addUnique(files *[]File, seen map[string]struct{}, f File, logger *zap.Logger) {
	if _, dup := seen[f.Path]; dup {
		logger.Debug("Dropping duplicate resolved path", zap.String("path", f.Path))
		return
	}
	seen[f.Path] = struct{}{}
	*files = append(*files, f)
}

// resolvePath follows symlinks so the same file reached through different
// base paths deduplicates to one entry.
func resolvePath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}

func normalizeExtensions(extensions []string) []string {
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return exts
}

// matchesExtension is a case-insensitive suffix match. An empty extension
// set admits every file.
func matchesExtension(rel string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	name := strings.ToLower(filepath.Base(rel))
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
