package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"notecat/pkg/ignore"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func relPaths(files []File) []string {
	rels := make([]string, len(files))
	for i, f := range files {
		rels[i] = f.RelPath
	}
	return rels
}

func TestDiscoverDemoScenario(t *testing.T) {
	base := t.TempDir()
	writeFile(t, base, "a.py", "print('a')\n")
	writeFile(t, base, "b.md", "# b\n")
	writeFile(t, base, "skip/c.py", "print('c')\n")

	rules := &ignore.RuleSet{}
	rules.AddLines("skip/")

	files := Discover([]string{base}, "**/*", []string{".py", ".md"}, rules, zap.NewNop())

	assert.Equal(t, []string{"a.py", "b.md"}, relPaths(files))
	for _, f := range files {
		assert.True(t, filepath.IsAbs(f.Path))
		assert.Greater(t, f.Size, int64(0))
	}
	assert.Equal(t, ".py", files[0].Ext)
	assert.Equal(t, ".md", files[1].Ext)
}

func TestDiscoverExtensionFilter(t *testing.T) {
	base := t.TempDir()
	writeFile(t, base, "keep.MD", "upper\n")
	writeFile(t, base, "keep.md", "lower\n")
	writeFile(t, base, "drop.txt", "nope\n")

	files := Discover([]string{base}, "**/*", []string{".md"}, &ignore.RuleSet{}, zap.NewNop())
	assert.ElementsMatch(t, []string{"keep.MD", "keep.md"}, relPaths(files),
		"extension matching is case-insensitive")

	all := Discover([]string{base}, "**/*", nil, &ignore.RuleSet{}, zap.NewNop())
	assert.Len(t, all, 3, "empty extension set admits every file")
}

func TestDiscoverPattern(t *testing.T) {
	base := t.TempDir()
	writeFile(t, base, "src/main.go", "package main\n")
	writeFile(t, base, "src/util/helper.go", "package util\n")
	writeFile(t, base, "docs/readme.md", "# readme\n")

	files := Discover([]string{base}, "src/**", nil, &ignore.RuleSet{}, zap.NewNop())
	assert.Equal(t, []string{"src/main.go", "src/util/helper.go"}, relPaths(files))
}

func TestDiscoverMissingBasePathSkipped(t *testing.T) {
	base := t.TempDir()
	writeFile(t, base, "present.md", "here\n")
	missing := filepath.Join(base, "does-not-exist")

	files := Discover([]string{missing, base}, "**/*", nil, &ignore.RuleSet{}, zap.NewNop())
	assert.Equal(t, []string{"present.md"}, relPaths(files),
		"missing base path is skipped, run continues")
}

func TestDiscoverBasePathOrderAndDedup(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, first, "one.md", "1\n")
	writeFile(t, second, "two.md", "2\n")

	files := Discover([]string{first, second}, "**/*", nil, &ignore.RuleSet{}, zap.NewNop())
	assert.Equal(t, []string{"one.md", "two.md"}, relPaths(files),
		"base-path declaration order is preserved")

	// The same base path twice yields each file once, first occurrence kept.
	dup := Discover([]string{first, first}, "**/*", nil, &ignore.RuleSet{}, zap.NewNop())
	assert.Equal(t, []string{"one.md"}, relPaths(dup))
}

func TestDiscoverDeterministicOrdering(t *testing.T) {
	base := t.TempDir()
	writeFile(t, base, "z.md", "z\n")
	writeFile(t, base, "a/nested.md", "n\n")
	writeFile(t, base, "m.md", "m\n")

	first := relPaths(Discover([]string{base}, "**/*", nil, &ignore.RuleSet{}, zap.NewNop()))
	for i := 0; i < 5; i++ {
		again := relPaths(Discover([]string{base}, "**/*", nil, &ignore.RuleSet{}, zap.NewNop()))
		assert.Equal(t, first, again)
	}
}

func TestDiscoverPrunesIgnoredDirectories(t *testing.T) {
	base := t.TempDir()
	writeFile(t, base, "keep/file.md", "keep\n")
	writeFile(t, base, "node_modules/pkg/file.md", "drop\n")

	rules := &ignore.RuleSet{}
	rules.AddLines("node_modules/")

	files := Discover([]string{base}, "**/*", nil, rules, zap.NewNop())
	assert.Equal(t, []string{"keep/file.md"}, relPaths(files))
}

func TestDiscoverFileBasePath(t *testing.T) {
	base := t.TempDir()
	writeFile(t, base, "solo.md", "solo\n")

	files := Discover([]string{filepath.Join(base, "solo.md")}, "**/*", nil, &ignore.RuleSet{}, zap.NewNop())
	assert.Equal(t, []string{"solo.md"}, relPaths(files))
}
