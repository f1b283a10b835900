// Package document renders the concatenated output: a project header, a
// file-tree summary, and one fenced content section per file.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"notecat/pkg/reader"
)

// Meta carries the header fields for one generated document.
type Meta struct {
	ProjectName        string
	ProjectDescription string
	ProfileName        string
	ProfileDescription string
	GeneratedAt        time.Time
}

// Format assembles the full document. Sections appear in the results'
// order, which is the discoverer's deterministic order. Files whose read
// failed are rendered as a visible placeholder so the document accounts for
// every discovered file.
func Format(meta Meta, results []reader.Result) string {
	var b strings.Builder

	writeHeader(&b, meta, results)

	b.WriteString("## File Tree\n\n")
	relPaths := make([]string, len(results))
	for i, res := range results {
		relPaths[i] = res.File.RelPath
	}
	b.WriteString("```text\n")
	b.WriteString(RenderTree(relPaths))
	b.WriteString("```\n\n")

	b.WriteString("## Files\n")
	for _, res := range results {
		writeFileSection(&b, res)
	}

	return b.String()
}

func writeHeader(b *strings.Builder, meta Meta, results []reader.Result) {
	fmt.Fprintf(b, "# Project: %s\n\n", meta.ProjectName)
	if meta.ProjectDescription != "" {
		fmt.Fprintf(b, "**Description:** %s\n", meta.ProjectDescription)
	}
	profile := meta.ProfileName
	if meta.ProfileDescription != "" {
		profile = fmt.Sprintf("%s (%s)", profile, meta.ProfileDescription)
	}
	fmt.Fprintf(b, "**Profile:** %s\n", profile)
	fmt.Fprintf(b, "**Files:** %d\n", len(results))

	var total int64
	extSet := map[string]struct{}{}
	for _, res := range results {
		total += res.File.Size
		if res.File.Ext != "" {
			extSet[res.File.Ext] = struct{}{}
		}
	}
	fmt.Fprintf(b, "**Total size:** %s\n", humanSize(total))
	if len(extSet) > 0 {
		exts := make([]string, 0, len(extSet))
		for ext := range extSet {
			exts = append(exts, ext)
		}
		sort.Strings(exts)
		fmt.Fprintf(b, "**Extensions:** %s\n", strings.Join(exts, ", "))
	}
	fmt.Fprintf(b, "**Generated:** %s\n\n", meta.GeneratedAt.Format("2006-01-02 15:04:05"))
	b.WriteString(strings.Repeat("=", 80) + "\n\n")
}

func writeFileSection(b *strings.Builder, res reader.Result) {
	fmt.Fprintf(b, "\n### %s\n\n", res.File.RelPath)

	if res.Err != "" {
		fmt.Fprintf(b, "> [%s]\n", res.Err)
		return
	}

	fmt.Fprintf(b, "```%s\n", LanguageFor(res.File.RelPath))
	b.WriteString(res.Content)
	if !strings.HasSuffix(res.Content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n")
}

// WriteAtomic writes the document to a temporary file in the destination
// directory and renames it into place, so a partially written output is
// never visible to other readers.
func WriteAtomic(path, content string, logger *zap.Logger) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".notecat-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary output file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close output: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move output into place: %w", err)
	}

	logger.Debug("Wrote output file", zap.String("path", path), zap.Int("bytes", len(content)))
	return nil
}

func humanSize(n int64) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
