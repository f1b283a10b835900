// Package concat orchestrates one concatenation run: resolve the project and
// profile, discover files, read their content, format the document, and
// write it atomically.
package concat

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"notecat/pkg/config"
	"notecat/pkg/discover"
	"notecat/pkg/document"
	"notecat/pkg/ignore"
	"notecat/pkg/reader"
)

// ErrNoFiles is returned when discovery yields zero files for a non-dry-run
// invocation. Mapped to exit code 2 in main.
var ErrNoFiles = errors.New("no files discovered")

// Options carries the per-invocation settings resolved from CLI flags.
// Extensions and Output override the selected profile for this run only.
type Options struct {
	Profile    string
	Extensions []string
	Output     string
	DryRun     bool

	// Progress, when set, receives each file as its read completes.
	Progress func(reader.Result)
}

// Report summarizes one profile run.
type Report struct {
	Project    string
	Profile    string
	Files      []discover.File
	OutputPath string
	TotalBytes int64
	Elapsed    time.Duration
	Written    bool
}

// Run executes a single profile for the named project. In dry-run mode
// discovery still happens but nothing is read or written, and an empty
// result is not an error.
func Run(cfg *config.Config, projectName string, opts Options, logger *zap.Logger) (*Report, error) {
	start := time.Now()

	proj, err := cfg.Project(projectName)
	if err != nil {
		return nil, err
	}

	profileName := opts.Profile
	if profileName == "" {
		profileName, err = proj.DefaultProfileName()
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", projectName, err)
		}
	}
	prof, err := proj.Profile(profileName)
	if err != nil {
		return nil, fmt.Errorf("project %q: %w", projectName, err)
	}
	prof = prof.Merge(opts.Extensions, opts.Output)

	rules, err := loadRules(cfg, proj, logger)
	if err != nil {
		return nil, err
	}

	files := discover.Discover(proj.BasePaths, prof.Pattern, prof.Extensions, rules, logger)

	report := &Report{
		Project:    projectName,
		Profile:    profileName,
		Files:      files,
		OutputPath: resolveOutput(cfg.Settings.OutputDir, prof.Output),
	}
	for _, f := range files {
		report.TotalBytes += f.Size
	}

	if opts.DryRun {
		report.Elapsed = time.Since(start)
		return report, nil
	}

	if len(files) == 0 {
		return report, fmt.Errorf("project %q, profile %q: %w", projectName, profileName, ErrNoFiles)
	}

	results := reader.ReadAll(files, reader.Options{
		MaxFileSize: int64(cfg.Settings.MaxFileSizeKB) * 1024,
		MaxWorkers:  cfg.Settings.MaxWorkers,
		Progress:    opts.Progress,
	}, logger)

	doc := document.Format(document.Meta{
		ProjectName:        projectName,
		ProjectDescription: proj.Description,
		ProfileName:        profileName,
		ProfileDescription: prof.Description,
		GeneratedAt:        time.Now(),
	}, results)

	if err := document.WriteAtomic(report.OutputPath, doc, logger); err != nil {
		return report, err
	}
	report.Written = true
	report.Elapsed = time.Since(start)

	logger.Info("Successfully concatenated files",
		zap.String("project", projectName),
		zap.String("profile", profileName),
		zap.String("outputFile", report.OutputPath),
		zap.Int("totalFiles", len(files)))
	return report, nil
}

// RunAll executes every profile of the project sequentially, writing one
// output per profile. A profile with zero matches is reported and skipped;
// ErrNoFiles is returned only when every profile came up empty outside
// dry-run mode.
func RunAll(cfg *config.Config, projectName string, opts Options, logger *zap.Logger) ([]*Report, error) {
	proj, err := cfg.Project(projectName)
	if err != nil {
		return nil, err
	}

	var reports []*Report
	anyFiles := false
	for _, name := range proj.ProfileNames() {
		profOpts := opts
		profOpts.Profile = name
		// Each profile keeps its configured output name.
		profOpts.Output = ""

		report, err := Run(cfg, projectName, profOpts, logger)
		if err != nil {
			if errors.Is(err, ErrNoFiles) {
				logger.Warn("Profile matched no files, skipping",
					zap.String("project", projectName),
					zap.String("profile", name))
				reports = append(reports, report)
				continue
			}
			return reports, err
		}
		if len(report.Files) > 0 {
			anyFiles = true
		}
		reports = append(reports, report)
	}

	if !anyFiles && !opts.DryRun {
		return reports, fmt.Errorf("project %q: %w", projectName, ErrNoFiles)
	}
	return reports, nil
}

// loadRules layers the global ignore file first, then each base path's
// project-specific ignore file, so project rules override global ones.
func loadRules(cfg *config.Config, proj *config.Project, logger *zap.Logger) (*ignore.RuleSet, error) {
	projectFiles := make([]string, 0, len(proj.BasePaths))
	for _, base := range proj.BasePaths {
		projectFiles = append(projectFiles, filepath.Join(base, ignore.IgnoreFileName))
	}
	rules, err := ignore.Load(cfg.Settings.GlobalIgnore, projectFiles, logger)
	if err != nil {
		return nil, err
	}
	// The tool's own rule files never belong in the output.
	rules.AddLines(ignore.IgnoreFileName)
	return rules, nil
}

func resolveOutput(outputDir, output string) string {
	if outputDir == "" || filepath.IsAbs(output) {
		return output
	}
	return filepath.Join(outputDir, output)
}
