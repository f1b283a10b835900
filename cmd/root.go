// Package cmd wires the notecat CLI surface.
package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"notecat/pkg/concat"
	"notecat/pkg/config"
	"notecat/pkg/reader"
)

// NewRootCmd builds the root command:
//
//	notecat --list
//	notecat <project> [--profile NAME | --all-profiles] [--extensions EXT ...]
//	        [--output PATH] [--dry-run] [--verbose]
func NewRootCmd(logger *zap.Logger) *cobra.Command {
	var (
		configPath  string
		listOnly    bool
		profileName string
		allProfiles bool
		extensions  []string
		outputPath  string
		dryRun      bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "notecat [project]",
		Short: "Notecat concatenates project files into a single document",
		Long: `Notecat discovers files across configured project directories by glob
pattern and extension filters and concatenates their contents into one
formatted Markdown document, ready for downstream text or AI review.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if listOnly {
				if len(args) > 0 {
					return fmt.Errorf("--list takes no project argument")
				}
				printProjectList(cmd, cfg)
				return nil
			}

			if len(args) == 0 {
				return cmd.Help()
			}
			project := args[0]

			opts := concat.Options{
				Profile:    profileName,
				Extensions: extensions,
				Output:     outputPath,
				DryRun:     dryRun,
			}
			if verbose {
				opts.Progress = newProgressPrinter(cmd.ErrOrStderr())
			}

			if allProfiles {
				reports, err := concat.RunAll(cfg, project, opts, logger)
				for _, report := range reports {
					printReport(cmd, report)
				}
				return err
			}

			report, err := concat.Run(cfg, project, opts, logger)
			if err != nil {
				return err
			}
			printReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "projects.yml", "path to the configuration file")
	cmd.Flags().BoolVar(&listOnly, "list", false, "list configured projects and profiles without discovery")
	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "profile to concatenate (default: the project's default profile)")
	cmd.Flags().BoolVar(&allProfiles, "all-profiles", false, "run every profile of the project, one output per profile")
	cmd.Flags().StringArrayVarP(&extensions, "extensions", "e", nil, "extension filter overriding the profile for this run")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path overriding the profile for this run")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "discover and report only; read and write nothing")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "per-file progress on standard error")

	cmd.MarkFlagsMutuallyExclusive("profile", "all-profiles")
	cmd.MarkFlagsMutuallyExclusive("output", "all-profiles")

	return cmd
}

// printReport shows the outcome of one profile run on stdout. Dry runs get
// the discovered file list instead of a write confirmation.
func printReport(cmd *cobra.Command, report *concat.Report) {
	if report == nil {
		return
	}
	out := cmd.OutOrStdout()

	if !report.Written {
		if len(report.Files) == 0 {
			fmt.Fprintf(out, "%s/%s: no files matched\n", report.Project, report.Profile)
			return
		}
		for _, f := range report.Files {
			fmt.Fprintln(out, f.RelPath)
		}
		fmt.Fprintf(out, "%s/%s: %d files would be written to %s\n",
			report.Project, report.Profile, len(report.Files), report.OutputPath)
		return
	}

	check := color.New(color.FgGreen).Sprint("✓")
	fmt.Fprintf(out, "%s %s/%s: %d files -> %s (%d bytes, %s)\n",
		check, report.Project, report.Profile, len(report.Files),
		report.OutputPath, report.TotalBytes, report.Elapsed.Round(time.Millisecond))
}

// newProgressPrinter returns a reader progress callback that writes one
// cyan line per completed file to stderr, leaving stdout untouched.
func newProgressPrinter(w io.Writer) func(reader.Result) {
	cyan := color.New(color.FgCyan)
	count := 0
	return func(res reader.Result) {
		count++
		status := "ok"
		if res.Err != "" {
			status = res.Err
		}
		cyan.Fprintf(w, "  [%d] %s (%s)\n", count, res.File.RelPath, status)
	}
}
