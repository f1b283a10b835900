package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"notecat/pkg/config"
)

// printProjectList enumerates the configured projects with their
// descriptions and profile names. No file discovery happens here.
func printProjectList(cmd *cobra.Command, cfg *config.Config) {
	out := cmd.OutOrStdout()
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	for _, name := range cfg.ProjectNames() {
		proj := cfg.Projects[name]

		cyan.Fprint(out, name)
		if proj.Description != "" {
			fmt.Fprintf(out, " — %s", proj.Description)
		}
		fmt.Fprintln(out)

		fmt.Fprint(out, "  profiles: ")
		yellow.Fprintln(out, strings.Join(proj.ProfileNames(), ", "))
	}
}
