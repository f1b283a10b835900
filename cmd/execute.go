package cmd

import (
	"go.uber.org/zap"
)

// Execute runs the CLI and returns the terminal error, if any. Exit code
// mapping happens in main.
func Execute(logger *zap.Logger) error {
	root := NewRootCmd(logger)
	root.AddCommand(newVersionCmd())
	root.CompletionOptions.DisableDefaultCmd = true
	return root.Execute()
}
