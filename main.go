package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"notecat/cmd"
	"notecat/pkg/concat"
	"notecat/pkg/logging"
	"notecat/pkg/version"
)

// Exit codes promised by the CLI contract.
const (
	exitOK      = 0
	exitFailure = 1 // project/profile not found, config or write errors
	exitNoFiles = 2 // zero files discovered outside dry-run mode
)

func main() {
	logger, err := logging.New(verboseRequested(os.Args[1:]), "notecat", version.Get().Version)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	runErr := cmd.Execute(logger)

	// Check if stderr is a terminal or a regular file before attempting to sync.
	if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
		if syncErr := logger.Sync(); syncErr != nil {
			lowerErr := strings.ToLower(syncErr.Error())
			if !strings.Contains(lowerErr, "invalid argument") {
				log.Printf("Logger sync failed: %v", syncErr)
			}
		}
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		if errors.Is(runErr, concat.ErrNoFiles) {
			os.Exit(exitNoFiles)
		}
		os.Exit(exitFailure)
	}
	os.Exit(exitOK)
}

// verboseRequested peeks at the raw arguments so the logger can be built
// before cobra parses flags.
func verboseRequested(args []string) bool {
	for _, arg := range args {
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}
	return false
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
