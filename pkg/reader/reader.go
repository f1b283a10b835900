// Package reader loads the content of discovered files, optionally in
// parallel. Concurrency is a latency optimization only: results always come
// back in the discoverer's order.
package reader

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"notecat/pkg/discover"
)

// Result pairs a discovered file with its text content. A non-empty Err
// means the content could not be used (unreadable, binary, oversized); the
// formatter renders Err as a visible placeholder instead of dropping the
// file.
type Result struct {
	File    discover.File
	Content string
	Err     string
}

// Options controls the read batch.
type Options struct {
	// MaxFileSize in bytes; larger files get a placeholder. Zero or
	// negative disables the cap.
	MaxFileSize int64

	// MaxWorkers bounds the pool. Zero or negative means runtime.NumCPU().
	MaxWorkers int

	// Progress, when set, is called once per completed file. Invocations
	// may arrive in any order.
	Progress func(Result)
}

// ReadAll reads every file and returns results in input order regardless of
// read completion order. Individual failures never abort the batch.
func ReadAll(files []discover.File, opts Options, logger *zap.Logger) []Result {
	results := make([]Result, len(files))
	if len(files) == 0 {
		return results
	}

	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
		logger.Debug("Adjusted worker count", zap.Int("workers", workers))
	}
	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan int, len(files))
	var wg sync.WaitGroup
	var progressMu sync.Mutex

	logger.Debug("Initializing worker pool", zap.Int("workers", workers))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				// Each index is assigned exactly once, so writing
				// results[idx] needs no locking.
				results[idx] = readOne(files[idx], opts.MaxFileSize, logger)
				if opts.Progress != nil {
					progressMu.Lock()
					opts.Progress(results[idx])
					progressMu.Unlock()
				}
			}
		}()
	}

	for idx := range files {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	logger.Debug("All files read", zap.Int("fileCount", len(results)))
	return results
}

func readOne(f discover.File, maxSize int64, logger *zap.Logger) Result {
	res := Result{File: f}

	if maxSize > 0 && f.Size > maxSize {
		res.Err = fmt.Sprintf("file too large: %d bytes exceeds %d byte limit", f.Size, maxSize)
		logger.Debug("Skipping oversized file",
			zap.String("file", f.Path), zap.Int64("sizeBytes", f.Size))
		return res
	}

	binary, err := isBinaryFile(f.Path)
	if err != nil {
		res.Err = fmt.Sprintf("unreadable: %v", err)
		logger.Warn("Failed to probe file", zap.String("file", f.Path), zap.Error(err))
		return res
	}
	if binary {
		res.Err = "binary file, content omitted"
		logger.Debug("Skipping binary file content", zap.String("file", f.Path))
		return res
	}

	content, err := os.ReadFile(f.Path)
	if err != nil {
		res.Err = fmt.Sprintf("unreadable: %v", err)
		logger.Warn("Failed to read file", zap.String("file", f.Path), zap.Error(err))
		return res
	}

	res.Content = string(content)
	return res
}
