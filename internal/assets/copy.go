// Package assets copies the public asset tree into the output and applies the
// configured base path to every root-absolute reference in rendered HTML.
package assets

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/sovrium/sovrium/internal/errors"
)

// CopyTree copies every file under publicDir into outputDir, preserving the
// relative directory structure and exact byte content. Files are copied
// concurrently on a bounded worker pool; destinations are disjoint so no
// locking is needed beyond the pool itself. Returns the number of files
// copied. A missing publicDir copies nothing.
func CopyTree(ctx context.Context, publicDir, outputDir string) (int, error) {
	if publicDir == "" {
		return 0, nil
	}
	if _, err := os.Stat(publicDir); os.IsNotExist(err) {
		return 0, nil
	}

	type job struct{ src, dst string }
	var jobs []job
	err := filepath.WalkDir(publicDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(publicDir, path)
		if err != nil {
			return err
		}
		jobs = append(jobs, job{src: path, dst: filepath.Join(outputDir, rel)})
		return nil
	})
	if err != nil {
		return 0, errors.AssetCopyError(publicDir, err)
	}

	workers := runtime.NumCPU()
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers < 1 {
		return 0, nil
	}

	var (
		wg       sync.WaitGroup
		once     sync.Once
		failed   atomic.Bool
		firstErr error
		ch       = make(chan job)
	)
	fail := func(err error) {
		once.Do(func() { firstErr = err })
		failed.Store(true)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Keep draining after a failure so the feeder never blocks.
			for j := range ch {
				if failed.Load() {
					continue
				}
				if ctx.Err() != nil {
					fail(ctx.Err())
					continue
				}
				if err := copyFile(j.src, j.dst); err != nil {
					fail(errors.AssetCopyError(j.src, err))
				}
			}
		}()
	}
	for _, j := range jobs {
		ch <- j
	}
	close(ch)
	wg.Wait()

	if firstErr != nil {
		return 0, firstErr
	}
	return len(jobs), nil
}

// copyFile duplicates src at dst byte-for-byte. No transcoding, no
// line-ending normalization.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}
