package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
)

// Discover lists the videos in dir whose extension is in exts, sorted by name.
// Hidden files and subdirectories are skipped.
func Discover(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" && !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		allowed[e] = true
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if allowed[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// Run processes every discovered video. Two videos with the same stem would
// share a work dir, so only the first of them is processed.
func (b *implRunner) Run(ctx context.Context, dir string) (Summary, error) {
	start := time.Now()
	videos, err := Discover(dir, b.opts.Extensions)
	if err != nil {
		return Summary{}, fmt.Errorf("discover videos: %w", err)
	}
	if len(videos) == 0 {
		b.logger.Info(ctx, "No video files found in %s", dir)
		return Summary{}, nil
	}

	b.logger.Info(ctx, "Found %d videos to process (parallel %d)", len(videos), b.opts.Parallel)

	items := make([]Item, len(videos))
	stems := make(map[string]string)
	sem := newSemaphore(b.opts.Parallel)
	var wg sync.WaitGroup

	for i, video := range videos {
		items[i].Video = video

		stem := strings.TrimSuffix(filepath.Base(video), filepath.Ext(video))
		if first, dup := stems[stem]; dup {
			items[i].Err = fmt.Errorf("work dir %q already used by %s", stem, filepath.Base(first))
			continue
		}
		stems[stem] = video

		if err := sem.acquire(ctx); err != nil {
			items[i].Err = &processor.AbortedError{State: processor.StateInit, Err: err}
			continue
		}

		wg.Add(1)
		go func(i int, video string) {
			defer wg.Done()
			defer sem.release()

			b.logger.Info(ctx, "[%d/%d] Processing: %s", i+1, len(videos), filepath.Base(video))
			res, err := b.proc.Process(ctx, processor.Request{VideoPath: video})
			items[i].Result = res
			items[i].Err = err
		}(i, video)
	}
	wg.Wait()

	sum := Summary{Items: items, Elapsed: time.Since(start)}
	for _, it := range items {
		switch it.Status() {
		case "done":
			sum.Succeeded++
		case "empty":
			sum.Empty++
		default:
			sum.Failed++
			b.logger.Error(ctx, "Failed %s: %v", filepath.Base(it.Video), it.Err)
		}
	}

	b.logger.Info(ctx, "Batch complete: %d/%d succeeded, %d empty, %d failed",
		sum.Succeeded, len(items), sum.Empty, sum.Failed)
	return sum, nil
}
