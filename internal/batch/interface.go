package batch

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
)

// Runner processes every lecture video in a directory.
type Runner interface {
	Run(ctx context.Context, dir string) (Summary, error)
}

// Item is the outcome for one video.
type Item struct {
	Video  string
	Result processor.Result
	Err    error
}

// Status is "done", "empty" or "failed".
func (i Item) Status() string {
	switch {
	case i.Err != nil:
		return "failed"
	case i.Result.Empty:
		return "empty"
	default:
		return "done"
	}
}

// Summary collects the items of a batch in discovery order.
type Summary struct {
	Items     []Item
	Succeeded int
	Empty     int
	Failed    int
	Elapsed   time.Duration
}
