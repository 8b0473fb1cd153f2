package batch

import "context"

// semaphore bounds how many videos of a batch run at once.
type semaphore struct {
	slots chan struct{}
}

func newSemaphore(parallel int) *semaphore {
	if parallel < 1 {
		parallel = 1
	}
	return &semaphore{slots: make(chan struct{}, parallel)}
}

// acquire waits for a free slot. A cancelled ctx always wins, even when a
// slot is free, so no new video starts after cancellation.
func (s *semaphore) acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case s.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *semaphore) release() {
	<-s.slots
}
