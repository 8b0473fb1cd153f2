package processor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/nguyentantai21042004/lecture-notes/internal/artifact"
	"github.com/nguyentantai21042004/lecture-notes/internal/generator"
)

// retryState is the generation stage's retry bookkeeping: how many attempts
// were made, how many are allowed and how long to wait before the next one.
type retryState struct {
	attempt int
	max     int
	next    time.Duration
	policy  *backoff.ExponentialBackOff
}

func newRetryState(max int, initial, maxDelay time.Duration) *retryState {
	if max < 1 {
		max = 1
	}
	return &retryState{
		max: max,
		policy: backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(initial),
			backoff.WithMaxInterval(maxDelay),
			backoff.WithMaxElapsedTime(0),
		),
	}
}

// begin records the start of an attempt.
func (s *retryState) begin() {
	s.attempt++
}

// retry reports whether err allows another attempt and, if so, sets next.
func (s *retryState) retry(err error) bool {
	if !generator.IsTransient(err) || s.attempt >= s.max {
		return false
	}
	s.next = s.policy.NextBackOff()
	return true
}

// generate asks the generator for the notes body. Transient failures are
// retried with exponential backoff; anything else fails on the first attempt.
func (p *implProcessor) generate(ctx context.Context, r *run) error {
	if p.resumable(ctx, r, artifact.StageBody) {
		data, err := r.store.ReadFile(artifact.StageBody)
		if err != nil {
			return stageErr(FilesystemError, err)
		}
		r.body = string(data)
		return nil
	}

	req := generator.Request{
		Prompt:     p.prompt,
		Transcript: r.cleaned.Text(),
		Title:      r.title,
	}
	gc := p.cfg.Generation
	rs := newRetryState(gc.MaxAttempts, gc.InitialBackoff, gc.MaxBackoff)

	for {
		rs.begin()
		p.logger.Info(ctx, "Generating notes with %s (attempt %d/%d)", p.generator.Name(), rs.attempt, rs.max)

		body, err := p.attempt(ctx, req)
		if err == nil {
			r.body = body
			break
		}
		if !rs.retry(err) {
			r.result.GenerationAttempts = rs.attempt
			return &StageError{Kind: GenerationError, Attempts: rs.attempt, Err: err}
		}
		p.logger.Warn(ctx, "Generation attempt %d failed: %v; retrying in %s", rs.attempt, err, rs.next.Round(time.Millisecond))
		p.sleep(rs.next)
	}
	r.result.GenerationAttempts = rs.attempt

	if _, err := r.store.WriteFile(artifact.StageBody, []byte(r.body)); err != nil {
		return stageErr(FilesystemError, err)
	}
	return nil
}

// attempt is one generator call bounded by the configured timeout.
func (p *implProcessor) attempt(ctx context.Context, req generator.Request) (string, error) {
	if timeout := p.cfg.Generation.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	body, err := p.generator.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(body) == "" {
		return "", &generator.Error{Kind: generator.KindMalformed, Provider: p.generator.Name(), Err: errors.New("empty body")}
	}
	return body, nil
}
