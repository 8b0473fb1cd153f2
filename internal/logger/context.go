package logger

import (
	"context"

	"github.com/sirupsen/logrus"
)

type ctxKey int

const (
	runIDKey ctxKey = iota
	stageKey
	videoKey
)

// WithRunID tags every log line written with the returned context with the run id.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithStage tags log lines with the pipeline stage currently executing.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, stageKey, stage)
}

// WithVideo tags log lines with the source video name.
func WithVideo(ctx context.Context, video string) context.Context {
	return context.WithValue(ctx, videoKey, video)
}

func fieldsFromContext(ctx context.Context) logrus.Fields {
	fields := logrus.Fields{}
	if ctx == nil {
		return fields
	}
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		fields["run_id"] = v
	}
	if v, ok := ctx.Value(stageKey).(string); ok && v != "" {
		fields["stage"] = v
	}
	if v, ok := ctx.Value(videoKey).(string); ok && v != "" {
		fields["video"] = v
	}
	return fields
}
