package processor

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/lecture-notes/internal/artifact"
	"github.com/nguyentantai21042004/lecture-notes/internal/assembler"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/transcript"
)

// run carries one invocation's intermediate values between stages.
type run struct {
	video        string
	title        string
	store        artifact.Store
	result       *Result
	audioPath    string
	segments     []transcript.Segment
	cleaned      transcript.Cleaned
	body         string
	document     string
	documentPath string
}

type step struct {
	name string
	to   State
	fn   func(ctx context.Context, r *run) error
}

func (p *implProcessor) steps() []step {
	return []step{
		{"extract-audio", StateAudioExtracted, p.extractAudio},
		{"transcribe", StateTranscribed, p.transcribe},
		{"normalize", StateNormalized, p.normalize},
		{"generate", StateGenerated, p.generate},
		{"assemble", StateAssembled, p.assemble},
		{"finalize", StateDone, p.finalize},
	}
}

// Process drives one video from Init to Done. Stages run strictly in order and
// each stage's artifact is written before the next one starts. Cancellation is
// honoured only between stages; a stage that has started runs to completion.
func (p *implProcessor) Process(ctx context.Context, req Request) (Result, error) {
	start := p.now()
	res := Result{
		RunID:     uuid.NewString(),
		Video:     req.VideoPath,
		State:     StateInit,
		History:   []State{StateInit},
		Durations: make(map[string]time.Duration),
	}

	ctx = logger.WithRunID(ctx, res.RunID)
	ctx = logger.WithVideo(ctx, filepath.Base(req.VideoPath))

	r := &run{
		video:  req.VideoPath,
		title:  p.title(req),
		store:  artifact.New(artifact.RunDir(p.cfg.Run.OutputDir, req.VideoPath), p.cfg.FFmpeg.AudioFormat),
		result: &res,
	}
	res.WorkDir = r.store.Dir()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting lecture processing: %s", req.VideoPath)
	p.logger.Info(ctx, "Work dir: %s", res.WorkDir)
	p.logger.Info(ctx, "========================================")

	for _, s := range p.steps() {
		if err := ctx.Err(); err != nil {
			p.logger.Warn(ctx, "Run aborted after %s, intermediates kept in %s", res.State, res.WorkDir)
			res.Elapsed = p.now().Sub(start)
			return res, &AbortedError{State: res.State, Err: err}
		}

		stageCtx := logger.WithStage(context.WithoutCancel(ctx), s.name)
		stageStart := p.now()
		err := s.fn(stageCtx, r)
		res.Durations[s.name] = p.now().Sub(stageStart)

		if err != nil {
			se, ok := err.(*StageError)
			if !ok {
				se = stageErr(FilesystemError, err)
			}
			se.Stage = s.name
			se.State = res.State
			res.advance(StateFailed)
			res.Elapsed = p.now().Sub(start)
			p.logger.Error(stageCtx, "Stage %s failed: %v", s.name, se.Err)
			p.logger.Info(ctx, "Intermediates kept for diagnosis in %s", res.WorkDir)
			return res, se
		}

		res.advance(s.to)
		p.logger.Debug(stageCtx, "State -> %s (%s)", s.to, res.Durations[s.name])

		if s.to == StateNormalized && r.cleaned.Empty() {
			p.logger.Warn(ctx, "Transcript has no usable speech, skipping generation")
			err := r.store.Finalize(p.cfg.Run.KeepIntermediates)
			res.Elapsed = p.now().Sub(start)
			if err != nil {
				se := &StageError{Kind: FilesystemError, Stage: "finalize", State: res.State, Err: err}
				res.advance(StateFailed)
				return res, se
			}
			res.Empty = true
			return res, nil
		}
	}

	res.Document = r.documentPath
	res.Elapsed = p.now().Sub(start)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Notes: %s", res.Document)
	p.logger.Info(ctx, "Processing time: %s", res.Elapsed)
	p.logger.Info(ctx, "========================================")
	return res, nil
}

func (p *implProcessor) title(req Request) string {
	if req.Title != "" {
		return req.Title
	}
	base := filepath.Base(req.VideoPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return assembler.EscapeLaTeX(p.cfg.Document.TitlePrefix + stem)
}

// resumable reports whether stage can be skipped because an earlier attempt
// already produced its artifact.
func (p *implProcessor) resumable(ctx context.Context, r *run, stage artifact.Stage) bool {
	if !p.cfg.Run.ResumeEnabled() || !r.store.Exists(stage) {
		return false
	}
	p.logger.Info(ctx, "Reusing existing %s artifact", stage)
	r.result.Resumed = append(r.result.Resumed, string(stage))
	return true
}
