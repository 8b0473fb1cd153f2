package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
)

type fakeProcessor struct {
	mu      sync.Mutex
	seen    []string
	running int32
	peak    int32
	delay   time.Duration
	fail    map[string]bool
	empty   map[string]bool
}

func (f *fakeProcessor) Process(ctx context.Context, req processor.Request) (processor.Result, error) {
	n := atomic.AddInt32(&f.running, 1)
	defer atomic.AddInt32(&f.running, -1)
	for {
		p := atomic.LoadInt32(&f.peak)
		if n <= p || atomic.CompareAndSwapInt32(&f.peak, p, n) {
			break
		}
	}
	time.Sleep(f.delay)

	name := filepath.Base(req.VideoPath)
	f.mu.Lock()
	f.seen = append(f.seen, name)
	f.mu.Unlock()

	res := processor.Result{RunID: "run-" + name, Video: req.VideoPath}
	switch {
	case f.fail[name]:
		res.State = processor.StateFailed
		return res, &processor.StageError{Kind: processor.TranscriptionError, Stage: "transcribe", Err: errors.New("boom")}
	case f.empty[name]:
		res.State = processor.StateNormalized
		res.Empty = true
	default:
		res.State = processor.StateDone
		res.GenerationAttempts = 1
		res.Document = filepath.Join("out", name, "notes.tex")
	}
	return res, nil
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.MP4", "a.mkv", ".hidden.mp4", "notes.txt", "c.webm")
	if err := os.Mkdir(filepath.Join(dir, "sub.mp4"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := Discover(dir, []string{".mp4", "mkv"})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	want := []string{filepath.Join(dir, "a.mkv"), filepath.Join(dir, "b.MP4")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}

	if _, err := Discover(filepath.Join(dir, "missing"), nil); err == nil {
		t.Error("Discover() should fail for a missing directory")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "l1.mp4", "l2.mp4", "l3.mp4", "l4.mp4", "l1.mov")

	proc := &fakeProcessor{
		delay: 20 * time.Millisecond,
		fail:  map[string]bool{"l2.mp4": true},
		empty: map[string]bool{"l3.mp4": true},
	}
	r := New(proc, Options{Extensions: []string{".mp4", ".mov"}, Parallel: 2}, logger.Discard())

	sum, err := r.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(sum.Items) != 5 {
		t.Fatalf("items = %d, want 5", len(sum.Items))
	}
	if sum.Succeeded != 2 || sum.Empty != 1 || sum.Failed != 2 {
		t.Errorf("succeeded=%d empty=%d failed=%d, want 2/1/2", sum.Succeeded, sum.Empty, sum.Failed)
	}

	// l1.mov sorts before l1.mp4 and claims the work dir first
	if sum.Items[0].Status() != "done" || sum.Items[1].Status() != "failed" {
		t.Errorf("duplicate stem handling: %s, %s", sum.Items[0].Status(), sum.Items[1].Status())
	}
	if !strings.Contains(sum.Items[1].Err.Error(), "already used") {
		t.Errorf("duplicate error = %v", sum.Items[1].Err)
	}
	if len(proc.seen) != 4 {
		t.Errorf("processed %d videos, want 4", len(proc.seen))
	}
	if peak := atomic.LoadInt32(&proc.peak); peak > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", peak)
	}
}

func TestRunEmptyDir(t *testing.T) {
	r := New(&fakeProcessor{}, Options{Extensions: []string{".mp4"}}, logger.Discard())
	sum, err := r.Run(context.Background(), t.TempDir())
	if err != nil || len(sum.Items) != 0 {
		t.Errorf("Run() = %+v, %v", sum, err)
	}
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.mp4", "b.mp4")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	proc := &fakeProcessor{}
	sum, err := New(proc, Options{Extensions: []string{".mp4"}}, logger.Discard()).Run(ctx, dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range sum.Items {
		var ae *processor.AbortedError
		if !errors.As(it.Err, &ae) {
			t.Errorf("%s: err = %v, want AbortedError", it.Video, it.Err)
		}
	}
	if len(proc.seen) != 0 {
		t.Errorf("processed %v after cancellation", proc.seen)
	}
}

func sampleSummary() Summary {
	return Summary{
		Items: []Item{
			{Video: "/v/a.mp4", Result: processor.Result{RunID: "r1", State: processor.StateDone, GenerationAttempts: 2, Document: "out/a/notes.tex"}},
			{Video: "/v/b.mp4", Result: processor.Result{RunID: "r2", State: processor.StateFailed}, Err: errors.New("GenerationError in stage generate: auth")},
			{Video: "/v/c.mp4", Result: processor.Result{RunID: "r3", State: processor.StateNormalized, Empty: true}},
		},
		Succeeded: 1, Empty: 1, Failed: 1,
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(sampleSummary())
	for _, want := range []string{"Video", "a.mp4", "done", "out/a/notes.tex", "failed", "auth", "empty", "no speech detected", "1 done"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteReport(sampleSummary(), path); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	if rows[0][0] != "Video" || rows[1][0] != "a.mp4" || rows[1][1] != "done" || rows[1][4] != "2" {
		t.Errorf("unexpected rows: %v", rows[:2])
	}
	if rows[2][1] != "failed" || !strings.Contains(rows[2][7], "auth") {
		t.Errorf("failed row = %v", rows[2])
	}
}
