package processor

import "time"

// State is a pipeline position. A run only moves forward; Failed is terminal.
type State string

const (
	StateInit           State = "Init"
	StateAudioExtracted State = "AudioExtracted"
	StateTranscribed    State = "Transcribed"
	StateNormalized     State = "Normalized"
	StateGenerated      State = "Generated"
	StateAssembled      State = "Assembled"
	StateDone           State = "Done"
	StateFailed         State = "Failed"
)

// Request describes one run.
type Request struct {
	VideoPath string
	// Title overrides the title derived from the file name. It is inserted
	// into the document as given.
	Title string
}

// Result summarises a run. It is returned for failed runs too.
type Result struct {
	RunID   string
	Video   string
	WorkDir string
	State   State
	History []State
	// Document is the final notes path, set once the run reaches Done.
	Document string
	// Empty is set when the transcript had no usable text; the run stops
	// after normalization without error.
	Empty              bool
	GenerationAttempts int
	// Resumed lists stages whose artifact was reused from an earlier attempt.
	Resumed   []string
	Durations map[string]time.Duration
	Elapsed   time.Duration
}

func (r *Result) advance(s State) {
	r.State = s
	r.History = append(r.History, s)
}
