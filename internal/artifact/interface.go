package artifact

// Stage names a pipeline step's output.
type Stage string

const (
	StageAudio         Stage = "audio"
	StageRawTranscript Stage = "raw-transcript"
	StageCleaned       Stage = "cleaned-transcript"
	StageBody          Stage = "body"
	StageDocument      Stage = "document"
)

// Store manages one run's working directory.
type Store interface {
	// Dir returns the run's working directory.
	Dir() string
	// Allocate returns the stable path for stage inside the working directory,
	// creating the directory on first use.
	Allocate(stage Stage) (string, error)
	// Exists reports whether the stage artifact is present and non-empty.
	Exists(stage Stage) bool
	WriteFile(stage Stage, data []byte) (string, error)
	ReadFile(stage Stage) ([]byte, error)
	// Finalize removes every stage file except the final document unless
	// keepIntermediates is set.
	Finalize(keepIntermediates bool) error
}
