package processor

import (
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/lecture-notes/internal/generator"
)

// ErrorKind names the failure class of a stage.
type ErrorKind string

const (
	ExtractionError    ErrorKind = "ExtractionError"
	TranscriptionError ErrorKind = "TranscriptionError"
	GenerationError    ErrorKind = "GenerationError"
	AssemblyError      ErrorKind = "AssemblyError"
	FilesystemError    ErrorKind = "FilesystemError"
)

// StageError terminates a run. State is the last state reached before the failure.
type StageError struct {
	Kind     ErrorKind
	Stage    string
	State    State
	Attempts int
	Err      error
}

func (e *StageError) Error() string {
	if e.Attempts > 1 {
		return fmt.Sprintf("%s in stage %s after %d attempts: %v", e.Kind, e.Stage, e.Attempts, e.Err)
	}
	return fmt.Sprintf("%s in stage %s: %v", e.Kind, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Transient reports whether a generation failure was of a retryable class.
// It is false for every other kind.
func (e *StageError) Transient() bool {
	return e.Kind == GenerationError && generator.IsTransient(e.Err)
}

// AbortedError is returned when the context is cancelled between stages.
type AbortedError struct {
	State State
	Err   error
}

func (e *AbortedError) Error() string {
	return fmt.Sprintf("run aborted after %s: %v", e.State, e.Err)
}

func (e *AbortedError) Unwrap() error {
	return e.Err
}

func stageErr(kind ErrorKind, err error) *StageError {
	return &StageError{Kind: kind, Err: err}
}

// KindOf returns the stage error kind carried by err, or "".
func KindOf(err error) ErrorKind {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}
