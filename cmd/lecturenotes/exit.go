package main

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
)

// Process exit codes.
const (
	exitOK            = 0
	exitFailure       = 1
	exitEmpty         = 2
	exitExtraction    = 3
	exitTranscription = 4
	exitGeneration    = 5
	exitAssembly      = 6
	exitFilesystem    = 7
	exitAborted       = 130
)

var errEmptyTranscript = errors.New("no usable speech in transcript, no notes generated")

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, errEmptyTranscript) {
		return exitEmpty
	}

	switch processor.KindOf(err) {
	case processor.ExtractionError:
		return exitExtraction
	case processor.TranscriptionError:
		return exitTranscription
	case processor.GenerationError:
		return exitGeneration
	case processor.AssemblyError:
		return exitAssembly
	case processor.FilesystemError:
		return exitFilesystem
	}

	var aborted *processor.AbortedError
	if errors.As(err, &aborted) || errors.Is(err, context.Canceled) {
		return exitAborted
	}
	return exitFailure
}
