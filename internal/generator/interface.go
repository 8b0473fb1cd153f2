package generator

import "context"

// Request is one generation call: the prompt template plus the cleaned transcript it frames.
type Request struct {
	Prompt     string
	Transcript string
	// Title is available to prompts through the {{TITLE}} placeholder.
	Title string
}

// Generator produces a LaTeX body from a cleaned transcript.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	// Name identifies the provider in logs.
	Name() string
}
