package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	// Execute runs name with args and returns captured stdout.
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteInDir is Execute with the working directory set to dir.
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
	// LookPath reports the resolved path of a binary, or an error when it is not installed.
	LookPath(name string) (string, error)
}
