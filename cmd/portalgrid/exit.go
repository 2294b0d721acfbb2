package main

// Exit codes.
const (
	exitRuntime = 1
	exitUsage   = 2
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: exitUsage, Message: err.Error(), Err: err}
}

func runtimeError(err error) error {
	return &ExitError{Code: exitRuntime, Message: err.Error(), Err: err}
}
