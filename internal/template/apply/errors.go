package apply

import "fmt"

// CodeIO is the stable error code for local filesystem faults during a
// copy. These are fatal and never retried.
const CodeIO = "IO_ERROR"

// IOError reports a filesystem fault while copying a template tree.
type IOError struct {
	// Code is the stable error code.
	Code string
	// Op is the failing operation (read, write, mkdir).
	Op string
	// Path is the file or directory involved.
	Path string
	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("template copy error [%s] during %s of %s: %v", e.Code, e.Op, e.Path, e.Cause)
}

// Unwrap returns the underlying cause for error wrapping.
func (e *IOError) Unwrap() error {
	return e.Cause
}

func newIOError(op, path string, cause error) *IOError {
	return &IOError{Code: CodeIO, Op: op, Path: path, Cause: cause}
}
