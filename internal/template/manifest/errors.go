package manifest

import "fmt"

// Code is a stable validation error code calling UIs can branch on.
type Code string

const (
	// CodeMissingManifest indicates no manifest file exists at the root.
	CodeMissingManifest Code = "MISSING_MANIFEST"
	// CodeInvalidManifest indicates the manifest file is not parsable JSON.
	CodeInvalidManifest Code = "INVALID_MANIFEST"
	// CodeMissingRequiredField indicates a required manifest field is absent.
	CodeMissingRequiredField Code = "MISSING_REQUIRED_FIELD"
	// CodeVersionMismatch indicates the declared compatibility range
	// excludes the current tool version.
	CodeVersionMismatch Code = "VERSION_MISMATCH"
	// CodeMissingContentDirectory indicates no usable content directory was
	// found.
	CodeMissingContentDirectory Code = "MISSING_CONTENT_DIRECTORY"
)

// ValidationError reports a malformed or incompatible template.
type ValidationError struct {
	// Code is the stable error code.
	Code Code
	// TemplateRoot is the template directory being validated.
	TemplateRoot string
	// Field is the offending manifest field, when one applies.
	Field string
	// Message is the human-readable error message.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template validation error [%s] at %s: %s (caused by: %v)",
			e.Code, e.TemplateRoot, e.Message, e.Cause)
	}
	return fmt.Sprintf("template validation error [%s] at %s: %s", e.Code, e.TemplateRoot, e.Message)
}

// Unwrap returns the underlying cause for error wrapping.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func newValidationError(code Code, root, message string, cause error) *ValidationError {
	return &ValidationError{Code: code, TemplateRoot: root, Message: message, Cause: cause}
}
