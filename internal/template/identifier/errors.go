package identifier

import "fmt"

// CodeInvalidIdentifier is the stable error code for malformed identifiers.
const CodeInvalidIdentifier = "INVALID_IDENTIFIER"

// InvalidIdentifierError reports a template identifier that could not be
// classified.
type InvalidIdentifierError struct {
	// Code is the stable error code.
	Code string
	// Identifier is the offending input.
	Identifier string
	// Message describes what is wrong with the input.
	Message string
}

// Error implements the error interface.
func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid template identifier %q: %s", e.Identifier, e.Message)
}

// NewInvalidIdentifierError creates an InvalidIdentifierError.
func NewInvalidIdentifierError(identifier, message string) *InvalidIdentifierError {
	return &InvalidIdentifierError{
		Code:       CodeInvalidIdentifier,
		Identifier: identifier,
		Message:    message,
	}
}
