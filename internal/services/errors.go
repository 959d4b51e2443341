package services

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrCorruptDocument   = errors.New("document could not be decoded")
)

// ErrorKind classifies pipeline failures so the HTTP layer can map them to
// status codes without inspecting internal error text.
type ErrorKind string

const (
	ErrKindValidation  ErrorKind = "validation"
	ErrKindExtraction  ErrorKind = "extraction"
	ErrKindPersistence ErrorKind = "persistence"
	ErrKindInternal    ErrorKind = "internal"
)

// AnalysisError wraps a pipeline failure with its kind. Message is safe to
// return to callers; the wrapped error carries the internal detail and is
// only logged.
type AnalysisError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

func newValidationError(message string) *AnalysisError {
	return &AnalysisError{Kind: ErrKindValidation, Message: message}
}

func newExtractionError(err error) *AnalysisError {
	return &AnalysisError{Kind: ErrKindExtraction, Message: "failed to extract text from document", Err: err}
}

func newPersistenceError(err error) *AnalysisError {
	return &AnalysisError{Kind: ErrKindPersistence, Message: "failed to store analysis result", Err: err}
}

// KindOf returns the classified kind of err, or ErrKindInternal for anything
// the pipeline did not classify itself.
func KindOf(err error) ErrorKind {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ErrKindInternal
}
