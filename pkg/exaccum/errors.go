package exaccum

import (
	"errors"
	"fmt"

	"github.com/ukaji3/exaccum-go/pkg/exaccum/export"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/recompute"
)

// ErrValidation indicates a missing or malformed caller input.
var ErrValidation = errors.New("validation error")

// ErrUnsupportedCategory indicates a category the schema does not define.
var ErrUnsupportedCategory = fmt.Errorf("%w: unsupported category", ErrValidation)

// ErrFileAccess indicates the source workbook could not be opened or read.
var ErrFileAccess = errors.New("file not found or unreadable")

// ErrDataNotFound indicates an extraction matched no rows. Callers report it
// as a message; it is an expected outcome rather than a failure.
var ErrDataNotFound = errors.New("no matching data")

// ErrSessionEmpty indicates an export was attempted before any accumulation.
var ErrSessionEmpty = export.ErrSessionEmpty

// ParseError reports a non-numeric factor cell in strict mode.
type ParseError = recompute.ParseError

// FileAccessError wraps a failure to open or read the source workbook.
type FileAccessError struct {
	Path string
	Op   string // "open", "read"
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("file access error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// Is makes every FileAccessError match ErrFileAccess.
func (e *FileAccessError) Is(target error) bool {
	return target == ErrFileAccess
}

// ExtractionError represents an error while reading one part of a sheet.
type ExtractionError struct {
	SheetName string
	Component string // "detail", "summary"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
