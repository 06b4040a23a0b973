package flowcsv

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is checks. The concrete error types below
// wrap these and carry the detail needed to locate the problem.
var (
	// ErrFileNotFound indicates the given path does not reference an
	// existing file.
	ErrFileNotFound = errors.New("csv file not found")

	// ErrSchema indicates the file's shape is wrong: required columns
	// are missing from the header, or there are no data rows at all.
	ErrSchema = errors.New("csv schema error")

	// ErrValidation indicates a data row failed validation.
	ErrValidation = errors.New("csv validation error")
)

// NotFoundError reports a path that does not exist at call time.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("CSV file not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return ErrFileNotFound }

// SchemaError reports a header missing required columns, or a file
// with a header but zero data rows.
type SchemaError struct {
	Missing []string // missing required columns, in required order; nil for an empty file
	Message string   // used when Missing is empty
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("CSV file must contain the following columns: %s. Missing: %s.",
			strings.Join(RequiredColumns, ", "), strings.Join(e.Missing, ", "))
	}
	return e.Message
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// RowError reports a validation failure on a single data row. Line is
// 1-indexed with the header counted as line 1.
type RowError struct {
	Line    int
	Column  string
	Message string
}

func (e *RowError) Error() string { return e.Message }

func (e *RowError) Unwrap() error { return ErrValidation }
