package importer

// errors.go defines the import error taxonomy. Whole-batch failures abort
// before any row is read; everything else is row-scoped and collected
// without interrupting the remaining rows. DuplicateRow is deliberately not
// an error and lives in types.go as an informational classification.

import "fmt"

// ErrorKind distinguishes error categories for logging even though callers
// see flat strings.
type ErrorKind string

const (
	KindInputFormat   ErrorKind = "input_format"
	KindNormalization ErrorKind = "normalization"
	KindResolution    ErrorKind = "resolution"
	KindSemantic      ErrorKind = "semantic"
	KindPersistence   ErrorKind = "persistence"
)

// InputFormatError is the single whole-batch failure mode: unreadable or
// unsupported file, or a missing required header. Nothing is processed.
type InputFormatError struct {
	Msg string
}

func (e *InputFormatError) Error() string { return e.Msg }

// RowError is a row-scoped, non-fatal failure. Field is set when the
// problem concerns a specific column.
type RowError struct {
	Kind  ErrorKind
	Row   int
	Field string
	Msg   string
}

func (e *RowError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("row %d, field %q: %s", e.Row, e.Field, e.Msg)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Msg)
}

// normErr builds a normalization RowError quoting the raw value verbatim.
func normErr(row int, field, raw, reason string) *RowError {
	return &RowError{
		Kind:  KindNormalization,
		Row:   row,
		Field: field,
		Msg:   fmt.Sprintf("%s for %q: %q", reason, field, raw),
	}
}

// resolveErr builds a resolution RowError for an unresolved reference.
func resolveErr(row int, field, attempted string) *RowError {
	return &RowError{
		Kind:  KindResolution,
		Row:   row,
		Field: field,
		Msg:   fmt.Sprintf("could not resolve %s %q", field, attempted),
	}
}

// semanticErr builds a semantic RowError for a violated domain rule.
func semanticErr(row int, msg string) *RowError {
	return &RowError{Kind: KindSemantic, Row: row, Msg: msg}
}

// Issue converts a RowError to the flat representation returned to callers.
func (e *RowError) Issue() RowIssue {
	return RowIssue{Row: e.Row, Kind: e.Kind, Field: e.Field, Message: e.Msg}
}
