// Package importer implements the staged import and reconciliation engine:
// it reads spreadsheet rows, coerces fields into typed values, resolves
// free-text references against a master-data snapshot, classifies each row,
// and either previews the batch (dry run, no writes) or commits it row by
// row. This package has no HTTP dependencies and can be driven by any
// frontend.
package importer

import (
	"context"

	"github.com/sitewise-app/sitewise/internal/masterdata"
)

// RawRecord is one unprocessed input row plus its source position.
// Fields are keyed by the kind's canonical column names; values are the
// cleaned cell contents.
type RawRecord struct {
	Origin string            // Source file name
	Row    int               // 1-based line number in the source file
	Fields map[string]string
}

// Classification tags the outcome of classifying one row.
type Classification string

const (
	ClassValid     Classification = "valid"
	ClassDuplicate Classification = "duplicate"
	ClassError     Classification = "error"
)

// ClassifiedRow is the classifier's output for exactly one input row.
// Entity is set for valid rows; MatchedID/AttemptedText for duplicates;
// Err for error rows. Row always carries the source line number.
type ClassifiedRow struct {
	Row           int
	Class         Classification
	Entity        any
	MatchedID     string
	AttemptedText string
	Err           *RowError
}

// FieldSpec describes one column of an import kind.
type FieldSpec struct {
	Name     string // Canonical column header, matched case-insensitively
	Required bool   // Header must be present in the file
}

// KindInfo contains display information about an import kind.
type KindInfo struct {
	Key   string // Unique identifier: "attendance", "materials"
	Label string // Display name
	Specs []FieldSpec
}

// Columns returns all canonical column names.
func (in KindInfo) Columns() []string {
	cols := make([]string, len(in.Specs))
	for i, s := range in.Specs {
		cols[i] = s.Name
	}
	return cols
}

// RequiredColumns returns the column names whose headers must be present.
func (in KindInfo) RequiredColumns() []string {
	var cols []string
	for _, s := range in.Specs {
		if s.Required {
			cols = append(cols, s.Name)
		}
	}
	return cols
}

// BuildFunc normalizes and resolves one raw record into a domain entity.
// It returns a row-scoped error for coercion, resolution, or semantic
// failures; duplicate detection happens afterwards via the DuplicatePolicy.
type BuildFunc func(rec RawRecord, idx *masterdata.Index) (any, *RowError)

// RenderFunc converts an entity to display values for preview samples.
type RenderFunc func(entity any) map[string]string

// DuplicatePolicy decides what counts as a duplicate for an import kind.
// Implementations are pure; batch-internal state is kept by the classifier.
type DuplicatePolicy interface {
	// BatchKey returns the batch-internal dedup key for an entity.
	// Empty means the kind has no duplicate concept for this entity.
	BatchKey(entity any) string
	// ExistingID reports whether the entity already exists in master data
	// and returns the matched id.
	ExistingID(entity any, idx *masterdata.Index) (string, bool)
	// AttemptedText is the identifier text shown to the user for a duplicate.
	AttemptedText(entity any) string
}

// KindDefinition contains everything needed to import one kind of data.
type KindDefinition struct {
	Info       KindInfo
	Build      BuildFunc
	Duplicates DuplicatePolicy
	Render     RenderFunc
}

// Stats are the per-classification counts of one batch.
// TotalRows is always the sum of the other three.
type Stats struct {
	TotalRows      int `json:"totalRows"`
	ValidCount     int `json:"validCount"`
	DuplicateCount int `json:"duplicateCount"`
	ErrorCount     int `json:"errorCount"`
}

// RowIssue is one row-scoped problem, rendered flat for the caller while
// keeping the kind for structured logging.
type RowIssue struct {
	Row     int       `json:"row"`
	Kind    ErrorKind `json:"-"`
	Field   string    `json:"field,omitempty"`
	Message string    `json:"message"`
}

// DuplicateRow is one informational duplicate in a batch.
type DuplicateRow struct {
	Row            int    `json:"row"`
	IdentifierText string `json:"identifierText"`
	MatchedID      string `json:"matchedId"`
}

// PreviewResult is the outcome of a dry run. Producing it performs no
// writes; identical input and master data yield identical results.
type PreviewResult struct {
	Stats               Stats               `json:"stats"`
	Errors              []RowIssue          `json:"errors"`
	Duplicates          []DuplicateRow      `json:"duplicates"`
	SampleValidEntities []map[string]string `json:"sampleValidEntities"`
}

// CommitResult is the outcome of a commit. ImportedCount counts only rows
// actually written; per-row persistence failures are collected in Errors
// and never abort the batch. ImportRunID ties the response to the server
// log entries for the same run.
type CommitResult struct {
	ImportRunID   string     `json:"importRunId"`
	ImportedCount int        `json:"importedCount"`
	Errors        []RowIssue `json:"errors"`
}

// SnapshotLoader loads a fresh master-data snapshot. Called once per
// preview or commit call.
type SnapshotLoader interface {
	LoadIndex(ctx context.Context) (*masterdata.Index, error)
}

// Writer persists one entity of the given kind. Implementations must not
// batch: each call is an independent write so partial progress survives
// interruption.
type Writer interface {
	Insert(ctx context.Context, kind string, entity any) error
}
