package importer

// classify.go tags each raw record Valid, Duplicate, or Error. Rows are
// classified sequentially so batch-internal duplicate detection sees every
// earlier row of the same batch, not just the persisted master index.

import (
	"strconv"

	"github.com/sitewise-app/sitewise/internal/masterdata"
)

// Classifier classifies the rows of one batch against one snapshot.
// Not safe for concurrent use; create one per preview or commit call.
type Classifier struct {
	kind KindDefinition
	idx  *masterdata.Index
	seen map[string]int // batch dedup key -> first row that claimed it
}

// NewClassifier creates a classifier for one batch run.
func NewClassifier(kind KindDefinition, idx *masterdata.Index) *Classifier {
	return &Classifier{
		kind: kind,
		idx:  idx,
		seen: make(map[string]int),
	}
}

// Classify produces exactly one ClassifiedRow for the record.
func (c *Classifier) Classify(rec RawRecord) ClassifiedRow {
	entity, rowErr := c.kind.Build(rec, c.idx)
	if rowErr != nil {
		return ClassifiedRow{Row: rec.Row, Class: ClassError, Err: rowErr}
	}

	policy := c.kind.Duplicates
	if id, ok := policy.ExistingID(entity, c.idx); ok {
		return ClassifiedRow{
			Row:           rec.Row,
			Class:         ClassDuplicate,
			MatchedID:     id,
			AttemptedText: policy.AttemptedText(entity),
		}
	}
	if key := policy.BatchKey(entity); key != "" {
		if firstRow, ok := c.seen[key]; ok {
			return ClassifiedRow{
				Row:           rec.Row,
				Class:         ClassDuplicate,
				MatchedID:     batchDuplicateID(firstRow),
				AttemptedText: policy.AttemptedText(entity),
			}
		}
		c.seen[key] = rec.Row
	}

	return ClassifiedRow{Row: rec.Row, Class: ClassValid, Entity: entity}
}

// ClassifyAll classifies every record in order.
func (c *Classifier) ClassifyAll(records []RawRecord) []ClassifiedRow {
	rows := make([]ClassifiedRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, c.Classify(rec))
	}
	return rows
}

// batchDuplicateID marks a duplicate whose match is an earlier row of the
// same file rather than a persisted entity.
func batchDuplicateID(row int) string {
	return "batch:row-" + strconv.Itoa(row)
}
