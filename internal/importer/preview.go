package importer

// preview.go aggregates classified rows into the dry-run result. Pure
// aggregation: no writes, no hidden state, so re-running a preview on
// unchanged input and master data is deterministic.

// maxValidSamples bounds the valid-entity spot-check list.
const maxValidSamples = 5

// BuildPreview folds classified rows into a PreviewResult.
func BuildPreview(kind KindDefinition, rows []ClassifiedRow) *PreviewResult {
	res := &PreviewResult{
		Errors:              []RowIssue{},
		Duplicates:          []DuplicateRow{},
		SampleValidEntities: []map[string]string{},
	}
	res.Stats.TotalRows = len(rows)

	for _, row := range rows {
		switch row.Class {
		case ClassValid:
			res.Stats.ValidCount++
			if len(res.SampleValidEntities) < maxValidSamples {
				res.SampleValidEntities = append(res.SampleValidEntities, kind.Render(row.Entity))
			}
		case ClassDuplicate:
			res.Stats.DuplicateCount++
			res.Duplicates = append(res.Duplicates, DuplicateRow{
				Row:            row.Row,
				IdentifierText: row.AttemptedText,
				MatchedID:      row.MatchedID,
			})
		case ClassError:
			res.Stats.ErrorCount++
			res.Errors = append(res.Errors, row.Err.Issue())
		}
	}
	return res
}
