package importer

// commit.go writes the valid rows of a classified batch. Each row is an
// independent insert: a persistence failure is recorded against that row
// and the remaining rows still go through.

import (
	"context"
	"log/slog"
)

// CommitRows inserts every valid row through the writer, one call per row.
func CommitRows(ctx context.Context, log *slog.Logger, w Writer, kind KindDefinition, rows []ClassifiedRow) *CommitResult {
	res := &CommitResult{Errors: []RowIssue{}}

	for _, row := range rows {
		if row.Class != ClassValid {
			if row.Class == ClassError {
				res.Errors = append(res.Errors, row.Err.Issue())
			}
			continue
		}
		if err := w.Insert(ctx, kind.Info.Key, row.Entity); err != nil {
			log.Error("row insert failed",
				slog.String("kind", kind.Info.Key),
				slog.Int("row", row.Row),
				slog.String("error", err.Error()),
			)
			res.Errors = append(res.Errors, RowIssue{
				Row:     row.Row,
				Kind:    KindPersistence,
				Message: "failed to save row: " + err.Error(),
			})
			continue
		}
		res.ImportedCount++
	}
	return res
}
