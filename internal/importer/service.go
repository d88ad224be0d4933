package importer

// service.go is the package's entry point. Preview and Commit run the same
// pipeline (read, classify) against a snapshot loaded fresh at the start of
// the call; Commit then writes row by row. A commit after a preview never
// trusts the preview's classification: master data may have moved.

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Service runs import batches against a master-data source and a writer.
type Service struct {
	loader SnapshotLoader
	writer Writer
	log    *slog.Logger
}

// NewService creates an import service.
func NewService(loader SnapshotLoader, writer Writer, log *slog.Logger) *Service {
	return &Service{loader: loader, writer: writer, log: log}
}

// Preview dry-runs a batch. No writes happen regardless of outcome.
func (s *Service) Preview(ctx context.Context, kindKey, filename string, data []byte) (*PreviewResult, error) {
	kind, rows, err := s.classify(ctx, kindKey, filename, data)
	if err != nil {
		return nil, err
	}

	res := BuildPreview(kind, rows)
	s.log.Info("preview complete",
		slog.String("kind", kindKey),
		slog.String("file", filename),
		slog.Int("totalRows", res.Stats.TotalRows),
		slog.Int("valid", res.Stats.ValidCount),
		slog.Int("duplicates", res.Stats.DuplicateCount),
		slog.Int("errors", res.Stats.ErrorCount),
	)
	return res, nil
}

// Commit re-runs the full pipeline on a fresh snapshot, then inserts the
// valid rows one at a time.
func (s *Service) Commit(ctx context.Context, kindKey, filename string, data []byte) (*CommitResult, error) {
	runID := uuid.New().String()
	log := s.log.With(slog.String("importRun", runID))

	kind, rows, err := s.classify(ctx, kindKey, filename, data)
	if err != nil {
		return nil, err
	}

	res := CommitRows(ctx, log, s.writer, kind, rows)
	res.ImportRunID = runID
	log.Info("commit complete",
		slog.String("kind", kindKey),
		slog.String("file", filename),
		slog.Int("imported", res.ImportedCount),
		slog.Int("errors", len(res.Errors)),
	)
	return res, nil
}

func (s *Service) classify(ctx context.Context, kindKey, filename string, data []byte) (KindDefinition, []ClassifiedRow, error) {
	kind, ok := Get(kindKey)
	if !ok {
		return KindDefinition{}, nil, fmt.Errorf("unknown import kind: %s", kindKey)
	}

	records, err := ReadRecords(filename, data, kind.Info)
	if err != nil {
		return KindDefinition{}, nil, err
	}

	idx, err := s.loader.LoadIndex(ctx)
	if err != nil {
		return KindDefinition{}, nil, fmt.Errorf("loading master data: %w", err)
	}

	rows := NewClassifier(kind, idx).ClassifyAll(records)
	return kind, rows, nil
}
